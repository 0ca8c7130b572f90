package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deckward-ai/deckward/pkg/model"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpeg": true,
}

// extractImage reads the text out of an image through the vision backend.
// The extension check runs before any file or service I/O.
func (e *Extractor) extractImage(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: image must be a .png or .jpeg file, got %q", ErrUnsupportedFormat, ext)
	}

	generator, err := e.newVision(path, model.VisionOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text, _, err := generator.Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text = strings.TrimSpace(text)
	if wordCount(text) < minExtractedWords {
		return "", fmt.Errorf("%w: image text is too short (%d words)", ErrExtractionFailed, wordCount(text))
	}
	return text, nil
}
