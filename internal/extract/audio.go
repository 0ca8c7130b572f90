package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deckward-ai/deckward/pkg/model"
)

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// extractAudio transcribes a recording through the speech-to-text backend,
// fixed to English like the rest of the pipeline's prompts.
func (e *Extractor) extractAudio(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !audioExtensions[ext] {
		return "", fmt.Errorf("%w: audio must be a .mp3 or .wav file, got %q", ErrUnsupportedFormat, ext)
	}

	generator, err := e.newAudio(path, model.AudioOptions{Language: "en"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	transcript, _, err := generator.Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	transcript = strings.TrimSpace(transcript)
	if wordCount(transcript) < minExtractedWords {
		return "", fmt.Errorf("%w: transcript is too short (%d words)", ErrExtractionFailed, wordCount(transcript))
	}
	return transcript, nil
}
