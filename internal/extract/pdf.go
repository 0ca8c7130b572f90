package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the plain text of every page in page order and
// caps the result so one long document does not blow the synthesis prompt.
func extractPDF(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: file must be a .pdf, got %q", ErrUnsupportedFormat, ext)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var pages []string
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrExtractionFailed, pageIndex, err)
		}
		pages = append(pages, text)
	}

	combined := strings.TrimSpace(strings.Join(pages, "\n"))
	if wordCount(combined) < minExtractedWords {
		return "", fmt.Errorf("%w: document text is too short (%d words)", ErrExtractionFailed, wordCount(combined))
	}

	return truncateWords(combined, maxPDFWords), nil
}
