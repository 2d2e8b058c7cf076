package extraction

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"summarizer/internal/services"
)

// PDF extracts plain text from PDF files on the local filesystem.
type PDF struct{}

// ExtractText pulls the full plain text of the document. Files that parse but
// yield no text fail with the no-text-found marker so callers can abort only
// the affected document.
func (PDF) ExtractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", services.Wrap(services.ErrNoTextFound, "extraction", "extract text", path, nil)
	}
	return text, nil
}
