package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNoTextExtracted = errors.New("no text content extracted from PDF")

// maxPDFSize caps uploads read into memory.
const maxPDFSize = 32 << 20

// ContentExtractionService pulls plain text out of PDF documents.
type ContentExtractionService struct{}

func NewContentExtractionService() *ContentExtractionService {
	return &ContentExtractionService{}
}

// ExtractTextFromReader reads a PDF held in r, typically an upload.
func (s *ContentExtractionService) ExtractTextFromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPDFSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	if len(data) > maxPDFSize {
		return "", fmt.Errorf("PDF exceeds %d bytes", maxPDFSize)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	return extractPages(reader)
}

func extractPages(r *pdf.Reader) (string, error) {
	var content strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		content.WriteString(text)
		content.WriteString("\n\n")
	}

	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", ErrNoTextExtracted
	}
	return text, nil
}
