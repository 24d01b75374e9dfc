package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pdfDecoder struct{}

func NewPDFDecoder() Decoder {
	return &pdfDecoder{}
}

func (p *pdfDecoder) Formats() []string {
	return []string{"pdf"}
}

func (p *pdfDecoder) Available() bool {
	return true
}

// Decode reads the text layer page by page. Pages that fail to render are
// skipped; an empty result is left for the pipeline to reject.
func (p *pdfDecoder) Decode(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
