package services

import (
	"fmt"

	"github.com/tsawler/tabula/docx"
)

type docxDecoder struct{}

func NewDOCXDecoder() Decoder {
	return &docxDecoder{}
}

func (d *docxDecoder) Formats() []string {
	return []string{"docx"}
}

func (d *docxDecoder) Available() bool {
	return true
}

// Decode returns the body paragraphs joined with newlines, in document order.
func (d *docxDecoder) Decode(filePath string) (string, error) {
	r, err := docx.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX file: %w", err)
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX text: %w", err)
	}

	return text, nil
}
