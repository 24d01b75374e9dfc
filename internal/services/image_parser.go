package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ErrOCRNotEnabled is returned when the binary was built without -tags ocr.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// OCREngine recognises text in encoded image bytes.
type OCREngine interface {
	Recognize(image []byte) (string, error)
	Close() error
}

type imageDecoder struct {
	engine OCREngine
}

// NewImageDecoder returns a decoder for scanned resumes. A nil engine marks
// the image formats as unavailable.
func NewImageDecoder(engine OCREngine) Decoder {
	return &imageDecoder{engine: engine}
}

func (d *imageDecoder) Formats() []string {
	return []string{"jpg", "jpeg", "png"}
}

func (d *imageDecoder) Available() bool {
	return d.engine != nil
}

func (d *imageDecoder) Decode(filePath string) (string, error) {
	if d.engine == nil {
		return "", fmt.Errorf("OCR engine not available")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	text, err := d.engine.Recognize(data)
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}
