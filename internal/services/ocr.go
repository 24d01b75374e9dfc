//go:build ocr

package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// tesseractEngine wraps a single gosseract client. The client keeps the
// current image as state, so recognition is serialised.
type tesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewOCREngine creates the Tesseract-backed engine. It requires the binary
// to be built with -tags ocr and libtesseract to be installed.
func NewOCREngine(language string) (OCREngine, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}

	engine := &tesseractEngine{client: client}
	if err := engine.selfCheck(); err != nil {
		client.Close()
		return nil, fmt.Errorf("OCR engine unusable: %w", err)
	}

	return engine, nil
}

// selfCheck recognises a small blank image so that missing language data
// fails at start-up rather than on the first upload.
func (e *tesseractEngine) selfCheck() error {
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	_, err := e.Recognize(buf.Bytes())
	return err
}

func (e *tesseractEngine) Recognize(image []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	return e.client.Text()
}

func (e *tesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.client.Close()
}
