//go:build !ocr

package services

func NewOCREngine(language string) (OCREngine, error) {
	return nil, ErrOCRNotEnabled
}
