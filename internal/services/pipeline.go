package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

// AllowedFormats are the resume extensions accepted at the boundary.
var AllowedFormats = []string{"pdf", "docx", "jpg", "jpeg", "png"}

type ExtractionPipeline interface {
	Extract(doc models.Document) (string, error)
	ExtractFile(path string) (string, error)
	SupportedFormats() []string
}

type extractionPipeline struct {
	decoders    map[string]Decoder
	storage     TransientStorage
	maxFileSize int64
	logger      *zap.Logger
}

func NewExtractionPipeline(
	storage TransientStorage,
	maxFileSize int64,
	logger *zap.Logger,
	decoders ...Decoder,
) ExtractionPipeline {
	p := &extractionPipeline{
		decoders:    make(map[string]Decoder),
		storage:     storage,
		maxFileSize: maxFileSize,
		logger:      logger,
	}

	for _, d := range decoders {
		for _, format := range d.Formats() {
			if !isAllowedFormat(format) {
				continue
			}
			p.decoders[format] = d
		}
	}

	return p
}

// Extract validates the document, stages it on disk and runs the decoder
// registered for its extension.
func (p *extractionPipeline) Extract(doc models.Document) (string, error) {
	ext := doc.Extension()
	if !isAllowedFormat(ext) {
		return "", newError(KindUnsupportedFormat, nil, "invalid file type: %q", ext)
	}

	size := doc.Size
	if n := int64(len(doc.Content)); n > size {
		size = n
	}
	if size > p.maxFileSize {
		return "", newError(KindOversizedInput, nil, "file size %d exceeds %d bytes", size, p.maxFileSize)
	}

	decoder, ok := p.decoders[ext]
	if !ok || !decoder.Available() {
		return "", newError(KindUnsupportedFormat, nil, "no decoder available for %q files", ext)
	}

	path, release, err := p.storage.Acquire(doc.Content, ext)
	if err != nil {
		return "", newError(KindExtractionFailure, err, "failed to stage file")
	}
	defer release()

	text, err := p.decode(decoder, path)
	if err != nil {
		p.logger.Warn("decoder failed", zap.String("format", ext), zap.Error(err))
		return "", newError(KindExtractionFailure, err, "failed to read or process the file")
	}

	if strings.TrimSpace(text) == "" {
		return "", newError(KindExtractionFailure, nil, "could not extract any text from the file")
	}

	p.logger.Debug("text extracted",
		zap.String("format", ext),
		zap.Int64("bytes", size),
		zap.Int("chars", len(text)),
	)

	return text, nil
}

// ExtractFile reads a stored resume from disk and extracts it.
func (p *extractionPipeline) ExtractFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newError(KindResourceMissing, err, "resume file could not be found")
		}
		return "", newError(KindExtractionFailure, err, "failed to read resume file")
	}

	return p.Extract(models.NewDocument(filepath.Base(path), content))
}

// SupportedFormats lists the allowed formats whose decoder is available.
func (p *extractionPipeline) SupportedFormats() []string {
	var formats []string
	for _, format := range AllowedFormats {
		if d, ok := p.decoders[format]; ok && d.Available() {
			formats = append(formats, format)
		}
	}
	return formats
}

// decode converts decoder panics into errors; some format libraries panic
// on malformed input instead of returning an error.
func (p *extractionPipeline) decode(d Decoder, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	return d.Decode(path)
}

func isAllowedFormat(ext string) bool {
	return slices.Contains(AllowedFormats, ext)
}
