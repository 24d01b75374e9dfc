package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransientStorage writes uploaded bytes to a scratch file so decoders that
// only accept a path can read them. Callers must invoke the returned release
// func on every exit path.
type TransientStorage interface {
	Acquire(content []byte, ext string) (path string, release func(), err error)
	EnsureDir() error
}

type transientStorage struct {
	dir    string
	logger *zap.Logger
}

func NewTransientStorage(dir string, logger *zap.Logger) TransientStorage {
	return &transientStorage{
		dir:    dir,
		logger: logger,
	}
}

func (s *transientStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	return nil
}

// Acquire implements TransientStorage.
func (s *transientStorage) Acquire(content []byte, ext string) (string, func(), error) {
	filename := fmt.Sprintf("resume_%s.%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.dir, filename)

	dst, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	release := func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove temp file", zap.String("path", filePath), zap.Error(err))
		}
	}

	if _, err := dst.Write(content); err != nil {
		dst.Close()
		release()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := dst.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return filePath, release, nil
}
