package models

import (
	"path/filepath"
	"strings"
)

// Document is an uploaded file held in memory for the duration of one
// extraction call.
type Document struct {
	Filename string
	Content  []byte
	Size     int64
}

func NewDocument(filename string, content []byte) Document {
	return Document{
		Filename: filename,
		Content:  content,
		Size:     int64(len(content)),
	}
}

// Extension returns the lower-cased extension without the leading dot.
func (d Document) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Filename)), ".")
}
