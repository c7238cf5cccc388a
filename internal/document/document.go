// Package document validates and encodes the uploaded source document
// before anything is sent to the model delegate.
package document

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Accepted media types.
const (
	MediaPDF  = "application/pdf"
	MediaDOC  = "application/msword"
	MediaDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxSize is the largest accepted document, 50 MiB.
const MaxSize int64 = 50 * 1024 * 1024

var extMediaTypes = map[string]string{
	".pdf":  MediaPDF,
	".doc":  MediaDOC,
	".docx": MediaDOCX,
}

// Opener yields the full byte stream of a document.
type Opener func() (io.ReadCloser, error)

// Document is a user-supplied blob with its declared media type and size.
type Document struct {
	Name      string
	MediaType string
	Size      int64
	open      Opener
}

// UserInput is the read-only snapshot the pipeline receives from the session.
type UserInput struct {
	Name     string
	Document *Document
}

// New wraps an arbitrary byte source.
func New(name, mediaType string, size int64, open Opener) *Document {
	return &Document{Name: name, MediaType: mediaType, Size: size, open: open}
}

// FromBytes wraps an in-memory document.
func FromBytes(name, mediaType string, b []byte) *Document {
	return New(name, mediaType, int64(len(b)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	})
}

// FromFile stats path and declares its media type from the extension.
// The file is opened lazily when the document is encoded.
func FromFile(path string) (*Document, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return New(filepath.Base(path), MediaTypeForPath(path), st.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

// MediaTypeForPath maps a filename extension to a declared media type.
func MediaTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := extMediaTypes[ext]; ok {
		return mt
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return "application/octet-stream"
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

// Accepted reports whether mediaType is one of the supported document types.
func Accepted(mediaType string) bool {
	switch mediaType {
	case MediaPDF, MediaDOC, MediaDOCX:
		return true
	}
	return false
}
