package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/scriptgen/internal/failure"
)

// EncodedPayload is the transport-safe form of a document.
type EncodedPayload struct {
	Data     string // standard base64, no line wrapping
	MIMEType string
}

// Encode reads the whole document and base64-encodes it.
// A stream that cannot be opened, fails mid-read, or is shorter than the
// declared size yields an IoError failure.
func Encode(doc *ValidatedDocument) (EncodedPayload, error) {
	if doc == nil || doc.open == nil {
		return EncodedPayload{}, failure.New(failure.IOError, "document has no content source", ErrIO)
	}
	rc, err := doc.open()
	if err != nil {
		return EncodedPayload{}, failure.New(failure.IOError, fmt.Sprintf("open %s: %v", doc.Name, err), fmt.Errorf("%w: %w", ErrIO, err))
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(rc, MaxSize+1))
	if err != nil {
		return EncodedPayload{}, failure.New(failure.IOError, fmt.Sprintf("read %s: %v", doc.Name, err), fmt.Errorf("%w: %w", ErrIO, err))
	}
	if int64(len(b)) != doc.Size {
		return EncodedPayload{}, failure.New(failure.IOError,
			fmt.Sprintf("read %s: got %d bytes, expected %d", doc.Name, len(b), doc.Size), ErrIO)
	}
	return EncodedPayload{
		Data:     base64.StdEncoding.EncodeToString(b),
		MIMEType: doc.MediaType,
	}, nil
}

// Decode returns the raw bytes of p.
func (p EncodedPayload) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}

// PageCount returns the number of pages of a PDF payload, or 0 for Word documents.
func PageCount(p EncodedPayload) (n int, err error) {
	if p.MIMEType != MediaPDF {
		return 0, nil
	}
	// rsc.io/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("open pdf: %v", r)
		}
	}()
	b, err := p.Decode()
	if err != nil {
		return 0, fmt.Errorf("decode payload: %w", err)
	}
	doc, err := rpdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return doc.NumPage(), nil
}
