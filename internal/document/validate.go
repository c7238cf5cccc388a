package document

import (
	"errors"
	"fmt"

	"github.com/thywilljoshua/scriptgen/internal/failure"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrTooLarge          = errors.New("document exceeds 50 MiB")
	ErrIO                = errors.New("document read failed")
)

// ValidatedDocument is a document that passed format and size checks.
type ValidatedDocument struct {
	*Document
}

// Validate checks the declared media type and size. It never reads the content.
// Size is checked first so an oversized file is TooLarge whatever its type.
func Validate(doc *Document) (*ValidatedDocument, error) {
	if doc == nil {
		return nil, errors.New("no document")
	}
	if doc.Size > MaxSize {
		return nil, failure.New(failure.TooLarge,
			fmt.Sprintf("%s is %d bytes, limit %d", doc.Name, doc.Size, MaxSize), ErrTooLarge)
	}
	if !Accepted(doc.MediaType) {
		return nil, failure.New(failure.UnsupportedFormat,
			fmt.Sprintf("%s has media type %q", doc.Name, doc.MediaType), ErrUnsupportedFormat)
	}
	return &ValidatedDocument{Document: doc}, nil
}
