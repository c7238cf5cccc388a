// Package failure holds the error taxonomy shared by every pipeline stage
// and the classifier that turns model delegate errors into user-facing messages.
package failure

import (
	"errors"
	"fmt"
)

// Category is one of the user-visible failure classes.
type Category string

const (
	UnsupportedFormat  Category = "UnsupportedFormat"
	TooLarge           Category = "TooLarge"
	IOError            Category = "IoError"
	EmptyResponse      Category = "EmptyResponse"
	MalformedResponse  Category = "MalformedResponse"
	QuotaExceeded      Category = "QuotaExceeded"
	ServiceUnavailable Category = "ServiceUnavailable"
	Unknown            Category = "Unknown"
)

// User-facing messages.
const (
	MsgUnsupportedFormat  = "Format file tidak didukung. Harap gunakan PDF atau Word."
	MsgTooLarge           = "File terlalu besar. Maksimal 50MB."
	MsgIOError            = "Dokumen tidak dapat dibaca. Harap pilih ulang file tersebut."
	MsgQuotaExceeded      = "Kuota API telah habis atau terlalu banyak permintaan (Rate Limit). Harap tunggu beberapa menit sebelum mencoba lagi, atau pastikan tagihan akun API Anda aktif."
	MsgServiceUnavailable = "Server AI sedang sibuk atau mengalami gangguan teknis. Harap coba lagi dalam beberapa saat."
	MsgNoDocument         = "Harap pilih dokumen terlebih dahulu."
	MsgUnknown            = "Gagal memproses dokumen. Pastikan dokumen terbaca dengan baik atau coba lagi nanti."
)

// Failure is a classified pipeline error.
type Failure struct {
	Category Category
	Message  string // shown to the user
	Detail   string // diagnostic text, e.g. a decode error
	Cause    error
}

func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s", f.Category, f.Detail)
	}
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Category, f.Cause)
	}
	return string(f.Category)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Retryable reports whether the caller should offer an explicit "retry now" action.
func (f *Failure) Retryable() bool {
	return f.Category == QuotaExceeded
}

// New builds a Failure using the default message of the category.
func New(c Category, detail string, cause error) *Failure {
	return &Failure{Category: c, Message: MessageFor(c), Detail: detail, Cause: cause}
}

// As extracts a *Failure from err.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// MessageFor returns the user-facing message for c.
func MessageFor(c Category) string {
	switch c {
	case UnsupportedFormat:
		return MsgUnsupportedFormat
	case TooLarge:
		return MsgTooLarge
	case IOError:
		return MsgIOError
	case QuotaExceeded:
		return MsgQuotaExceeded
	case ServiceUnavailable:
		return MsgServiceUnavailable
	default:
		return MsgUnknown
	}
}
