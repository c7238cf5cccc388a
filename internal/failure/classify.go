package failure

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError carries the numeric and textual status reported by a model delegate.
type StatusError struct {
	Code    int    // HTTP-style status, e.g. 429
	Status  string // e.g. RESOURCE_EXHAUSTED
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("delegate status %d %s: %s", e.Code, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

var (
	quotaSignals   = []string{"429", "RESOURCE_EXHAUSTED"}
	serviceSignals = []string{"500", "503", "UNAVAILABLE"}
)

// Classify maps a delegate failure to a category and user message.
// Rules are checked in order: quota, then service fault; everything else is Unknown.
func Classify(err error) (Category, string) {
	c := classify(err)
	return c, MessageFor(c)
}

// FromDelegate wraps a delegate error into a classified Failure.
func FromDelegate(err error) *Failure {
	c := classify(err)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Failure{Category: c, Message: MessageFor(c), Detail: detail, Cause: err}
}

func classify(err error) Category {
	if err == nil {
		return Unknown
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == 429 || se.Status == "RESOURCE_EXHAUSTED":
			return QuotaExceeded
		case se.Code == 500 || se.Code == 503 || se.Status == "UNAVAILABLE":
			return ServiceUnavailable
		}
	}
	msg := err.Error()
	if containsAny(msg, quotaSignals) {
		return QuotaExceeded
	}
	if containsAny(msg, serviceSignals) {
		return ServiceUnavailable
	}
	return Unknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
