package models

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the entry points can render one message per run
type Kind string

const (
	ConfigError      Kind = "config"
	CredentialError  Kind = "credential"
	GenerationError  Kind = "generation"
	ValidationError  Kind = "validation"
	UploadError      Kind = "upload"
	IOError          Kind = "io"
	ImageDecodeError Kind = "image_decode"
)

// Error is a failure tagged with its Kind and the operation that produced it
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and operation name
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a kinded error from a format string
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost *Error in err's chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
