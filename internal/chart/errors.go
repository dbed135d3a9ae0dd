package chart

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidChart  = errors.New("invalid chart")
	ErrInvalidConfig = errors.New("invalid config")
	ErrRender        = errors.New("render error")
	ErrIO            = errors.New("io error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidChart  ErrorKind = "invalid_chart"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindRender        ErrorKind = "render"
	KindIO            ErrorKind = "io"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindInvalidChart:
		return target == ErrInvalidChart
	case KindInvalidConfig:
		return target == ErrInvalidConfig
	case KindRender:
		return target == ErrRender
	case KindIO:
		return target == ErrIO
	}
	return false
}

// OpenKind classifies a failure to open a file: a missing file is
// KindNotFound, anything else (permissions, a file used as a directory)
// is KindIO.
func OpenKind(err error) ErrorKind {
	if errors.Is(err, fs.ErrNotExist) {
		return KindNotFound
	}
	return KindIO
}

// IsKind helps callers classify errors without depending on loader details.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
