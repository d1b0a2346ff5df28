package converter

import (
	"fmt"

	"github.com/user/yuvsnap/pkg/yuv"
)

// ErrorKind classifies a conversion failure. Every kind is a caller-input error.
type ErrorKind int

const (
	// NullBuffer means no frame buffer was supplied.
	NullBuffer ErrorKind = iota + 1
	// EmptyDimensions means the width or height is not positive.
	EmptyDimensions
	// UnsupportedFormat means the format tag is not a recognised YUV layout.
	UnsupportedFormat
	// MalformedBuffer means the planes do not cover the declared geometry.
	MalformedBuffer
	// LockFailed means the buffer could not be mapped for reading.
	LockFailed
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case NullBuffer:
		return "null buffer"
	case EmptyDimensions:
		return "empty dimensions"
	case UnsupportedFormat:
		return "unsupported format"
	case MalformedBuffer:
		return "malformed buffer"
	case LockFailed:
		return "lock failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConversionError is returned by every failing conversion.
type ConversionError struct {
	Kind   ErrorKind
	Format yuv.Format
	Detail string
	Err    error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrNullBuffer        = &ConversionError{Kind: NullBuffer}
	ErrEmptyDimensions   = &ConversionError{Kind: EmptyDimensions}
	ErrUnsupportedFormat = &ConversionError{Kind: UnsupportedFormat}
	ErrMalformedBuffer   = &ConversionError{Kind: MalformedBuffer}
	ErrLockFailed        = &ConversionError{Kind: LockFailed}
)

func (e *ConversionError) Error() string {
	msg := "convert: " + e.Kind.String()
	if e.Format != yuv.FormatUnknown || e.Kind == UnsupportedFormat {
		msg += " (" + e.Format.String() + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ConversionError of the same kind.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, f yuv.Format, detail string, args ...interface{}) *ConversionError {
	return &ConversionError{Kind: kind, Format: f, Detail: fmt.Sprintf(detail, args...)}
}
