// Package augerr holds the error taxonomy shared by the skew and lighting engines.
//
// Every engine failure is an *Error carrying one of three codes:
//   - INVALID_IMAGE: nil, empty or zero-dimension input raster
//   - INVALID_EFFECT_SPEC: unknown skew mode, effect family or lighting kind
//   - GEOMETRY_ERROR: corner configuration that admits no invertible projective mapping
//
// # Usage
//
//	_, err := skew.Apply(img, params)
//	if errors.Is(err, augerr.ErrInvalidImage) {
//	    // skip this image
//	}
package augerr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeInvalidImage      Code = "INVALID_IMAGE"
	CodeInvalidEffectSpec Code = "INVALID_EFFECT_SPEC"
	CodeGeometry          Code = "GEOMETRY_ERROR"
)

// Sentinels for errors.Is. Any *Error with the same code matches them.
var (
	ErrInvalidImage      = &Error{Code: CodeInvalidImage, Message: "invalid image"}
	ErrInvalidEffectSpec = &Error{Code: CodeInvalidEffectSpec, Message: "invalid effect spec"}
	ErrGeometry          = &Error{Code: CodeGeometry, Message: "degenerate geometry"}
)

// Error is a coded engine error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error target carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// GetCode extracts the code from err, or "" when err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
