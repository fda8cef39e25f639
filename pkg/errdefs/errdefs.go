// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errdefs defines the error taxonomy shared by digest sessions,
// text encodings and random fills.
//
// Every failure carries an ErrorType so callers can branch on the category
// with errors.Is against the exported sentinels:
//
//	if errors.Is(err, errdefs.ErrFinalizedState) { ... }
package errdefs

import (
	"errors"
	"fmt"
)

// ErrorType categorizes an Error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeUnsupportedInput indicates an input shape or input/encoding
	// combination that cannot be normalized into bytes.
	ErrTypeUnsupportedInput

	// ErrTypeFinalizedState indicates input was offered to a session that
	// has already produced its digest.
	ErrTypeFinalizedState

	// ErrTypeRange indicates an offset, length or size outside the
	// permitted bounds.
	ErrTypeRange

	// ErrTypeUnsupportedOperation indicates the underlying capability does
	// not support the requested operation.
	ErrTypeUnsupportedOperation

	// ErrTypeUnknownAlgorithm indicates no hash engine is registered under
	// the requested name.
	ErrTypeUnknownAlgorithm

	// ErrTypeUnsupportedEncoding indicates an unknown text encoding name.
	ErrTypeUnsupportedEncoding
)

func (e ErrorType) String() string {
	switch e {
	case ErrTypeUnsupportedInput:
		return "UnsupportedInput"
	case ErrTypeFinalizedState:
		return "FinalizedState"
	case ErrTypeRange:
		return "RangeError"
	case ErrTypeUnsupportedOperation:
		return "UnsupportedOperation"
	case ErrTypeUnknownAlgorithm:
		return "UnknownAlgorithm"
	case ErrTypeUnsupportedEncoding:
		return "UnsupportedEncoding"
	default:
		return "UnknownError"
	}
}

// Sentinels for errors.Is. They match any *Error of the same Type.
var (
	ErrUnsupportedInput     = &Error{Type: ErrTypeUnsupportedInput, Message: "unsupported input"}
	ErrFinalizedState       = &Error{Type: ErrTypeFinalizedState, Message: "digest already called"}
	ErrRange                = &Error{Type: ErrTypeRange, Message: "value out of range"}
	ErrUnsupportedOperation = &Error{Type: ErrTypeUnsupportedOperation, Message: "operation not supported"}
	ErrUnknownAlgorithm     = &Error{Type: ErrTypeUnknownAlgorithm, Message: "unknown algorithm"}
	ErrUnsupportedEncoding  = &Error{Type: ErrTypeUnsupportedEncoding, Message: "unsupported encoding"}
)

// Error is the concrete error returned by this module's packages.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Op names the operation that failed (e.g. "update", "fillBuffer").
	Op string

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	prefix := e.Type.String()
	if e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Op, prefix)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Type. This lets the
// package sentinels match errors built with New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New builds an Error of the given type.
func New(errType ErrorType, op, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// Newf builds an Error of the given type with a formatted message and no cause.
func Newf(errType ErrorType, op, format string, args ...interface{}) *Error {
	return New(errType, op, fmt.Sprintf(format, args...), nil)
}

// IsType reports whether err, or any error it wraps, is an *Error of errType.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// TypeOf returns the ErrorType of err, or ErrTypeUnknown when err is not
// (and does not wrap) an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrTypeUnknown
}
