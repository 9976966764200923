// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"errors"
	"fmt"
)

// Kind classifies an encode/decode failure so that callers can make
// programmatic decisions (retry with a larger buffer, reject the input,
// escalate as a bug) without parsing the error text.
//
// There is no Kind for success: a nil error is success, matching Go
// convention rather than a zero-valued "not an error" enumerator.
type Kind string

const (
	// KindEncoding reports an internal producer-side invariant violation.
	KindEncoding Kind = "encoding_error"

	// KindDecoding reports a structural mismatch, such as a record whose
	// encoded member count does not match the target type, or a union
	// header using a non-canonical form.
	KindDecoding Kind = "decoding_error"

	// KindBufferUnderflow reports that a read requested more bytes than
	// remain in the source.
	KindBufferUnderflow Kind = "buffer_underflow"

	// KindBufferOverflow reports that a write exceeded a sink's capacity,
	// or that a decoded length exceeds a caller-supplied cap or a
	// fixed-extent destination.
	KindBufferOverflow Kind = "buffer_overflow"

	// KindValueNotRepresentable reports that a value cannot fit the
	// requested native type (integer narrowing, a float that would lose
	// precision by narrowing).
	KindValueNotRepresentable Kind = "value_not_representable"

	// KindInvalidUsage reports API misuse: a decode target that is not a
	// non-nil pointer, a value this package has no encoding for, a boxed
	// type never registered with RegisterType, or a value whose type is not
	// a member of the union it is encoded through.
	KindInvalidUsage Kind = "invalid_usage"

	// KindUnexpectedType reports that the decoded head's major type or
	// simple subtype does not match what the caller asked to decode into,
	// or that a union saw an unrecognized type ID.
	KindUnexpectedType Kind = "unexpected_type"

	// KindIllFormed reports a reserved head additional-information value
	// (28, 29, 30) or a break code encountered outside of an
	// indefinite-length context, neither of which this package supports.
	KindIllFormed Kind = "ill_formed"
)

// Error is the concrete error type returned by every function in this
// package. Use [IsKind] or [errors.As] to inspect it.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cbor: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("cbor: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	if format == "" {
		return &Error{Kind: kind}
	}
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func encodingError(format string, args ...any) error {
	return newError(KindEncoding, format, args...)
}

func decodingError(format string, args ...any) error {
	return newError(KindDecoding, format, args...)
}

func bufferUnderflow(format string, args ...any) error {
	return newError(KindBufferUnderflow, format, args...)
}

func bufferOverflow(format string, args ...any) error {
	return newError(KindBufferOverflow, format, args...)
}

func valueNotRepresentable(format string, args ...any) error {
	return newError(KindValueNotRepresentable, format, args...)
}

func invalidUsage(format string, args ...any) error {
	return newError(KindInvalidUsage, format, args...)
}

func unexpectedType(format string, args ...any) error {
	return newError(KindUnexpectedType, format, args...)
}

func illFormed(format string, args ...any) error {
	return newError(KindIllFormed, format, args...)
}

// IsKind reports whether err is, or wraps, a [*Error] of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
