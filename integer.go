// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "math"

// Unsigned is any type whose underlying representation is an unsigned
// integer, including named enum types such as type Suit uint8.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Signed is any type whose underlying representation is a signed integer,
// including named enum types such as type Weekday int8.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// EncodeUnsigned writes v as a CBOR unsigned integer (major type 0). An
// enum type whose underlying type satisfies [Unsigned] codes through here
// directly; there is no separate enum path.
func EncodeUnsigned[T Unsigned](sink Sink, v T) error {
	return writeHead(sink, majorUnsigned, uint64(v))
}

// DecodeUnsigned reads a CBOR unsigned integer into T, failing with
// [KindValueNotRepresentable] if the decoded value does not fit in T.
func DecodeUnsigned[T Unsigned](source *Source) (T, error) {
	h, err := expectMajor(source, majorUnsigned)
	if err != nil {
		return 0, err
	}
	v := T(h.argument)
	if uint64(v) != h.argument {
		return 0, valueNotRepresentable("unsigned value %d overflows target type", h.argument)
	}
	return v, nil
}

// EncodeSigned writes v as a CBOR integer: major type 0 if v is
// non-negative, major type 1 (negative integer) otherwise. Negative values
// use the ones'-complement identity ^v == -v-1, which holds for every
// fixed-width signed integer including the minimum representable value, so
// no case needs special-casing around overflow.
func EncodeSigned[T Signed](sink Sink, v T) error {
	n := int64(v)
	if n >= 0 {
		return writeHead(sink, majorUnsigned, uint64(n))
	}
	return writeHead(sink, majorNegative, ^uint64(n))
}

// DecodeSigned reads a CBOR integer (major type 0 or 1) into T, failing
// with [KindValueNotRepresentable] if the decoded value does not fit in T.
func DecodeSigned[T Signed](source *Source) (T, error) {
	n, err := decodeSignedRaw(source)
	if err != nil {
		return 0, err
	}
	v := T(n)
	if int64(v) != n {
		return 0, valueNotRepresentable("value %d overflows target type", n)
	}
	return v, nil
}

// decodeSignedRaw reads a CBOR integer head (major type 0 or 1) and
// resolves it to an int64, shared by [DecodeSigned] and the reflective
// dynamic-dispatch path used by [Decode] and the automatic record codec.
func decodeSignedRaw(source *Source) (int64, error) {
	h, err := readHead(source)
	if err != nil {
		return 0, err
	}
	switch h.major {
	case majorUnsigned:
		if h.argument > uint64(math.MaxInt64) {
			return 0, valueNotRepresentable("unsigned value %d overflows int64", h.argument)
		}
		return int64(h.argument), nil
	case majorNegative:
		if h.argument > uint64(math.MaxInt64) {
			return 0, valueNotRepresentable("negative value -%d-1 overflows int64", h.argument)
		}
		return int64(^h.argument), nil
	default:
		return 0, unexpectedType("expected major type 0 or 1, got %d", h.major)
	}
}
