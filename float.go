// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math"

	"github.com/x448/float16"
)

// canonicalNaNBits is the half-precision bit pattern every NaN encodes as,
// regardless of the sign bit or payload bits the in-memory value happened
// to carry. This is what makes two encodings of "some NaN" byte-identical.
const canonicalNaNBits uint16 = 0x7E00

// EncodeFloat64 writes v using the narrowest of half, single, or double
// precision that round-trips back to v exactly: it demotes to single first
// and, if that is exact, tries half; otherwise it falls back to double.
// NaN always writes as the canonical
// half-precision NaN, independent of its sign or payload bits.
func EncodeFloat64(sink Sink, v float64) error {
	if math.IsNaN(v) {
		return writeHeadFixed(sink, majorSimple, infoTwoByte, uint64(canonicalNaNBits), 2)
	}

	v32 := float32(v)
	if float64(v32) == v {
		h16 := float16.Fromfloat32(v32)
		if float64(h16.Float32()) == v {
			return writeHeadFixed(sink, majorSimple, infoTwoByte, uint64(uint16(h16)), 2)
		}
		return writeHeadFixed(sink, majorSimple, infoFourByte, uint64(math.Float32bits(v32)), 4)
	}
	return writeHeadFixed(sink, majorSimple, infoEightByte, math.Float64bits(v), 8)
}

// EncodeFloat32 writes v with the same demotion search as [EncodeFloat64].
// Widening v to float64 first is always exact, so the two functions share
// one code path.
func EncodeFloat32(sink Sink, v float32) error {
	return EncodeFloat64(sink, float64(v))
}

// DecodeFloat64 reads a CBOR floating-point simple value of any of the
// three supported widths and returns it as a float64.
func DecodeFloat64(source *Source) (float64, error) {
	h, err := expectMajor(source, majorSimple)
	if err != nil {
		return 0, err
	}
	switch h.info {
	case infoTwoByte:
		f16 := float16.Float16(uint16(h.argument))
		return float64(f16.Float32()), nil
	case infoFourByte:
		return float64(math.Float32frombits(uint32(h.argument))), nil
	case infoEightByte:
		return math.Float64frombits(h.argument), nil
	default:
		return 0, unexpectedType("expected a floating-point simple value, got simple(%d)", h.info)
	}
}

// DecodeFloat32 reads a CBOR floating-point simple value and narrows it to
// float32, failing with [KindValueNotRepresentable] if the encoded value
// needs double precision to represent exactly.
func DecodeFloat32(source *Source) (float32, error) {
	v, err := DecodeFloat64(source)
	if err != nil {
		return 0, err
	}
	f32 := float32(v)
	if !math.IsNaN(v) && float64(f32) != v {
		return 0, valueNotRepresentable("encoded value %v needs double precision", v)
	}
	return f32, nil
}
