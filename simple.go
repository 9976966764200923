// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

// EncodeBool writes v as a CBOR simple value (major type 7): false or true.
func EncodeBool(sink Sink, v bool) error {
	info := simpleFalse
	if v {
		info = simpleTrue
	}
	return writeHeadRaw(sink, majorSimple, info, nil)
}

// DecodeBool reads a CBOR boolean simple value.
func DecodeBool(source *Source) (bool, error) {
	h, err := expectMajor(source, majorSimple)
	if err != nil {
		return false, err
	}
	switch h.info {
	case simpleFalse:
		return false, nil
	case simpleTrue:
		return true, nil
	default:
		return false, unexpectedType("expected a boolean simple value, got simple(%d)", h.info)
	}
}

// EncodeNull writes the CBOR null simple value.
func EncodeNull(sink Sink) error {
	return writeHeadRaw(sink, majorSimple, simpleNull, nil)
}

// DecodeNull reads the CBOR null simple value, failing if the next item is
// anything else. Most callers want [DecodeOptional] instead, which peeks
// for null rather than requiring it.
func DecodeNull(source *Source) error {
	h, err := expectMajor(source, majorSimple)
	if err != nil {
		return err
	}
	if h.info != simpleNull {
		return unexpectedType("expected null, got simple(%d)", h.info)
	}
	return nil
}

// isNullAhead peeks at the next head without consuming it and reports
// whether it is the null simple value.
func isNullAhead(source *Source) (bool, error) {
	peeked, err := source.Peek(1)
	if err != nil {
		return false, err
	}
	b := peeked[0]
	return majorType(b>>5) == majorSimple && b&0x1F == simpleNull, nil
}

// EncodeOptional writes nil as CBOR null, or encode(*v) otherwise.
func EncodeOptional[T any](sink Sink, v *T, encode func(Sink, T) error) error {
	if v == nil {
		return EncodeNull(sink)
	}
	return encode(sink, *v)
}

// DecodeOptional reads CBOR null as a nil *T, or decode(source) wrapped in
// a pointer otherwise. It peeks the head before deciding which branch to
// take, so a failed decode never consumes bytes meant for the caller's
// next item beyond what decode itself read.
func DecodeOptional[T any](source *Source, decode func(*Source) (T, error)) (*T, error) {
	isNull, err := isNullAhead(source)
	if err != nil {
		return nil, err
	}
	if isNull {
		if err := DecodeNull(source); err != nil {
			return nil, err
		}
		return nil, nil
	}
	v, err := decode(source)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
