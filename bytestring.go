// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

// EncodeBytes writes v as a CBOR byte string (major type 2): a length head
// followed by the raw bytes.
func EncodeBytes(sink Sink, v []byte) error {
	if err := writeHead(sink, majorByteString, uint64(len(v))); err != nil {
		return err
	}
	return sink.Write(v)
}

// DecodeBytes reads a CBOR byte string and returns a copy of its contents.
func DecodeBytes(source *Source) ([]byte, error) {
	h, err := expectMajor(source, majorByteString)
	if err != nil {
		return nil, err
	}
	return readBody(source, h.argument)
}

// DecodeBytesCapped reads a CBOR byte string the same way [DecodeBytes]
// does, additionally rejecting it with [KindBufferOverflow] if its encoded
// length exceeds cap, independent of how much data the source itself has
// left.
func DecodeBytesCapped(source *Source, cap int) ([]byte, error) {
	h, err := expectMajor(source, majorByteString)
	if err != nil {
		return nil, err
	}
	if h.argument > uint64(cap) {
		return nil, bufferOverflow("byte string length %d exceeds cap %d", h.argument, cap)
	}
	return readBody(source, h.argument)
}

// DecodeBytesFixed reads a CBOR byte string into dst, a fixed-extent
// destination. The encoded length must equal len(dst) exactly:
// [KindBufferOverflow] if it is larger, [KindBufferUnderflow] if it is
// smaller, mirroring the asymmetry a fixed-size Go array decode applies
// to its element count.
func DecodeBytesFixed(source *Source, dst []byte) error {
	h, err := expectMajor(source, majorByteString)
	if err != nil {
		return err
	}
	extent := uint64(len(dst))
	switch {
	case h.argument > extent:
		return bufferOverflow("byte string length %d exceeds fixed extent %d", h.argument, extent)
	case h.argument < extent:
		return bufferUnderflow("byte string length %d is short of fixed extent %d", h.argument, extent)
	}
	buf, err := readBody(source, h.argument)
	if err != nil {
		return err
	}
	copy(dst, buf)
	return nil
}

// readBody validates that length fits the remaining source before
// allocating, so a corrupt or adversarial length prefix can't be used to
// force an oversized allocation ahead of the underflow check that would
// otherwise catch it.
func readBody(source *Source, length uint64) ([]byte, error) {
	if length > uint64(source.Len()) {
		return nil, bufferUnderflow("need %d bytes, have %d", length, source.Len())
	}
	buf := make([]byte, length)
	if err := source.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
