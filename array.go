// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

// maxPreallocHint bounds how large a slice [DecodeSlice] will preallocate
// from a decoded count before it has seen any actual elements, so a
// corrupt or adversarial count can't be used to force a multi-gigabyte
// allocation up front. The real bound on how many elements get appended is
// however much the source actually contains.
const maxPreallocHint = 4096

// EncodeSlice writes v as a CBOR array (major type 4): a count head
// followed by each element, encoded with encode in order.
func EncodeSlice[T any](sink Sink, v []T, encode func(Sink, T) error) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	if err := writeHead(sink, majorArray, uint64(len(v))); err != nil {
		return err
	}
	for _, item := range v {
		if err := encode(sink, item); err != nil {
			return err
		}
	}
	scope.Commit()
	return nil
}

// DecodeSlice reads a CBOR array, decoding each element with decode.
func DecodeSlice[T any](source *Source, decode func(*Source) (T, error)) ([]T, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return nil, err
	}

	hint := h.argument
	if hint > maxPreallocHint {
		hint = maxPreallocHint
	}
	result := make([]T, 0, hint)
	for i := uint64(0); i < h.argument; i++ {
		item, err := decode(source)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	scope.Commit()
	return result, nil
}

// DecodeSliceCapped reads a CBOR array the same way [DecodeSlice] does,
// additionally rejecting it with [KindBufferOverflow] if its encoded
// element count exceeds cap, independent of how much data the source
// itself has left or of maxPreallocHint.
func DecodeSliceCapped[T any](source *Source, cap int, decode func(*Source) (T, error)) ([]T, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return nil, err
	}
	if h.argument > uint64(cap) {
		return nil, bufferOverflow("array element count %d exceeds cap %d", h.argument, cap)
	}

	hint := h.argument
	if hint > maxPreallocHint {
		hint = maxPreallocHint
	}
	result := make([]T, 0, hint)
	for i := uint64(0); i < h.argument; i++ {
		item, err := decode(source)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	scope.Commit()
	return result, nil
}
