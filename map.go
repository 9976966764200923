// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"sort"
)

// EncodeMap writes m as a CBOR map (major type 5): a pair-count head
// followed by each key/value pair. Go map iteration order is randomized,
// but this package's determinism invariant requires one byte sequence per
// logical value, so pairs are written in ascending order of their encoded
// key bytes (RFC 8949's canonical map ordering) rather than iteration
// order.
func EncodeMap[K comparable, V any](sink Sink, m map[K]V, encodeKey func(Sink, K) error, encodeVal func(Sink, V) error) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	type pair struct {
		key []byte
		val V
	}
	pairs := make([]pair, 0, len(m))
	for k, v := range m {
		var keyBuf []byte
		keySink := NewDynamicSink(&keyBuf, UnlimitedCapacity)
		if err := encodeKey(keySink, k); err != nil {
			return err
		}
		pairs = append(pairs, pair{key: keyBuf, val: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})

	if err := writeHead(sink, majorMap, uint64(len(pairs))); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := sink.Write(p.key); err != nil {
			return err
		}
		if err := encodeVal(sink, p.val); err != nil {
			return err
		}
	}

	scope.Commit()
	return nil
}

// DecodeMap reads a CBOR map, decoding each key and value with decodeKey
// and decodeVal.
func DecodeMap[K comparable, V any](source *Source, decodeKey func(*Source) (K, error), decodeVal func(*Source) (V, error)) (map[K]V, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorMap)
	if err != nil {
		return nil, err
	}

	hint := h.argument
	if hint > maxPreallocHint {
		hint = maxPreallocHint
	}
	result := make(map[K]V, hint)
	for i := uint64(0); i < h.argument; i++ {
		k, err := decodeKey(source)
		if err != nil {
			return nil, err
		}
		v, err := decodeVal(source)
		if err != nil {
			return nil, err
		}
		result[k] = v
	}

	scope.Commit()
	return result, nil
}

// DecodeMapCapped reads a CBOR map the same way [DecodeMap] does,
// additionally rejecting it with [KindBufferOverflow] if its encoded pair
// count exceeds cap.
func DecodeMapCapped[K comparable, V any](source *Source, cap int, decodeKey func(*Source) (K, error), decodeVal func(*Source) (V, error)) (map[K]V, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorMap)
	if err != nil {
		return nil, err
	}
	if h.argument > uint64(cap) {
		return nil, bufferOverflow("map pair count %d exceeds cap %d", h.argument, cap)
	}

	hint := h.argument
	if hint > maxPreallocHint {
		hint = maxPreallocHint
	}
	result := make(map[K]V, hint)
	for i := uint64(0); i < h.argument; i++ {
		k, err := decodeKey(source)
		if err != nil {
			return nil, err
		}
		v, err := decodeVal(source)
		if err != nil {
			return nil, err
		}
		result[k] = v
	}

	scope.Commit()
	return result, nil
}
