// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"reflect"
	"testing"
)

func TestMapRoundTrip(t *testing.T) {
	m := map[string]int64{"a": 1, "b": -2, "c": 3}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}

	got, err := DecodeMap(NewSource(storage), DecodeText, DecodeSigned[int64])
	if err != nil {
		t.Fatalf("DecodeMap: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip %v = %v", m, got)
	}
}

func TestMapEncodingIsDeterministic(t *testing.T) {
	m := map[string]int64{"zebra": 1, "apple": 2, "mango": 3}
	encode := func(sink Sink, v int64) error { return EncodeSigned(sink, v) }

	var first []byte
	if err := EncodeMap(NewDynamicSink(&first, UnlimitedCapacity), m, EncodeText, encode); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	var second []byte
	if err := EncodeMap(NewDynamicSink(&second, UnlimitedCapacity), m, EncodeText, encode); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("two encodings of the same map differ: % X vs % X", first, second)
	}
}

func TestMapKeysSortedByEncodedBytes(t *testing.T) {
	m := map[string]int64{"b": 1, "a": 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}

	// Map head, then key "a" (length-1 text string 0x61 0x61) must come
	// before key "b" (0x61 0x62), regardless of map iteration order.
	source := NewSource(storage)
	if _, err := expectMajor(source, majorMap); err != nil {
		t.Fatalf("expectMajor: %v", err)
	}
	firstKey, err := DecodeText(source)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if firstKey != "a" {
		t.Errorf("first encoded key = %q, want %q", firstKey, "a")
	}
}

func TestMapDecodeFailureRollsBackSource(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}

	source := NewSource(storage)
	// DecodeBool on a map's key/value stream can never succeed: it forces
	// a failure partway through the composite read.
	_, err := DecodeMap(source, DecodeText, func(s *Source) (bool, error) {
		return DecodeBool(s)
	})
	if err == nil {
		t.Fatal("DecodeMap with a value decoder doomed to fail: want an error")
	}
	if got, want := source.Position(), 0; got != want {
		t.Errorf("source.Position() after failed decode = %d, want %d (rolled back)", got, want)
	}
}

func TestMapEncodeFailureRollsBackSink(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	before := sink.Size()

	failing := map[string]int64{"c": 3}
	err := EncodeMap(sink, failing, EncodeText, func(Sink, int64) error {
		return decodingError("forced failure")
	})
	if err == nil {
		t.Fatal("EncodeMap with a value encoder doomed to fail: want an error")
	}
	if got := sink.Size(); got != before {
		t.Errorf("sink.Size() after failed encode = %d, want %d (rolled back)", got, before)
	}
}

func TestMapCappedRejectsOversizedCount(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 2, "c": 3}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	_, err := DecodeMapCapped(NewSource(storage), 2, DecodeText, DecodeSigned[int64])
	if !IsKind(err, KindBufferOverflow) {
		t.Fatalf("DecodeMapCapped with a pair count over cap: got %v, want KindBufferOverflow", err)
	}
}

func TestMapCappedAcceptsWithinCap(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	got, err := DecodeMapCapped(NewSource(storage), 2, DecodeText, DecodeSigned[int64])
	if err != nil {
		t.Fatalf("DecodeMapCapped: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("DecodeMapCapped = %v, want %v", got, m)
	}
}

func TestMapEmpty(t *testing.T) {
	m := map[string]int64{}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeMap(sink, m, EncodeText, func(sink Sink, v int64) error {
		return EncodeSigned(sink, v)
	}); err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	got, err := DecodeMap(NewSource(storage), DecodeText, DecodeSigned[int64])
	if err != nil {
		t.Fatalf("DecodeMap: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}
