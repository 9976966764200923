// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeStruct(t *testing.T) {
	p := point{X: 1, Y: -2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, p); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got point
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != p {
		t.Errorf("round trip %+v = %+v", p, got)
	}
}

func TestEncodeDecodeSliceOfStructs(t *testing.T) {
	points := []point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, points); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got []point
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, points) {
		t.Errorf("round trip %+v = %+v", points, got)
	}
}

func TestEncodeDecodeMapDynamic(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got map[string]int64
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip %+v = %+v", m, got)
	}
}

func TestEncodeDecodePointer(t *testing.T) {
	v := int64(99)
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, &v); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got *int64
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got == nil || *got != v {
		t.Errorf("Decode = %v, want pointer to %d", got, v)
	}
}

func TestEncodeNilPointer(t *testing.T) {
	var v *int64
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, v); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got *int64
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != nil {
		t.Errorf("Decode = %v, want nil", got)
	}
}

func TestEncodeNilInterface(t *testing.T) {
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, nil); err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if want := []byte{0xF6}; !reflect.DeepEqual(storage, want) {
		t.Errorf("Encode(nil) = % X, want % X", storage, want)
	}
}

func TestDecodeRequiresNonNilPointer(t *testing.T) {
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeUnsigned(sink, uint64(1)); err != nil {
		t.Fatalf("EncodeUnsigned: %v", err)
	}

	var target uint64
	err := Decode(NewSource(storage), target) // not a pointer
	if !IsKind(err, KindInvalidUsage) {
		t.Fatalf("Decode with a non-pointer: got %v, want KindInvalidUsage", err)
	}
}

func TestEncodeDecodeFixedArray(t *testing.T) {
	arr := [3]int64{10, 20, 30}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, arr); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got [3]int64
	if err := Decode(NewSource(storage), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != arr {
		t.Errorf("round trip %v = %v", arr, got)
	}
}

func TestDecodeFixedArrayLengthMismatchRejected(t *testing.T) {
	arr := [3]int64{1, 2, 3}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, arr); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got [4]int64
	err := Decode(NewSource(storage), &got)
	if !IsKind(err, KindBufferUnderflow) {
		t.Fatalf("Decode into a longer array than encoded: got %v, want KindBufferUnderflow", err)
	}
}

func TestEncodeDecodeRecordSchemaMismatchRollsBackSource(t *testing.T) {
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := Encode(sink, point{X: 1, Y: 2}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	source := NewSource(storage)
	var bad widget // a different record shape with a different member count (1, not 2)
	err := DecodeRecord(source, &bad)
	if !IsKind(err, KindDecoding) {
		t.Fatalf("DecodeRecord with mismatched shape: got %v, want KindDecoding", err)
	}
	if got, want := source.Position(), 0; got != want {
		t.Errorf("source.Position() after failed decode = %d, want %d (rolled back)", got, want)
	}
}
