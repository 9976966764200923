// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "testing"

// point opts into the automatic member protocol by embedding Reflectable.
type point struct {
	Reflectable
	X int64
	Y int64
}

func TestReflectableRecordRoundTrip(t *testing.T) {
	p := point{X: 3, Y: -4}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeRecord(sink, p); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	var got point
	if err := DecodeRecord(NewSource(storage), &got); err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if got != p {
		t.Errorf("round trip %+v = %+v", p, got)
	}
}

func TestReflectableRecordHasArrayCountHead(t *testing.T) {
	p := point{X: 1, Y: 2}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeRecord(sink, p); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}
	h, err := readHead(NewSource(storage))
	if err != nil {
		t.Fatalf("readHead: %v", err)
	}
	if h.major != majorArray || h.argument != 2 {
		t.Errorf("head = (%d, %d), want (%d, 2)", h.major, h.argument, majorArray)
	}
}

// rect implements Fielder by hand: the manual member-protocol path.
type rect struct {
	Width, Height int64
}

func (r *rect) CBORFieldCount() int { return 2 }

func (r *rect) EncodeCBORFields(sink Sink) error {
	if err := EncodeSigned(sink, r.Width); err != nil {
		return err
	}
	return EncodeSigned(sink, r.Height)
}

func (r *rect) DecodeCBORFields(source *Source) error {
	var err error
	if r.Width, err = DecodeSigned[int64](source); err != nil {
		return err
	}
	if r.Height, err = DecodeSigned[int64](source); err != nil {
		return err
	}
	return nil
}

func TestFielderRecordRoundTrip(t *testing.T) {
	r := rect{Width: 10, Height: 20}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeRecord(sink, &r); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	var got rect
	if err := DecodeRecord(NewSource(storage), &got); err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if got != r {
		t.Errorf("round trip %+v = %+v", r, got)
	}
}

func TestRecordMemberCountMismatchRejected(t *testing.T) {
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := writeHead(sink, majorArray, 3); err != nil {
		t.Fatalf("writeHead: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := EncodeSigned(sink, int64(i)); err != nil {
			t.Fatalf("EncodeSigned: %v", err)
		}
	}

	var got rect
	err := DecodeRecord(NewSource(storage), &got)
	if !IsKind(err, KindDecoding) {
		t.Fatalf("DecodeRecord with mismatched member count: got %v, want KindDecoding", err)
	}
}

func TestRecordRequiresFielderOrReflectable(t *testing.T) {
	type plain struct{ A int64 }
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	err := EncodeRecord(sink, plain{A: 1})
	if !IsKind(err, KindInvalidUsage) {
		t.Fatalf("EncodeRecord on a non-participating struct: got %v, want KindInvalidUsage", err)
	}
}

// line nests a record field inside another record, exercising the
// reflective path recursing through encodeReflect/decodeDynamicInto.
type line struct {
	Reflectable
	From, To point
}

func TestReflectableRecordNesting(t *testing.T) {
	l := line{From: point{X: 0, Y: 0}, To: point{X: 5, Y: 5}}
	var storage []byte
	sink := NewDynamicSink(&storage, UnlimitedCapacity)
	if err := EncodeRecord(sink, l); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	var got line
	if err := DecodeRecord(NewSource(storage), &got); err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if got != l {
		t.Errorf("round trip %+v = %+v", l, got)
	}
}
