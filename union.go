// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"fmt"
	"reflect"
)

// UnionAlternative names one member of a closed [Union] set: a Go type and
// the type-id it occupies on the wire. Build one with [UnionMember].
type UnionAlternative struct {
	TypeID uint64
	Type   reflect.Type
}

// UnionMember declares T as a [Union] alternative under typeID.
func UnionMember[T any](typeID uint64) UnionAlternative {
	return UnionAlternative{TypeID: typeID, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// Union is a closed set of alternative record types, each encoded as a
// two-element CBOR array: [type-id, payload]. Unlike [EncodeBoxed], a Union's
// alternatives are declared once at construction rather than drawn from
// the package-wide [RegisterType] registry, so two unrelated unions may
// reuse the same type-id for unrelated types without conflict.
type Union struct {
	byID   map[uint64]reflect.Type
	byType map[reflect.Type]uint64
}

// NewUnion builds a Union from its alternatives. It panics if the same
// type-id or the same Go type appears more than once: this is the
// closest Go gets to a compile-time uniqueness check, so it happens once,
// at program startup, rather than being deferred to the first mismatched
// encode or decode.
func NewUnion(alternatives ...UnionAlternative) *Union {
	u := &Union{
		byID:   make(map[uint64]reflect.Type, len(alternatives)),
		byType: make(map[reflect.Type]uint64, len(alternatives)),
	}
	for _, alt := range alternatives {
		if existing, ok := u.byID[alt.TypeID]; ok {
			panic(fmt.Sprintf("cbor: union type-id %d used by both %s and %s", alt.TypeID, existing, alt.Type))
		}
		if existing, ok := u.byType[alt.Type]; ok {
			panic(fmt.Sprintf("cbor: union type %s registered under both type-id %d and %d", alt.Type, existing, alt.TypeID))
		}
		u.byID[alt.TypeID] = alt.Type
		u.byType[alt.Type] = alt.TypeID
	}
	return u
}

// Encode writes v wrapped in a two-element CBOR array: [type-id, payload].
// v's dynamic type must be one of u's alternatives.
func (u *Union) Encode(sink Sink, v any) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	t := reflect.TypeOf(v)
	typeID, ok := u.byType[t]
	if !ok {
		return invalidUsage("type %s is not a member of this union", t)
	}

	if err := writeHead(sink, majorArray, 2); err != nil {
		return err
	}
	if err := writeHead(sink, majorUnsigned, typeID); err != nil {
		return err
	}
	if err := encodeReflect(sink, reflect.ValueOf(v)); err != nil {
		return err
	}
	scope.Commit()
	return nil
}

// Decode reads a union value and returns it as its alternative's concrete
// type, boxed in an any.
func (u *Union) Decode(source *Source) (any, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return nil, err
	}
	// A union header is always canonical: the single byte 0x82, never a
	// longer head form that merely happens to decode to the same count.
	if h.info != 2 {
		return nil, decodingError("union header must be the canonical single-byte form, got additional-info %d", h.info)
	}
	if h.argument != 2 {
		return nil, decodingError("union value must be a 2-element array, got %d elements", h.argument)
	}

	typeID, err := DecodeUnsigned[uint64](source)
	if err != nil {
		return nil, err
	}
	t, ok := u.byID[typeID]
	if !ok {
		return nil, unexpectedType("type-id %d is not a member of this union", typeID)
	}

	payload, err := decodeDynamicInto(source, t)
	if err != nil {
		return nil, err
	}

	scope.Commit()
	return payload.Interface(), nil
}
