// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "reflect"

// Fielder is the manual member-protocol opt-in: a record type writes its
// own field accessors instead of exposing its fields to reflection. This
// for types whose wire shape should not simply mirror their Go field
// layout (computed members, field renames, skipped members).
type Fielder interface {
	// CBORFieldCount reports how many members this record writes, which
	// becomes the array head's count.
	CBORFieldCount() int

	// EncodeCBORFields writes exactly CBORFieldCount members to sink, in
	// the order DecodeCBORFields expects them back.
	EncodeCBORFields(sink Sink) error

	// DecodeCBORFields reads exactly CBORFieldCount members from source.
	DecodeCBORFields(source *Source) error
}

// Reflectable is a zero-size marker a struct embeds to opt into the
// automatic member protocol: every exported field, in declaration order,
// is encoded and decoded by reflection rather than by hand-written
// accessors.
//
//	type Point struct {
//		cbor.Reflectable
//		X, Y float64
//	}
type Reflectable struct{}

func (Reflectable) isReflectable() {}

type reflectableMarker interface {
	isReflectable()
}

// EncodeRecord writes v as a CBOR array (major type 4) headed by its
// member count, one element per field. v must implement [Fielder] or be a
// struct (or pointer to one) embedding [Reflectable].
func EncodeRecord(sink Sink, v any) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	if f, ok := v.(Fielder); ok {
		if err := writeHead(sink, majorArray, uint64(f.CBORFieldCount())); err != nil {
			return err
		}
		if err := f.EncodeCBORFields(sink); err != nil {
			return err
		}
		scope.Commit()
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !isReflectableValue(rv) {
		return invalidUsage("%T implements neither Fielder nor Reflectable", v)
	}

	fields := exportedFields(rv)
	if err := writeHead(sink, majorArray, uint64(len(fields))); err != nil {
		return err
	}
	for _, field := range fields {
		if err := encodeReflect(sink, field); err != nil {
			return err
		}
	}
	scope.Commit()
	return nil
}

// DecodeRecord reads a CBOR array into v, a non-nil pointer to a type
// implementing [Fielder] or embedding [Reflectable]. The encoded member
// count must equal v's field count exactly; there is no tolerance for
// extra or missing trailing members.
func DecodeRecord(source *Source, v any) error {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return err
	}

	if f, ok := v.(Fielder); ok {
		if h.argument != uint64(f.CBORFieldCount()) {
			return decodingError("record expects %d members, encoded array has %d", f.CBORFieldCount(), h.argument)
		}
		if err := f.DecodeCBORFields(source); err != nil {
			return err
		}
		scope.Commit()
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return invalidUsage("DecodeRecord requires a non-nil pointer, got %T", v)
	}
	elem := rv.Elem()
	if !isReflectableValue(elem) {
		return invalidUsage("%T implements neither Fielder nor Reflectable", v)
	}

	fields := exportedFields(elem)
	if h.argument != uint64(len(fields)) {
		return decodingError("record expects %d members, encoded array has %d", len(fields), h.argument)
	}
	for _, field := range fields {
		decoded, err := decodeDynamicInto(source, field.Type())
		if err != nil {
			return err
		}
		field.Set(decoded)
	}

	scope.Commit()
	return nil
}

func isReflectableValue(rv reflect.Value) bool {
	if rv.Kind() != reflect.Struct {
		return false
	}
	_, ok := reflect.New(rv.Type()).Interface().(reflectableMarker)
	return ok
}

var reflectableType = reflect.TypeOf(Reflectable{})

// exportedFields returns rv's exported, non-marker fields in declaration
// order.
func exportedFields(rv reflect.Value) []reflect.Value {
	t := rv.Type()
	fields := make([]reflect.Value, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Type == reflectableType || !sf.IsExported() {
			continue
		}
		fields = append(fields, rv.Field(i))
	}
	return fields
}
