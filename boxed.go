// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "reflect"

// EncodeBoxed writes v wrapped in a two-element CBOR array: [type-id,
// payload]. T must have been registered with [RegisterType] first;
// [DecodeBoxed] is what recovers the concrete type on the far side without
// either party needing to agree on it ahead of time.
func EncodeBoxed[T any](sink Sink, v T) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	t := reflect.TypeOf((*T)(nil)).Elem()
	typeID, ok := globalRegistry.lookupID(t)
	if !ok {
		return invalidUsage("type %s was never registered with RegisterType", t)
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

// DecodeBoxed reads a boxed value and returns it as its registered
// concrete type, boxed in an any. The two-element array header must be
// present verbatim: this package produces and accepts only definite-length
// arrays, so a boxed value is always exactly [type-id, payload], never an
// indefinite-length stand-in for the same shape.
func DecodeBoxed(source *Source) (any, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return nil, err
	}
	if h.argument != 2 {
		return nil, decodingError("boxed value must be a 2-element array, got %d elements", h.argument)
	}

	typeID, err := DecodeUnsigned[uint64](source)
	if err != nil {
		return nil, err
	}
	t, ok := globalRegistry.lookupType(typeID)
	if !ok {
		return nil, unexpectedType("type-id %d was never registered with RegisterType", typeID)
	}

	payload, err := decodeDynamicInto(source, t)
	if err != nil {
		return nil, err
	}

	scope.Commit()
	return payload.Interface(), nil
}
