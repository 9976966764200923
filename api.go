// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"reflect"
	"sort"
)

// Encode writes v using whichever per-kind encoder matches v's runtime
// shape: the generic Encode*/Decode* functions and [EncodeRecord] cover
// the same ground explicitly for callers who already know v's type. Encode
// exists for callers assembling heterogeneous structures (a slice of any,
// a struct field of interface type) where threading a type parameter
// through isn't practical.
func Encode(sink Sink, v any) error {
	if v == nil {
		return EncodeNull(sink)
	}
	return encodeReflect(sink, reflect.ValueOf(v))
}

// Decode reads a value into *v, dispatching on the type v points to. v
// must be a non-nil pointer.
func Decode(source *Source, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return invalidUsage("Decode requires a non-nil pointer, got %T", v)
	}
	decoded, err := decodeDynamicInto(source, rv.Elem().Type())
	if err != nil {
		return err
	}
	rv.Elem().Set(decoded)
	return nil
}

func encodeReflect(sink Sink, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Bool:
		return EncodeBool(sink, rv.Bool())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return writeHead(sink, majorUnsigned, rv.Uint())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return EncodeSigned(sink, rv.Int())
	case reflect.Float32:
		return EncodeFloat32(sink, float32(rv.Float()))
	case reflect.Float64:
		return EncodeFloat64(sink, rv.Float())
	case reflect.String:
		return EncodeText(sink, rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return EncodeBytes(sink, rv.Bytes())
		}
		return encodeSliceReflect(sink, rv)
	case reflect.Map:
		return encodeMapReflect(sink, rv)
	case reflect.Array:
		return encodeFixedArrayReflect(sink, rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return EncodeNull(sink)
		}
		return encodeReflect(sink, rv.Elem())
	case reflect.Struct:
		return EncodeRecord(sink, rv.Interface())
	default:
		return invalidUsage("cannot encode value of kind %s", rv.Kind())
	}
}

func encodeSliceReflect(sink Sink, rv reflect.Value) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	if err := writeHead(sink, majorArray, uint64(rv.Len())); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := encodeReflect(sink, rv.Index(i)); err != nil {
			return err
		}
	}
	scope.Commit()
	return nil
}

// encodeFixedArrayReflect writes a Go [N]T array with the exact-length
// discipline a fixed-extent destination calls for: the header
// carries N, and N is exactly how many elements follow, never more or
// fewer.
func encodeFixedArrayReflect(sink Sink, rv reflect.Value) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	if err := writeHead(sink, majorArray, uint64(rv.Len())); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := encodeReflect(sink, rv.Index(i)); err != nil {
			return err
		}
	}
	scope.Commit()
	return nil
}

func encodeMapReflect(sink Sink, rv reflect.Value) error {
	scope := sink.BeginRollback()
	defer scope.Rollback()

	type pair struct {
		key []byte
		val reflect.Value
	}
	keys := rv.MapKeys()
	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		var keyBuf []byte
		keySink := NewDynamicSink(&keyBuf, UnlimitedCapacity)
		if err := encodeReflect(keySink, k); err != nil {
			return err
		}
		pairs = append(pairs, pair{key: keyBuf, val: rv.MapIndex(k)})
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
		if err := encodeReflect(sink, p.val); err != nil {
			return err
		}
	}
	scope.Commit()
	return nil
}

// decodeDynamicInto reads one CBOR item as type t, used by [Decode] and by
// the automatic reflective path in record.go. It returns an addressable-
// irrelevant reflect.Value of type t; callers assign it with Set.
func decodeDynamicInto(source *Source, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Bool:
		v, err := DecodeBool(source)
		return reflect.ValueOf(v), err
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		h, err := expectMajor(source, majorUnsigned)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.New(t).Elem()
		rv.SetUint(h.argument)
		if rv.Uint() != h.argument {
			return reflect.Value{}, valueNotRepresentable("unsigned value %d overflows %s", h.argument, t)
		}
		return rv, nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		n, err := decodeSignedRaw(source)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.New(t).Elem()
		rv.SetInt(n)
		if rv.Int() != n {
			return reflect.Value{}, valueNotRepresentable("value %d overflows %s", n, t)
		}
		return rv, nil
	case reflect.Float32:
		v, err := DecodeFloat32(source)
		return reflect.ValueOf(v), err
	case reflect.Float64:
		v, err := DecodeFloat64(source)
		return reflect.ValueOf(v), err
	case reflect.String:
		v, err := DecodeText(source)
		return reflect.ValueOf(v), err
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			v, err := DecodeBytes(source)
			return reflect.ValueOf(v), err
		}
		return decodeSliceReflect(source, t)
	case reflect.Map:
		return decodeMapReflect(source, t)
	case reflect.Array:
		return decodeFixedArrayReflect(source, t)
	case reflect.Pointer:
		isNull, err := isNullAhead(source)
		if err != nil {
			return reflect.Value{}, err
		}
		if isNull {
			if err := DecodeNull(source); err != nil {
				return reflect.Value{}, err
			}
			return reflect.Zero(t), nil
		}
		inner, err := decodeDynamicInto(source, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	case reflect.Struct:
		ptr := reflect.New(t)
		if err := DecodeRecord(source, ptr.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	default:
		return reflect.Value{}, invalidUsage("cannot decode into kind %s", t.Kind())
	}
}

func decodeSliceReflect(source *Source, t reflect.Type) (reflect.Value, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return reflect.Value{}, err
	}

	hint := h.argument
	if hint > maxPreallocHint {
		hint = maxPreallocHint
	}
	result := reflect.MakeSlice(t, 0, int(hint))
	for i := uint64(0); i < h.argument; i++ {
		elem, err := decodeDynamicInto(source, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		result = reflect.Append(result, elem)
	}

	scope.Commit()
	return result, nil
}

// decodeFixedArrayReflect reads a CBOR array into a Go [N]T array. The
// encoded count must equal N exactly: unlike a slice, a fixed-extent
// destination has no give, the same rule this package already applies to
// fixed-extent byte and text string destinations.
func decodeFixedArrayReflect(source *Source, t reflect.Type) (reflect.Value, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorArray)
	if err != nil {
		return reflect.Value{}, err
	}
	extent := uint64(t.Len())
	switch {
	case h.argument > extent:
		return reflect.Value{}, bufferOverflow("encoded array count %d exceeds fixed extent %d", h.argument, extent)
	case h.argument < extent:
		return reflect.Value{}, bufferUnderflow("encoded array count %d is short of fixed extent %d", h.argument, extent)
	}

	result := reflect.New(t).Elem()
	for i := 0; i < t.Len(); i++ {
		elem, err := decodeDynamicInto(source, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		result.Index(i).Set(elem)
	}

	scope.Commit()
	return result, nil
}

func decodeMapReflect(source *Source, t reflect.Type) (reflect.Value, error) {
	scope := source.BeginRollback()
	defer scope.Rollback()

	h, err := expectMajor(source, majorMap)
	if err != nil {
		return reflect.Value{}, err
	}

	result := reflect.MakeMapWithSize(t, 0)
	for i := uint64(0); i < h.argument; i++ {
		k, err := decodeDynamicInto(source, t.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := decodeDynamicInto(source, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetMapIndex(k, v)
	}

	scope.Commit()
	return result, nil
}
