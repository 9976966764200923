// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor encodes and decodes typed Go values to and from the Concise
// Binary Object Representation (RFC 8949).
//
// The package implements a deterministic subset of CBOR: definite-length
// items only, major types 0, 1, 2, 3, 4, 5, and 7. Indefinite-length items,
// CBOR tags (major type 6), and the undefined/simple-value-follows simple
// values are neither produced nor accepted. Floating-point values are always
// demoted to the narrowest width (half, single, or double precision) that
// round-trips exactly, and NaN always encodes as the canonical half-float
// NaN. Two encodings of the same value therefore always produce identical
// bytes.
//
// # Buffers
//
// [Sink] is an append-only byte destination used for encoding; [NewDynamicSink]
// wraps a caller-owned []byte slice that grows (optionally capped),
// [NewStaticSink] wraps a fixed-extent slice that never grows. [Source] is a
// positioned byte view used for decoding, created with [NewSource]. Both
// expose a rollback scope ([Sink.BeginRollback], [Source.BeginRollback]) so
// that composite encode/decode operations can undo partial work on failure
// without an undo log — the scope is just a saved size or cursor position.
//
// # Values
//
// Primitives (unsigned/signed integers, bool, float32/float64, byte
// strings, text strings) have dedicated Encode*/Decode* functions. Enums
// (any type whose underlying type is an integer) codec through their
// underlying representation. Slices and arrays use [EncodeSlice]/
// [DecodeSlice]; maps use [EncodeMap]/[DecodeMap]; optional values use
// [EncodeOptional]/[DecodeOptional]. Byte strings, text strings, slices,
// and maps each have a Capped decode variant ([DecodeBytesCapped],
// [DecodeTextCapped], [DecodeSliceCapped], [DecodeMapCapped]) that rejects
// an encoded length or count over a caller-supplied cap before allocating,
// and byte/text strings additionally have a Fixed variant
// ([DecodeBytesFixed], [DecodeTextFixed]) for a fixed-extent destination,
// which requires an exact length match rather than an upper bound. Text
// strings are never validated as UTF-8 on encode or decode; this package
// is a transparent octet pipe for them.
//
// Fixed-size Go arrays ([N]T) decode only from a CBOR array whose count is
// exactly N; use [Encode]/[Decode] for these, since a type parameter can't
// range over N.
//
// Record types participate via the member protocol (see [Fielder] and
// [Reflectable]) and are encoded as a CBOR array of their member values,
// headed by a count. A record additionally registered with [RegisterType]
// may be boxed ([EncodeBoxed], [DecodeBoxed]); a record declared as an
// alternative with [UnionMember] may be used in a union ([NewUnion]),
// without any registration. Both forms wrap the record in a two-element
// CBOR array of [type-id, payload].
//
// # Façade
//
// [Encode] and [Decode] are generic entry points that dispatch on the
// runtime shape of the value passed to them, so callers that don't need the
// lower-level per-kind functions can call them directly on structs, slices,
// maps, and primitives alike.
package cbor
