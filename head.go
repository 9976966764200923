// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "encoding/binary"

// majorType is the top three bits of a CBOR head byte.
type majorType byte

const (
	majorUnsigned   majorType = 0
	majorNegative   majorType = 1
	majorByteString majorType = 2
	majorTextString majorType = 3
	majorArray      majorType = 4
	majorMap        majorType = 5
	majorTag        majorType = 6
	majorSimple     majorType = 7
)

// Additional-info values used under majorSimple (RFC 8949 §3.3) and the
// reserved/unsupported range shared by every major type.
const (
	simpleFalse     byte = 20
	simpleTrue      byte = 21
	simpleNull      byte = 22
	simpleUndefined byte = 23 // not produced or accepted by this package
	infoOneByte     byte = 24
	infoTwoByte     byte = 25 // also: half-precision float
	infoFourByte    byte = 26 // also: single-precision float
	infoEightByte   byte = 27 // also: double-precision float
	infoReservedLo  byte = 28
	infoReservedHi  byte = 30
	infoBreak       byte = 31
)

// head is a decoded CBOR item head: major type plus its argument, with the
// additional-information value the head byte carried (the argument itself
// for values folded into the head byte, otherwise 24-27 naming how many
// extra bytes followed).
type head struct {
	major    majorType
	info     byte
	argument uint64
}

// writeHead writes major and argument using the smallest encoding RFC 8949
// allows: argument folded into the head byte when it fits in 5 bits,
// otherwise the fewest trailing bytes (1, 2, 4, or 8) that hold it. Every
// composite and integer encoder in this package goes through this
// function, which is what gives the package its determinism: there is
// exactly one way to write a given (major, argument) pair.
func writeHead(sink Sink, major majorType, argument uint64) error {
	info, extra := smallestForm(argument)
	return writeHeadRaw(sink, major, info, extra)
}

// writeHeadFixed writes major with info and exactly width trailing bytes,
// bypassing smallest-form compression. Floating-point heads use this: a
// float's declared width is chosen by the demotion search in float.go, not
// by how small its bit pattern happens to be.
func writeHeadFixed(sink Sink, major majorType, info byte, argument uint64, width int) error {
	extra := make([]byte, width)
	switch width {
	case 0:
	case 1:
		extra[0] = byte(argument)
	case 2:
		binary.BigEndian.PutUint16(extra, uint16(argument))
	case 4:
		binary.BigEndian.PutUint32(extra, uint32(argument))
	case 8:
		binary.BigEndian.PutUint64(extra, argument)
	default:
		return encodingError("invalid head width %d", width)
	}
	return writeHeadRaw(sink, major, info, extra)
}

func writeHeadRaw(sink Sink, major majorType, info byte, extra []byte) error {
	if err := sink.WriteByte(byte(major)<<5 | info); err != nil {
		return err
	}
	if len(extra) == 0 {
		return nil
	}
	return sink.Write(extra)
}

// smallestForm returns the additional-info value and trailing bytes that
// encode argument in the fewest bytes RFC 8949 allows.
func smallestForm(argument uint64) (info byte, extra []byte) {
	switch {
	case argument < 24:
		return byte(argument), nil
	case argument <= 0xFF:
		return infoOneByte, []byte{byte(argument)}
	case argument <= 0xFFFF:
		extra = make([]byte, 2)
		binary.BigEndian.PutUint16(extra, uint16(argument))
		return infoTwoByte, extra
	case argument <= 0xFFFFFFFF:
		extra = make([]byte, 4)
		binary.BigEndian.PutUint32(extra, uint32(argument))
		return infoFourByte, extra
	default:
		extra = make([]byte, 8)
		binary.BigEndian.PutUint64(extra, argument)
		return infoEightByte, extra
	}
}

// readHead reads and decodes the next item head from source.
func readHead(source *Source) (head, error) {
	b, err := source.ReadByte()
	if err != nil {
		return head{}, err
	}
	major := majorType(b >> 5)
	info := b & 0x1F

	switch {
	case info < infoOneByte:
		return head{major: major, info: info, argument: uint64(info)}, nil
	case info == infoOneByte:
		var extra [1]byte
		if err := source.Read(extra[:]); err != nil {
			return head{}, err
		}
		return head{major: major, info: info, argument: uint64(extra[0])}, nil
	case info == infoTwoByte:
		var extra [2]byte
		if err := source.Read(extra[:]); err != nil {
			return head{}, err
		}
		return head{major: major, info: info, argument: uint64(binary.BigEndian.Uint16(extra[:]))}, nil
	case info == infoFourByte:
		var extra [4]byte
		if err := source.Read(extra[:]); err != nil {
			return head{}, err
		}
		return head{major: major, info: info, argument: uint64(binary.BigEndian.Uint32(extra[:]))}, nil
	case info == infoEightByte:
		var extra [8]byte
		if err := source.Read(extra[:]); err != nil {
			return head{}, err
		}
		return head{major: major, info: info, argument: binary.BigEndian.Uint64(extra[:])}, nil
	case info >= infoReservedLo && info <= infoReservedHi:
		return head{}, illFormed("reserved additional-information value %d", info)
	case info == infoBreak:
		// This package accepts only definite-length items; a break code can
		// never appear outside an indefinite-length container, which this
		// package never produces or opens.
		return head{}, illFormed("break code outside indefinite-length context")
	default:
		return head{}, illFormed("unhandled additional-information value %d", info)
	}
}

// expectMajor reads a head and checks its major type.
func expectMajor(source *Source, want majorType) (head, error) {
	h, err := readHead(source)
	if err != nil {
		return head{}, err
	}
	if h.major != want {
		return head{}, unexpectedType("expected major type %d, got %d", want, h.major)
	}
	return h, nil
}
