// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

// Package xdrinterfaces defines the primary interfaces of the XDR engine
//
// (This package is primarily separated out in order to permit the
// implementation to be broken down into multiple packages)
package xdrinterfaces

import (
	"io"
	"reflect"

	xdrschema "github.com/samgomena/serde-xdr/schema"
)

// Padding selects the zero-padding rule applied after the body of a
// variable length string.
//
// The canonical XDR rule (RFC 4506) pads the body out to the next multiple
// of four bytes, adding nothing when the length is already aligned. The
// original producer of this dialect instead computes the pad as
// `4 - len%4`, which emits a full four-byte pad for aligned lengths. Both
// sides of a connection must agree; the policy is therefore explicit
// rather than silently "fixed".
type Padding int

const (
	// PaddingAlways emits 1-4 pad bytes (the `4 - len%4` rule). This is
	// the default, for bit-exact compatibility with the original producer.
	PaddingAlways Padding = iota

	// PaddingAligned emits 0-3 pad bytes per RFC 4506
	PaddingAligned
)

// Bytes returns the number of pad bytes following a body of length n
func (p Padding) Bytes(n int) int {
	if p == PaddingAligned {
		return (4 - (n & 3)) & 3
	}
	return 4 - (n & 3)
}

// interface Marshaler is the interface implemented by a type which knows
// how to encode and decode itself to/from XDR. This is the
// shape-description contract: the engine never inspects a Marshaler's
// structure, it only supplies the wire-level operations the type's own
// (typically generated) walk invokes.
type Marshaler interface {
	MarshalXDR(e Encoder) error
	UnmarshalXDR(d Decoder) error
}

// interface Codec is the interface by which the marshalling of types which
// are not natively supported may be defined.
//
// Codecs may be registered with a Coder in order to specify how to handle
// a specific type. It is recommended to implement Marshaler on your own
// types instead; Codecs are useful when dealing with third party types.
type Codec interface {
	// Encodes v into the encoder e.
	Encode(e Encoder, v reflect.Value) error

	// Decodes v from the decoder d.
	Decode(d Decoder, v reflect.Value) error
}

// interface Coder is the top-level interface to the XDR library
//
// A coder (which may be safely used from multiple threads) provides the
// ability to marshal objects to and from XDR. It also contains a
// repository of Codecs which know how to marshal various types.
type Coder interface {
	// Marshals o into the returned buffer
	Marshal(o interface{}) ([]byte, error)

	// Unmarshals buf into the object pointed to by op, returning the
	// number of bytes consumed
	Unmarshal(buf []byte, op interface{}) (int, error)

	// Write marshals o into the passed writer
	Write(w io.Writer, o interface{}) error

	// Read unmarshals *op out of the passed reader, returning the number
	// of bytes consumed
	Read(r io.Reader, op interface{}) (int, error)

	// Constructs a new encoder which writes to w
	NewEncoder(w io.Writer) Encoder

	// Constructs a new decoder which reads from r
	NewDecoder(r io.Reader) Decoder

	// Registers the codec. Panics if a codec is already registered for
	// the type, or an attempt is made to register a codec for a type
	// for which it is not permitted to register codecs.
	RegisterCodec(template interface{}, c Codec)
	RegisterCodecReflect(type_ reflect.Type, c Codec)
}

// interface Encoder is the interface to the XDR encoder
//
// An encoder session processes one top-level value end-to-end from a
// single goroutine. All integer encodings are big-endian and exactly as
// wide as the type; there is no per-primitive word alignment in this
// dialect.
type Encoder interface {
	// EncodeBool writes a bool as a single byte, 1 or 0
	EncodeBool(b bool) error

	// EncodeInt8 writes a single signed byte
	EncodeInt8(i int8) error

	// EncodeUint8 writes a single unsigned byte
	EncodeUint8(i uint8) error

	// EncodeInt16 writes a 16-bit signed integer
	EncodeInt16(i int16) error

	// EncodeUint16 writes a 16-bit unsigned integer
	EncodeUint16(i uint16) error

	// EncodeInt writes an int (32 bits) to the XDR encoder
	EncodeInt(i int32) error

	// EncodeUnsignedInt writes an unsigned int (32 bits) to the XDR encoder
	EncodeUnsignedInt(i uint32) error

	// EncodeHyper writes a hyper (int64) to the XDR encoder
	EncodeHyper(h int64) error

	// EncodeUnsignedHyper writes an unsigned hyper (uint64) to the XDR encoder
	EncodeUnsignedHyper(h uint64) error

	// EncodeFloat writes a single precision floating point number
	EncodeFloat(f float32) error

	// EncodeDouble writes a double precision floating point number
	EncodeDouble(d float64) error

	// EncodeString writes a string: an unsigned 32-bit element count, one
	// byte per element, then zero padding per the active Padding policy
	EncodeString(s string) error

	// EncodeSequence writes an unsigned 32-bit element count and then
	// invokes element once per element, in order
	EncodeSequence(n int, element func(i int) error) error

	// EncodeStruct invokes each field writer in declared order. No count
	// or tag is written; the field list is schema-time knowledge shared by
	// encoder and decoder.
	EncodeStruct(fields ...func() error) error

	// EncodeEnum writes an enum ordinal as a signed 32-bit integer
	EncodeEnum(ordinal int32) error

	// EncodeUnion writes the wire selector of the chosen arm (resolved
	// through t) as an unsigned 32-bit integer, then invokes payload if it
	// is non-nil
	EncodeUnion(t *xdrschema.UnionTable, arm int, payload func() error) error

	// EncodeOptional always fails: optional values are not implemented by
	// this engine
	EncodeOptional(present bool, payload func() error) error

	// EncodeOpaque always fails: raw byte buffers (distinct from strings)
	// are not implemented by this engine
	EncodeOpaque(b []byte) error

	// EncodeMap always fails: associative containers are not implemented
	// by this engine
	EncodeMap(n int, entry func(i int) error) error

	// Encode writes an object to the XDR encoder
	Encode(o interface{}) error

	// EncodeValue encodes an object to the XDR encoder (via reflection)
	EncodeValue(v reflect.Value) error
}

// interface SequenceDecoder is a lazy countdown over one in-progress wire
// sequence. The element count is read from the wire on the first call to
// More; each subsequent successful call consumes one element's worth of
// budget until the sequence is exhausted.
type SequenceDecoder interface {
	// More reports whether another element follows. The caller must decode
	// exactly one element between successive true results.
	More() (bool, error)

	// Len returns the total element count, reading it from the wire if it
	// has not yet been read
	Len() (int, error)
}

// interface Decoder is the interface to the XDR decoder
//
// A decoder session mirrors an encoder session and additionally maintains
// a running total of bytes consumed from the source.
type Decoder interface {
	// DecodeBool reads a single byte; bytes other than 0 and 1 are a
	// domain violation
	DecodeBool() (bool, error)

	DecodeInt8() (int8, error)
	DecodeUint8() (uint8, error)
	DecodeInt16() (int16, error)
	DecodeUint16() (uint16, error)
	DecodeInt() (int32, error)
	DecodeUnsignedInt() (uint32, error)
	DecodeHyper() (int64, error)
	DecodeUnsignedHyper() (uint64, error)

	// DecodeFloat reads a single precision floating point number
	DecodeFloat() (float32, error)

	// DecodeDouble reads a double precision floating point number
	DecodeDouble() (float64, error)

	// DecodeString reads a string and skips the padding the encoder would
	// have written under the active Padding policy
	DecodeString() (string, error)

	// Sequence returns a countdown cursor over the sequence starting at
	// the current position. The cursor is valid for one sequence only.
	Sequence() SequenceDecoder

	// DecodeSequence reads the element count and invokes element once per
	// element, returning the count
	DecodeSequence(element func(i int) error) (int, error)

	// DecodeStruct invokes each field reader in declared order. The field
	// count comes from the caller's type, not the wire.
	DecodeStruct(fields ...func() error) error

	// DecodeEnum reads a signed 32-bit ordinal and validates it against t,
	// returning the ordinal. An ordinal absent from t is a domain
	// violation.
	DecodeEnum(t *xdrschema.EnumTable) (int32, error)

	// DecodeUnion reads an unsigned 32-bit wire selector and resolves it
	// through t to the local arm index. A selector matching no arm fails
	// with the bad-index-for-union error.
	DecodeUnion(t *xdrschema.UnionTable) (int, error)

	// DecodeOptional always fails: optional values are not implemented by
	// this engine
	DecodeOptional() (bool, error)

	// DecodeOpaque always fails: raw byte buffers are not implemented by
	// this engine
	DecodeOpaque() ([]byte, error)

	// DecodeMap always fails: associative containers are not implemented
	// by this engine
	DecodeMap(entry func() error) error

	// DecodeAny always fails: the format is not self describing, so a
	// destination shape must be supplied
	DecodeAny() error

	// BytesConsumed returns the total number of bytes read from the source
	// during this session, including string padding
	BytesConsumed() int

	// Decode reads an object from the stream into *op
	Decode(op interface{}) error

	// DecodeValue reads an object from the stream.
	// v must be a settable value (v.CanSet() is true)
	DecodeValue(v reflect.Value) error
}
