// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

// Package xdr implements encoding and decoding of the XDR (External Data
// Representation) dialect produced by serde-xdr.
//
// The Encoder/Decoder types in this package offer low level marshalling
// functions, but in most cases you will wish to use the higher level
// functions based upon reflection.
//
// The dialect differs from RFC 4506 in one important respect: primitive
// values occupy exactly as many bytes as their type is wide, with no
// widening to 4-byte words. All multi-byte integers are big-endian.
//
// The mapping from Go types to the wire is:
//
//                        Go | Wire
//     ----------------------+-----------------------------------------
//                      bool | 1 byte, 0 or 1
//               int8, uint8 | 1 byte
//             int16, uint16 | 2 bytes
//             int32, uint32 | 4 bytes
//             int64, uint64 | 8 bytes
//          float32, float64 | 4 / 8 bytes (IEEE 754 bits)
//                    string | u32 element count, bytes, zero padding
//                       []T | u32 element count, then each T
//                      [N]T | u32 element count (must equal N), then each T
//              struct{ ...} | each field in order, no framing
//
// String padding is subtle: the canonical XDR rule pads the body to the
// next multiple of four bytes (adding nothing when already aligned), but
// the original serde-xdr producer always emits between 1 and 4 pad bytes
// (`4 - len%4`). Both ends must agree, so the policy is an explicit option
// on the Coder: PaddingAlways (the default, bit-exact with the original
// producer) or PaddingAligned (RFC 4506). See NewCoderWithPadding.
//
// Go has no direct equivalent of XDR enumerations or unions; both are
// driven by discriminant tables from the schema package:
//
//   - An enum is a named int32 type. Build an xdrschema.EnumTable with its
//     declared ordinals and register EnumCodec(table) for the type; the
//     decoder rejects undeclared ordinals.
//
//   - A union's wire tag is an arbitrary, non-positional u32 selector
//     assigned by an external schema. Build an xdrschema.UnionTable
//     mapping selectors to local arm indices and implement Marshaler on
//     the union type, dispatching through Encoder.EncodeUnion and
//     Decoder.DecodeUnion.
//
// Several shapes the XDR format admits in principle are deliberately not
// implemented by this engine: optional values, raw opaque byte buffers,
// and associative maps all fail with an unsupported shape error, and
// decoding without a destination shape fails immediately because the
// format is not self describing. Callers needing these must marshal
// manually via the Marshaler interface.
//
// You can specify custom behaviour for your type using the Marshaler
// interface. If implemented, it replaces the default behaviour. You can
// override behaviour for third party types by implementing and registering
// a Codec; see the documentation for that type and the Coder with which
// they are registered.
//
// To avoid confusion and conflicts between different packages, it is not
// possible to register new codecs with the default (global) Coder.
package xdr

import xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"

// interface Coder is the top-level interface to the XDR library
//
// A coder (which may be safely used from multiple threads) provides the
// ability to marshal objects to and from XDR. It also contains a
// repository of Codecs which know how to marshal various types.
type Coder = xdrinterfaces.Coder

// interface Encoder is the interface to the XDR encoder
type Encoder = xdrinterfaces.Encoder

// interface Decoder is the interface to the XDR decoder
type Decoder = xdrinterfaces.Decoder

// interface SequenceDecoder is the lazy countdown cursor over one wire
// sequence during decode
type SequenceDecoder = xdrinterfaces.SequenceDecoder

// interface Marshaler is the interface implemented by a type which knows
// how to encode and decode itself to/from XDR
type Marshaler = xdrinterfaces.Marshaler

// interface Codec is the interface by which the marshalling of types which
// are not natively supported may be defined
type Codec = xdrinterfaces.Codec

// Padding selects the string padding policy of a Coder
type Padding = xdrinterfaces.Padding

const (
	// PaddingAlways emits 1-4 pad bytes after a string body (the original
	// producer's rule)
	PaddingAlways = xdrinterfaces.PaddingAlways

	// PaddingAligned emits 0-3 pad bytes per RFC 4506
	PaddingAligned = xdrinterfaces.PaddingAligned
)
