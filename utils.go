// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package xdr

import (
	"io"
	"reflect"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	"github.com/samgomena/serde-xdr/internal/coder"
	"github.com/samgomena/serde-xdr/internal/errors"
	xdrschema "github.com/samgomena/serde-xdr/schema"
)

// Failure sentinels. Every error returned by this package either matches
// one of these under errors.Is or is an I/O error from the underlying
// sink/source, propagated verbatim.
var (
	// A boolean byte on the wire was neither 0 nor 1
	ErrInvalidBool = errors.ErrInvalidBool

	// An enum ordinal on the wire was not a declared variant value
	ErrUnknownVariant = errors.ErrUnknownVariant

	// A union wire selector (or local arm index) matched no entry of the
	// union's discriminant table; always a schema/codegen bug, never
	// transient
	ErrBadUnionIndex = errors.ErrBadUnionIndex

	// The caller's type demanded a shape this engine does not implement
	// (optional, opaque, map)
	ErrUnsupportedShape = errors.ErrUnsupportedShape

	// Decode was attempted without a destination shape
	ErrNotSelfDescribing = errors.ErrNotSelfDescribing

	// A wire sequence count did not match a fixed-size target
	ErrLengthIncorrect = errors.ErrLengthIncorrect

	// A variable length value was too long for a u32 count prefix
	ErrLengthExceedsMax = errors.ErrLengthExceedsMax

	// Decode expected a pointer parameter
	ErrNotPointer = errors.ErrNotPointer
)

type defaultCoder struct {
	coder.Coder
}

func (d *defaultCoder) RegisterCodec(template interface{}, c xdrinterfaces.Codec) {
	panic("Cannot register type on default coder")
}

func (d *defaultCoder) RegisterCodecReflect(type_ reflect.Type, c xdrinterfaces.Codec) {
	panic("Cannot register type on default coder")
}

// The default coder (used by the package global functions)
//
// This behaves identically to a coder created using NewCoder, except
// that it is not permitted to register any codecs upon it.
var DefaultCoder defaultCoder

// Marshals o into the returned buffer
func Marshal(o interface{}) ([]byte, error) {
	return DefaultCoder.Marshal(o)
}

// Unmarshals buf into the object pointed to by op, returning the number of
// bytes consumed
func Unmarshal(buf []byte, op interface{}) (int, error) {
	return DefaultCoder.Unmarshal(buf, op)
}

// Write marshals o into the passed writer
func Write(w io.Writer, o interface{}) error {
	return DefaultCoder.Write(w, o)
}

// Read unmarshals *op out of the passed reader, returning the number of
// bytes consumed
func Read(r io.Reader, op interface{}) (int, error) {
	return DefaultCoder.Read(r, op)
}

// Constructs a new encoder which writes to w
func NewEncoder(w io.Writer) Encoder {
	return DefaultCoder.NewEncoder(w)
}

// Constructs a new decoder which reads from r
func NewDecoder(r io.Reader) Decoder {
	return DefaultCoder.NewDecoder(r)
}

// Construct a new Coder with the default (PaddingAlways) string padding
func NewCoder() Coder {
	return coder.NewCoder()
}

// Construct a new Coder with an explicit string padding policy
func NewCoderWithPadding(p Padding) Coder {
	return coder.NewCoderWithPadding(p)
}

// EnumCodec returns a Codec marshalling a named int32 type as an enum
// validated against t. Register it with a Coder for the enum type.
func EnumCodec(t *xdrschema.EnumTable) Codec {
	return coder.EnumCodec(t)
}
