// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"reflect"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	xdrschema "github.com/samgomena/serde-xdr/schema"
)

// enumCodec marshals a named int32 type as an enum: the ordinal is written
// as-is, and validated against the declared variant table on decode.
// Register one with Coder.RegisterCodec for each enum type.
type enumCodec struct {
	table *xdrschema.EnumTable
}

var _ xdrinterfaces.Codec = &enumCodec{}

func EnumCodec(t *xdrschema.EnumTable) xdrinterfaces.Codec {
	return &enumCodec{table: t}
}

func (c *enumCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeEnum(int32(v.Int()))
}

func (c *enumCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	ordinal, err := d.DecodeEnum(c.table)
	if err != nil {
		return err
	}
	v.SetInt(int64(ordinal))
	return nil
}
