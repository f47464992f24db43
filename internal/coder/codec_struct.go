// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"reflect"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	"github.com/samgomena/serde-xdr/internal/errors"
)

type field struct {
	index int
	codec xdrinterfaces.Codec
	name  string
}

// structCodec marshals a struct's fields in declaration order with no
// framing of its own: the field list is knowledge shared between producer
// and consumer, never written to the wire
type structCodec struct {
	name   string
	fields []field
}

var _ xdrinterfaces.Codec = &structCodec{}

func makeStructCodec(cr *Coder, t reflect.Type) xdrinterfaces.Codec {
	c := &structCodec{
		name:   t.Name(),
		fields: make([]field, 0, t.NumField()),
	}

	for i, n := 0, t.NumField(); i < n; i++ {
		f := t.Field(i)
		if f.PkgPath != "" || f.Tag.Get("xdr") == "-" {
			continue
		}

		c.fields = append(c.fields, field{
			index: i,
			codec: cr.getCodec(f.Type),
			name:  f.Name,
		})
	}

	return c
}

func (c *structCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	for _, f := range c.fields {
		if err := f.codec.Encode(e, v.Field(f.index)); err != nil {
			return errors.WithFieldError(err, c.name, f.name)
		}
	}
	return nil
}

func (c *structCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	for _, f := range c.fields {
		if err := f.codec.Decode(d, v.Field(f.index)); err != nil {
			return errors.WithFieldError(err, c.name, f.name)
		}
	}
	return nil
}
