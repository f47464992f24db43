// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"reflect"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	"github.com/samgomena/serde-xdr/internal/errors"
)

// sliceCodec frames a Go slice as a counted sequence
type sliceCodec struct {
	elem xdrinterfaces.Codec
	t    reflect.Type
}

var _ xdrinterfaces.Codec = &sliceCodec{}

func makeSliceCodec(cr *Coder, t reflect.Type) xdrinterfaces.Codec {
	return &sliceCodec{
		elem: cr.getCodec(t.Elem()),
		t:    t,
	}
}

func (c *sliceCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeSequence(v.Len(), func(i int) error {
		return c.elem.Encode(e, v.Index(i))
	})
}

func (c *sliceCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	seq := d.Sequence()
	l, err := seq.Len()
	switch {
	case err != nil:
		return err
	case l == 0:
		// Tiny optimisation: Skip allocating zero-length slices
		v.Set(reflect.Zero(c.t))
		return nil
	}

	v.Set(reflect.MakeSlice(c.t, l, l))

	for i := 0; ; i++ {
		more, err := seq.More()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		if err := c.elem.Decode(d, v.Index(i)); err != nil {
			return err
		}
	}
}

// arrayCodec frames a Go array as a counted sequence. The wire count must
// equal the array length on decode.
type arrayCodec struct {
	elem xdrinterfaces.Codec
	len  int
}

var _ xdrinterfaces.Codec = &arrayCodec{}

func makeArrayCodec(cr *Coder, t reflect.Type) xdrinterfaces.Codec {
	return &arrayCodec{
		elem: cr.getCodec(t.Elem()),
		len:  t.Len(),
	}
}

func (c *arrayCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeSequence(c.len, func(i int) error {
		return c.elem.Encode(e, v.Index(i))
	})
}

func (c *arrayCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	seq := d.Sequence()
	l, err := seq.Len()
	switch {
	case err != nil:
		return err
	case l != c.len:
		return errors.ErrLengthIncorrect
	}

	for i := 0; ; i++ {
		more, err := seq.More()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		if err := c.elem.Decode(d, v.Index(i)); err != nil {
			return err
		}
	}
}
