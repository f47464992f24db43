// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"reflect"
	"sync"
	"sync/atomic"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
)

// codec embedding a fixed, memoised error (generally
// indicating that a type can't be marshalled)
type errorCodec struct {
	err error
}

func (c *errorCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return c.err
}

func (c *errorCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	return c.err
}

// placeholder codec for types under construction, to handle cycles
type deferredCodec struct {
	real atomic.Value // xdrinterfaces.Codec
	wg   sync.WaitGroup
}

var _ xdrinterfaces.Codec = &deferredCodec{}

func newDeferredCodec() *deferredCodec {
	dc := new(deferredCodec)
	dc.wg.Add(1)
	return dc
}

func (dc *deferredCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	real := dc.real.Load()
	if real == nil {
		dc.wg.Wait()
		real = dc.real.Load()
	}
	return real.(xdrinterfaces.Codec).Encode(e, v)
}

func (dc *deferredCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	real := dc.real.Load()
	if real == nil {
		dc.wg.Wait()
		real = dc.real.Load()
	}
	return real.(xdrinterfaces.Codec).Decode(d, v)
}

func (dc *deferredCodec) resolve(real xdrinterfaces.Codec) {
	dc.real.Store(real)
	dc.wg.Done()
}

// marshalerCodec handles types which know how to self marshal. Marshaler
// is usually implemented with pointer receivers, so we take the address of
// v where we can (decode targets are always addressable; encode sources
// may need a copy).
type marshalerCodec struct{}

var marshalerCodecI marshalerCodec

func (mc *marshalerCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	if m, ok := v.Interface().(xdrinterfaces.Marshaler); ok {
		return m.MarshalXDR(e)
	}

	if !v.CanAddr() {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p.Elem()
	}
	return v.Addr().Interface().(xdrinterfaces.Marshaler).MarshalXDR(e)
}

func (mc *marshalerCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(xdrinterfaces.Marshaler); ok {
			return m.UnmarshalXDR(d)
		}
	}
	return v.Interface().(xdrinterfaces.Marshaler).UnmarshalXDR(d)
}
