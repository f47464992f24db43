// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"reflect"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
)

// boolCodec handles booleans
type boolCodec struct{}

var boolCodecI xdrinterfaces.Codec = boolCodec{}

func (_ boolCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeBool(v.Bool())
}

func (_ boolCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	b, err := d.DecodeBool()
	v.SetBool(b)
	return err
}

// The sized integer codecs each write exactly as many bytes as the Go type
// is wide; this dialect does not widen narrow integers to 4-byte words
type int8Codec struct{}
type int16Codec struct{}
type int32Codec struct{}
type uint8Codec struct{}
type uint16Codec struct{}
type uint32Codec struct{}

var (
	int8CodecI   xdrinterfaces.Codec = int8Codec{}
	int16CodecI  xdrinterfaces.Codec = int16Codec{}
	int32CodecI  xdrinterfaces.Codec = int32Codec{}
	uint8CodecI  xdrinterfaces.Codec = uint8Codec{}
	uint16CodecI xdrinterfaces.Codec = uint16Codec{}
	uint32CodecI xdrinterfaces.Codec = uint32Codec{}
)

func (_ int8Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeInt8(int8(v.Int()))
}

func (_ int8Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeInt8()
	v.SetInt(int64(i))
	return err
}

func (_ int16Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeInt16(int16(v.Int()))
}

func (_ int16Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeInt16()
	v.SetInt(int64(i))
	return err
}

func (_ int32Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeInt(int32(v.Int()))
}

func (_ int32Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeInt()
	v.SetInt(int64(i))
	return err
}

func (_ uint8Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeUint8(uint8(v.Uint()))
}

func (_ uint8Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeUint8()
	v.SetUint(uint64(i))
	return err
}

func (_ uint16Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeUint16(uint16(v.Uint()))
}

func (_ uint16Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeUint16()
	v.SetUint(uint64(i))
	return err
}

func (_ uint32Codec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeUnsignedInt(uint32(v.Uint()))
}

func (_ uint32Codec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeUnsignedInt()
	v.SetUint(uint64(i))
	return err
}

// [u]hyperCodec handles hyper ([u]int64) integers
type hyperCodec struct{}
type uhyperCodec struct{}

var (
	hyperCodecI  xdrinterfaces.Codec = hyperCodec{}
	uhyperCodecI xdrinterfaces.Codec = uhyperCodec{}
)

func (hc hyperCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeHyper(v.Int())
}

func (hc hyperCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeHyper()
	v.SetInt(i)
	return err
}

func (hc uhyperCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeUnsignedHyper(v.Uint())
}

func (hc uhyperCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	i, err := d.DecodeUnsignedHyper()
	v.SetUint(i)
	return err
}

// floatCodec handles floats
type floatCodec struct{}

var floatCodecI xdrinterfaces.Codec = floatCodec{}

func (_ floatCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeFloat(float32(v.Float()))
}

func (_ floatCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	f, err := d.DecodeFloat()
	v.SetFloat(float64(f))
	return err
}

// doubleCodec handles doubles
type doubleCodec struct{}

var doubleCodecI xdrinterfaces.Codec = doubleCodec{}

func (_ doubleCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeDouble(v.Float())
}

func (_ doubleCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	f, err := d.DecodeDouble()
	v.SetFloat(f)
	return err
}

// stringCodec handles strings (variable length text)
type stringCodec struct{}

var stringCodecI xdrinterfaces.Codec = stringCodec{}

func (_ stringCodec) Encode(e xdrinterfaces.Encoder, v reflect.Value) error {
	return e.EncodeString(v.String())
}

func (_ stringCodec) Decode(d xdrinterfaces.Decoder, v reflect.Value) error {
	s, err := d.DecodeString()
	v.SetString(s)
	return err
}
