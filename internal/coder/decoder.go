// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package coder

import (
	"io"
	"math"
	"reflect"
	"sync"

	xdrinterfaces "github.com/samgomena/serde-xdr/interfaces"
	"github.com/samgomena/serde-xdr/internal/errors"
	xdrschema "github.com/samgomena/serde-xdr/schema"
)

var decoderPool = sync.Pool{
	New: func() interface{} {
		return new(decoder)
	},
}

type decoder struct {
	r  io.Reader
	cr *Coder

	// Running total of bytes consumed from r during this session
	consumed int
}

var _ xdrinterfaces.Decoder = &decoder{}

// readFull reads exactly len(buf) bytes, crediting whatever was actually
// read to the consumed counter even on failure
func (d *decoder) readFull(buf []byte) error {
	n, err := io.ReadFull(d.r, buf)
	d.consumed += n
	return err
}

func (d *decoder) BytesConsumed() int {
	return d.consumed
}

func (d *decoder) DecodeBool() (bool, error) {
	b, err := d.DecodeUint8()
	switch {
	case err != nil:
		return false, err
	case b == 0:
		return false, nil
	case b == 1:
		return true, nil
	default:
		return false, errors.ErrInvalidBool
	}
}

func (d *decoder) DecodeInt8() (int8, error) {
	u, err := d.DecodeUint8()
	return int8(u), err
}

func (d *decoder) DecodeUint8() (uint8, error) {
	var b [1]byte
	err := d.readFull(b[:])
	return b[0], err
}

func (d *decoder) DecodeInt16() (int16, error) {
	u, err := d.DecodeUint16()
	return int16(u), err
}

func (d *decoder) DecodeUint16() (uint16, error) {
	var b [2]byte
	err := d.readFull(b[:])
	return uint16(b[0])<<8 | uint16(b[1]), err
}

func (d *decoder) DecodeInt() (int32, error) {
	u, err := d.DecodeUnsignedInt()
	return int32(u), err
}

func (d *decoder) DecodeUnsignedInt() (uint32, error) {
	var b [4]byte
	err := d.readFull(b[:])
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), err
}

func (d *decoder) DecodeHyper() (int64, error) {
	u, err := d.DecodeUnsignedHyper()
	return int64(u), err
}

func (d *decoder) DecodeUnsignedHyper() (uint64, error) {
	var b [8]byte
	err := d.readFull(b[:])
	return (uint64(b[0])<<56 |
		uint64(b[1])<<48 |
		uint64(b[2])<<40 |
		uint64(b[3])<<32 |
		uint64(b[4])<<24 |
		uint64(b[5])<<16 |
		uint64(b[6])<<8 |
		uint64(b[7])), err
}

func (d *decoder) DecodeFloat() (float32, error) {
	i, err := d.DecodeUnsignedInt()
	return math.Float32frombits(i), err
}

func (d *decoder) DecodeDouble() (float64, error) {
	i, err := d.DecodeUnsignedHyper()
	return math.Float64frombits(i), err
}

func (d *decoder) DecodeString() (string, error) {
	l, err := d.DecodeUnsignedInt()
	switch {
	case err != nil:
		return "", err
	case uint64(l) > uint64(maxInt):
		return "", errors.LengthError{Actual: uint64(l)}
	}

	var buf []byte
	if l > 0 {
		buf = make([]byte, int(l))
		if err = d.readFull(buf); err != nil {
			return "", err
		}
	}

	// Skip exactly the padding the encoder would have written
	var discard [4]byte
	if err = d.readFull(discard[0:d.cr.padding.Bytes(int(l))]); err != nil {
		return "", err
	}

	return string(buf), nil
}

func (d *decoder) Sequence() xdrinterfaces.SequenceDecoder {
	return &sequenceDecoder{d: d}
}

func (d *decoder) DecodeSequence(element func(i int) error) (int, error) {
	seq := d.Sequence()
	for i := 0; ; i++ {
		more, err := seq.More()
		if err != nil {
			return i, err
		}
		if !more {
			return i, nil
		}

		if err := element(i); err != nil {
			return i, err
		}
	}
}

func (d *decoder) DecodeStruct(fields ...func() error) error {
	for _, f := range fields {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) DecodeEnum(t *xdrschema.EnumTable) (int32, error) {
	ordinal, err := d.DecodeInt()
	if err != nil {
		return 0, err
	}

	if !t.Has(ordinal) {
		return 0, errors.UnknownVariantError{Enum: t.Name(), Ordinal: ordinal}
	}
	return ordinal, nil
}

func (d *decoder) DecodeUnion(t *xdrschema.UnionTable) (int, error) {
	selector, err := d.DecodeUnsignedInt()
	if err != nil {
		return 0, err
	}

	arm, ok := t.Arm(selector)
	if !ok {
		return 0, errors.UnionSelectorError{Union: t.Name(), Selector: selector}
	}
	return arm, nil
}

func (d *decoder) DecodeOptional() (bool, error) {
	return false, errors.UnsupportedShapeError{Shape: "optional"}
}

func (d *decoder) DecodeOpaque() ([]byte, error) {
	return nil, errors.UnsupportedShapeError{Shape: "opaque"}
}

func (d *decoder) DecodeMap(entry func() error) error {
	return errors.UnsupportedShapeError{Shape: "map"}
}

func (d *decoder) DecodeAny() error {
	return errors.ErrNotSelfDescribing
}

func (d *decoder) Decode(op interface{}) (err error) {
	v := reflect.ValueOf(op)
	if v.Type().Kind() != reflect.Ptr {
		return errors.ErrNotPointer
	}

	return d.decodeValue(v.Elem())
}

func (d *decoder) DecodeValue(v reflect.Value) (err error) {
	if !v.CanSet() {
		return errors.ErrNotPointer
	}
	return d.decodeValue(v)
}

func (d *decoder) decodeValue(v reflect.Value) (err error) {
	return d.cr.getCodec(v.Type()).Decode(d, v)
}

func (d *decoder) release() {
	d.r = nil
	d.cr = nil
	d.consumed = 0
	decoderPool.Put(d)
}
