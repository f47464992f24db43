// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package errors

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

type xerror string

func (e xerror) Error() string {
	return string(e)
}

const (
	// Boolean byte on the wire was neither 0 nor 1
	ErrInvalidBool = xerror("xdr: Invalid boolean byte (must be 0 or 1)")

	// Enum ordinal on the wire not present in the declared variant table
	ErrUnknownVariant = xerror("xdr: Unknown enum variant")

	// Union wire selector (or local arm index) not present in the union's
	// discriminant table. This always indicates a schema/codegen mismatch
	// between the producer and the locally declared variant list; it is
	// never a transient condition.
	ErrBadUnionIndex = xerror("xdr: Bad index for union")

	// Category sentinel for shapes the format admits in principle but this
	// engine does not implement (optionals, raw opaques, maps)
	ErrUnsupportedShape = xerror("xdr: Unsupported shape")

	// XDR carries no embedded type tags; the caller must always supply the
	// destination shape
	ErrNotSelfDescribing = xerror("xdr: Cannot decode without a destination shape (XDR is not self describing)")

	// Decode expected pointer parameter
	ErrNotPointer = xerror("xdr: Expected pointer parameter")

	// Wire sequence count does not match the fixed length of the target
	ErrLengthIncorrect = xerror("xdr: Length incorrect")

	// Variable length object too long to frame with a u32 count prefix
	ErrLengthExceedsMax = xerror("xdr: Variable length object too long")
)

// UnknownVariantError is returned when a decoded enum ordinal is not
// present in the declared variant table
type UnknownVariantError struct {
	Enum    string
	Ordinal int32
}

func (e UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

func (e UnknownVariantError) Error() string {
	return fmt.Sprintf("xdr: Unknown %s value: %d", e.Enum, e.Ordinal)
}

// UnionSelectorError is returned when a decoded wire selector matches no
// arm of the union's discriminant table
type UnionSelectorError struct {
	Union    string
	Selector uint32
}

func (e UnionSelectorError) Is(target error) bool {
	return target == ErrBadUnionIndex
}

func (e UnionSelectorError) Error() string {
	return fmt.Sprintf("%s: selector 0x%08x matches no arm of %s", ErrBadUnionIndex, e.Selector, e.Union)
}

// UnionArmError is returned on encode when the chosen local arm index has
// no selector in the union's discriminant table
type UnionArmError struct {
	Union string
	Arm   int
}

func (e UnionArmError) Is(target error) bool {
	return target == ErrBadUnionIndex
}

func (e UnionArmError) Error() string {
	return fmt.Sprintf("%s: arm %d of %s has no wire selector", ErrBadUnionIndex, e.Arm, e.Union)
}

// UnsupportedShapeError reports a request for a shape this engine does not
// implement. Callers needing these must encode manually.
type UnsupportedShapeError struct {
	Shape string
}

func (e UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

func (e UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s '%s'", ErrUnsupportedShape, e.Shape)
}

// InvalidTypeError reports a Go type with no mapping onto a wire shape
type InvalidTypeError struct {
	T reflect.Type
}

func (e InvalidTypeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("xdr: Type '%s' unsupported", e.T)
}

// LengthError carries the offending length of a value too long to frame
// with an unsigned 32-bit count prefix
type LengthError struct {
	Actual uint64
}

func (err LengthError) Is(target error) bool {
	return target == ErrLengthExceedsMax
}

func (err LengthError) Error() string {
	return fmt.Sprintf("%s (%d > %d)", ErrLengthExceedsMax, err.Actual, uint64(math.MaxUint32))
}

type FieldError struct {
	Underlying error
	Path       string
}

func (err FieldError) Unwrap() error {
	return err.Underlying
}

func (err FieldError) Error() string {
	uerr := strings.TrimPrefix(err.Underlying.Error(), "xdr: ")
	return fmt.Sprintf("xdr: %s (at %s)", uerr, err.Path)
}

// WithFieldError annotates err with the path of the struct field being
// processed when it occurred. Nested annotations accumulate outermost
// first.
func WithFieldError(err error, parts ...string) error {
	if err == nil {
		return nil
	}

	if parts[0] == "" {
		parts[0] = "<anonymous>"
	}
	combined := strings.Join(parts, ".")

	switch err := err.(type) {
	case FieldError:
		err.Path = fmt.Sprintf("%s %s", combined, err.Path)
		return err
	default:
		return FieldError{err, combined}
	}
}
