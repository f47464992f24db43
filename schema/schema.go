// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

// Package xdrschema holds the schema-time discriminant tables consulted by
// the XDR engine when marshalling enums and unions.
//
// A plain enum's wire representation is its declared ordinal, so an
// EnumTable is just the membership set the decoder validates against.
//
// Unions are subtler: the unsigned 32-bit arm selector on the wire is
// assigned by an external schema/codegen step and is NOT the variant's
// position in the locally declared variant list. A UnionTable is the
// bidirectional mapping between wire selectors and local arm indices,
// built once per union type and then shared by encoder and decoder.
package xdrschema

import (
	"fmt"
	"strconv"
)

// EnumTable is the closed set of ordinals declared for an enum type
type EnumTable struct {
	name     string
	ordinals []int32
	index    map[int32]int
}

// NewEnum constructs the table for the enum called name with the given
// declared ordinals (in declaration order)
func NewEnum(name string, ordinals ...int32) *EnumTable {
	t := &EnumTable{
		name:     name,
		ordinals: append([]int32(nil), ordinals...),
		index:    make(map[int32]int, len(ordinals)),
	}
	for i, o := range ordinals {
		t.index[o] = i
	}
	return t
}

// Name returns the declared enum name (used in error messages)
func (t *EnumTable) Name() string {
	return t.name
}

// Len returns the number of declared variants
func (t *EnumTable) Len() int {
	return len(t.ordinals)
}

// Has reports whether ordinal is a declared variant value
func (t *EnumTable) Has(ordinal int32) bool {
	_, ok := t.index[ordinal]
	return ok
}

// Index returns the declaration position of ordinal
func (t *EnumTable) Index(ordinal int32) (int, bool) {
	i, ok := t.index[ordinal]
	return i, ok
}

// Ordinal returns the declared value of the variant at position i
func (t *EnumTable) Ordinal(i int) (int32, bool) {
	if i < 0 || i >= len(t.ordinals) {
		return 0, false
	}
	return t.ordinals[i], true
}

// UnionTable maps between wire selectors and local arm indices for one
// union type
type UnionTable struct {
	name      string
	selectors []uint32
	arms      map[uint32]int
}

// NewUnion constructs the table for the union called name. selectors[i] is
// the wire selector of the arm declared at position i. Duplicate selectors
// are a schema bug and rejected here rather than surfacing as a mismatch
// during decode.
func NewUnion(name string, selectors ...uint32) (*UnionTable, error) {
	t := &UnionTable{
		name:      name,
		selectors: append([]uint32(nil), selectors...),
		arms:      make(map[uint32]int, len(selectors)),
	}
	for i, s := range selectors {
		if prev, dup := t.arms[s]; dup {
			return nil, fmt.Errorf("xdr: Union %s: selector 0x%08x declared for both arm %d and arm %d", name, s, prev, i)
		}
		t.arms[s] = i
	}
	return t, nil
}

// MustUnion is NewUnion but panics on schema bugs. Intended for package
// level table construction from generated code.
func MustUnion(name string, selectors ...uint32) *UnionTable {
	t, err := NewUnion(name, selectors...)
	if err != nil {
		panic(err)
	}
	return t
}

// UnionFromNames builds a UnionTable from declared variant names, each of
// which must parse as a base-10 unsigned integer: the parsed value is the
// arm's wire selector. This is the numeric-name convention used by schema
// codegen, which lets an external schema assign arbitrary non-positional
// discriminants while keeping the engine itself schema-agnostic. A
// non-numeric name is rejected at construction time.
func UnionFromNames(name string, variants ...string) (*UnionTable, error) {
	selectors := make([]uint32, len(variants))
	for i, v := range variants {
		s, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("xdr: Union %s: variant name %q does not parse as a wire selector", name, v)
		}
		selectors[i] = uint32(s)
	}
	return NewUnion(name, selectors...)
}

// Name returns the declared union name (used in error messages)
func (t *UnionTable) Name() string {
	return t.name
}

// Len returns the number of declared arms
func (t *UnionTable) Len() int {
	return len(t.selectors)
}

// Arm resolves a wire selector to the local arm index whose declared
// selector equals it
func (t *UnionTable) Arm(selector uint32) (int, bool) {
	i, ok := t.arms[selector]
	return i, ok
}

// Selector returns the wire selector of the arm declared at position arm
func (t *UnionTable) Selector(arm int) (uint32, bool) {
	if arm < 0 || arm >= len(t.selectors) {
		return 0, false
	}
	return t.selectors[arm], true
}
