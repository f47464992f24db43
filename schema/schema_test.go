// Copyright 2024 Sam Gomena
// SPDX-License-Identifier: ISC

package xdrschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTable(t *testing.T) {
	e := NewEnum("color", 2, 5, 9)

	assert.Equal(t, "color", e.Name())
	assert.Equal(t, 3, e.Len())

	assert.True(t, e.Has(5))
	assert.False(t, e.Has(3))
	assert.True(t, e.Has(2))

	i, ok := e.Index(9)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = e.Index(4)
	assert.False(t, ok)

	o, ok := e.Ordinal(1)
	require.True(t, ok)
	assert.Equal(t, int32(5), o)

	_, ok = e.Ordinal(3)
	assert.False(t, ok)
	_, ok = e.Ordinal(-1)
	assert.False(t, ok)
}

func TestEnumNegativeOrdinals(t *testing.T) {
	e := NewEnum("delta", -1, 0, 1)
	assert.True(t, e.Has(-1))
	assert.False(t, e.Has(2))
}

func TestUnionTable(t *testing.T) {
	u, err := NewUnion("pick", 5, 8, 12)
	require.NoError(t, err)

	assert.Equal(t, "pick", u.Name())
	assert.Equal(t, 3, u.Len())

	// Selector and Arm are inverses over the declared arms
	for arm := 0; arm < u.Len(); arm++ {
		s, ok := u.Selector(arm)
		require.True(t, ok)

		back, ok := u.Arm(s)
		require.True(t, ok)
		assert.Equal(t, arm, back)
	}

	_, ok := u.Arm(9)
	assert.False(t, ok)
	_, ok = u.Selector(3)
	assert.False(t, ok)
	_, ok = u.Selector(-1)
	assert.False(t, ok)
}

func TestUnionDuplicateSelector(t *testing.T) {
	_, err := NewUnion("dup", 1, 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestMustUnionPanics(t *testing.T) {
	assert.Panics(t, func() { MustUnion("dup", 3, 3) })
	assert.NotPanics(t, func() { MustUnion("fine", 3, 4) })
}

func TestUnionFromNames(t *testing.T) {
	u, err := UnionFromNames("status", "0", "404", "4294967295")
	require.NoError(t, err)

	s, ok := u.Selector(2)
	require.True(t, ok)
	assert.Equal(t, uint32(4294967295), s)

	arm, ok := u.Arm(404)
	require.True(t, ok)
	assert.Equal(t, 1, arm)
}

func TestUnionFromNamesRejectsNonNumeric(t *testing.T) {
	for _, bad := range []string{"Ok", "", "-1", "0x10", "4294967296"} {
		_, err := UnionFromNames("status", bad)
		assert.Errorf(t, err, "Variant name %q should be rejected", bad)
	}
}
