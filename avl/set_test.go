// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avlmap/avl"
	"github.com/bitmark-inc/avlmap/fault"
)

func TestSet(t *testing.T) {
	s := avl.NewOrderedSet[int]()
	assert.True(t, s.IsEmpty())

	for _, k := range scenarioKeys {
		require.NoError(t, s.Add(k))
	}
	err := s.Add(4)
	assert.Equal(t, fault.ErrDuplicateKey, err)
	assert.True(t, fault.IsErrExists(err))

	h, added := s.Insert(6)
	assert.True(t, added)
	assert.Equal(t, 6, s.Tree().Key(h))
	_, added = s.Insert(6)
	assert.False(t, added)

	assert.Equal(t, 8, s.Count())
	assert.True(t, s.Contains(6))
	assert.Equal(t, s.Find(6), h)
	assert.Equal(t, []int{1, 3, 4, 5, 6, 7, 8, 9}, slices.Collect(s.All()))
	assert.Equal(t, 1, s.First().Key())
	assert.Equal(t, 9, s.Last().Key())
	require.NoError(t, s.Check())

	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5))

	d, err := s.Detach(3)
	require.NoError(t, err)
	assert.False(t, s.Tree().IsMember(d))
	_, err = s.Detach(3)
	assert.Equal(t, fault.ErrKeyNotFound, err)
	assert.True(t, fault.IsErrNotFound(err))

	assert.Equal(t, []int{1, 4, 6, 7, 8, 9}, slices.Collect(s.All()))
	require.NoError(t, s.Check())
}

func TestSetMirrorsMap(t *testing.T) {
	s := avl.NewSet[string](strings.Compare)
	m := avl.New[string, struct{}](strings.Compare)

	words := strings.Fields("the quick brown fox jumps over the lazy dog and the cat")
	for _, w := range words {
		s.Insert(w)
		m.InsertKey(w)
	}
	s.Remove("fox")
	m.Remove("fox")

	assert.Equal(t, slices.Collect(m.Keys()), slices.Collect(s.All()))
	assert.Equal(t, shapeOf(m), shapeOf(s.Tree()))
}

func TestSetCloneAndClear(t *testing.T) {
	s := avl.NewOrderedSet[string]()
	for _, k := range []string{"x", "y", "z"} {
		require.NoError(t, s.Add(k))
	}

	c := s.Clone()
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, []string{"x", "y", "z"}, slices.Collect(c.All()))
	require.NoError(t, c.Check())
	require.NoError(t, s.Check())
}
