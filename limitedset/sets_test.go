// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avlmap/avl"
	"github.com/bitmark-inc/avlmap/limitedset"
)

func TestAddition(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	expected := []string{
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	check(t, items, expected)

}

// add a list of items and check that all the expected ones are present
// compute the ones that should not pe present and check that they are not
func check(t *testing.T, items []string, expected []string) {

	setSize := len(expected)

	s1 := limitedset.New[string](setSize)
	if nil == s1 {
		t.Fatalf("failed to create a limitedset of size: %d", setSize)
	}

	for _, d := range items {
		s1.Add(d)
	}

	hash := make(map[string]struct{}) // record all the expected

	// all expected must be present
	for i, d := range expected {
		hash[d] = struct{}{}
		if !s1.Exists(d) {
			t.Errorf("item[%d] missing: %q", i, d)
		}
	}

	// check the inputs (exclude the expected)
	for i, d := range items {
		if _, ok := hash[d]; ok {
			continue
		}
		if s1.Exists(d) {
			t.Errorf("item[%d] present: %q", i, d)
		}
	}
}

func TestPullToFront(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"abcdefg",
		"opqrstu",
		"abcdefg",
		"vwxyzab",
		"abcdefg",
		"cdefghi",
		"abcdefg",
		"jklmnop",
		"abcdefg",
		"abcdefg",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	expected := []string{
		"cdefghi",
		"jklmnop",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	check(t, items, expected)
}

func TestEviction(t *testing.T) {
	s := limitedset.New[int](3)
	require.NotNil(t, s)

	for i := 1; i <= 3; i += 1 {
		_, full := s.Add(i)
		assert.False(t, full)
	}
	assert.Equal(t, 3, s.Count())

	evicted, full := s.Add(4)
	assert.True(t, full)
	assert.Equal(t, 1, evicted)

	// re-adding the oldest makes it the newest
	_, full = s.Add(2)
	assert.False(t, full)
	assert.Equal(t, []int{3, 4, 2}, s.Items())

	evicted, _ = s.Add(5)
	assert.Equal(t, 3, evicted)
	assert.Equal(t, []int{4, 2, 5}, s.Items())
}

func TestRemoveAndTake(t *testing.T) {
	s := limitedset.New[string](4)
	for _, v := range []string{"a", "b", "c", "d"} {
		s.Add(v)
	}

	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))
	assert.False(t, s.Exists("b"))
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []string{"a", "c", "d"}, s.Items())

	// the freed slot is filled before anything is evicted
	_, full := s.Add("e")
	assert.False(t, full)
	assert.Equal(t, []string{"a", "c", "d", "e"}, s.Items())

	item, ok := s.Take()
	assert.True(t, ok)
	assert.Equal(t, "a", item)
	item, ok = s.Take()
	assert.True(t, ok)
	assert.Equal(t, "c", item)
	assert.Equal(t, []string{"d", "e"}, s.Items())

	s.Take()
	s.Take()
	_, ok = s.Take()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Items())
}

func TestSizeOne(t *testing.T) {
	s := limitedset.New[int](1)
	s.Add(1)
	s.Add(1)
	evicted, full := s.Add(2)
	assert.True(t, full)
	assert.Equal(t, 1, evicted)
	assert.True(t, s.Remove(2))
	_, ok := s.Take()
	assert.False(t, ok)

	assert.Nil(t, limitedset.New[int](0))
}

// detached tree nodes are held by handle and freed on eviction
func TestDetachedHandles(t *testing.T) {
	tree := avl.NewOrdered[int, int]()
	for i := 0; i < 10; i += 1 {
		tree.Insert(i, i*i)
	}

	pool := limitedset.New[avl.Handle](3)
	for i := 0; i < 5; i += 1 {
		h := tree.Detach(i)
		if evicted, full := pool.Add(h); full {
			require.NoError(t, tree.Free(evicted))
		}
	}
	assert.Equal(t, 3, pool.Count())
	assert.Equal(t, 5, tree.Count())

	for h, ok := pool.Take(); ok; h, ok = pool.Take() {
		_, added, err := tree.InsertNode(h)
		require.NoError(t, err)
		assert.True(t, added)
	}
	assert.Equal(t, 8, tree.Count())
	assert.False(t, tree.Contains(0))
	assert.False(t, tree.Contains(1))
	assert.True(t, tree.Contains(2))
	require.NoError(t, tree.Check())
}
