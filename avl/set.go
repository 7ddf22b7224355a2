// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"cmp"
	"iter"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlmap/fault"
)

// Set - ordered set of keys, a tree with no value part
type Set[K any] struct {
	tree *Tree[K, struct{}]
}

// NewSet - create an empty set ordered by compare
func NewSet[K any](compare CompareFunc[K]) *Set[K] {
	return &Set[K]{
		tree: New[K, struct{}](compare),
	}
}

// NewOrderedSet - create an empty set using the natural ordering of K
func NewOrderedSet[K cmp.Ordered]() *Set[K] {
	return NewSet[K](cmp.Compare[K])
}

// Tree - the underlying tree for node level operations
func (s *Set[K]) Tree() *Tree[K, struct{}] {
	return s.tree
}

// SetLog - attach a logger channel, nil to disable logging
func (s *Set[K]) SetLog(log *logger.L) {
	s.tree.SetLog(log)
}

// Add - add a key, ErrDuplicateKey if it is already present
func (s *Set[K]) Add(key K) error {
	if _, added := s.tree.InsertKey(key); !added {
		return fault.ErrDuplicateKey
	}
	return nil
}

// Insert - add a key, returns the node holding the key and true if it
// was newly added
func (s *Set[K]) Insert(key K) (Handle, bool) {
	return s.tree.InsertKey(key)
}

// Contains - true if the key is present
func (s *Set[K]) Contains(key K) bool {
	return s.tree.Contains(key)
}

// Find - node holding the key, Nil if absent
func (s *Set[K]) Find(key K) Handle {
	return s.tree.Find(key)
}

// Remove - delete a key, returns false if it was not present
func (s *Set[K]) Remove(key K) bool {
	return s.tree.Remove(key)
}

// Detach - unlink a key's node leaving it owned by the caller
//
// errors: ErrKeyNotFound
func (s *Set[K]) Detach(key K) (Handle, error) {
	h := s.tree.Detach(key)
	if h.IsNil() {
		return Nil, fault.ErrKeyNotFound
	}
	return h, nil
}

// Count - number of keys in the set
func (s *Set[K]) Count() int {
	return s.tree.Count()
}

// IsEmpty - true if the set holds no keys
func (s *Set[K]) IsEmpty() bool {
	return s.tree.IsEmpty()
}

// First - iterator on the lowest key
func (s *Set[K]) First() *Iterator[K, struct{}] {
	return s.tree.First()
}

// Last - iterator on the highest key
func (s *Set[K]) Last() *Iterator[K, struct{}] {
	return s.tree.Last()
}

// All - range over the keys in ascending order
func (s *Set[K]) All() iter.Seq[K] {
	return s.tree.Keys()
}

// Clone - independent copy of the set
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{
		tree: s.tree.Clone(),
	}
}

// Clear - remove every key
func (s *Set[K]) Clear() {
	s.tree.Clear()
}

// Check - verify the consistency of the set
func (s *Set[K]) Check() error {
	return s.tree.Check()
}
