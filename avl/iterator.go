// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"iter"

	"github.com/bitmark-inc/avlmap/fault"
)

// iterator positions that are not on a node
const (
	onNode     = 0
	beforeHead = -1
	pastTail   = +1
)

// Iterator - bidirectional cursor over the tree in key order
//
// an iterator does not detect changes to the tree; removing any node
// other than the current one is safe, removing the current node leaves
// the iterator unusable
type Iterator[K, V any] struct {
	tree     *Tree[K, V]
	current  index
	position int
}

// First - iterator positioned at the node with the lowest key
func (tree *Tree[K, V]) First() *Iterator[K, V] {
	it := &Iterator[K, V]{tree: tree, current: tree.head}
	it.settle(pastTail)
	return it
}

// Last - iterator positioned at the node with the highest key
func (tree *Tree[K, V]) Last() *Iterator[K, V] {
	it := &Iterator[K, V]{tree: tree, current: tree.tail}
	it.settle(beforeHead)
	return it
}

// At - iterator positioned at a member node
func (tree *Tree[K, V]) At(h Handle) (*Iterator[K, V], error) {
	i, err := tree.member(h)
	if nil != err {
		return nil, err
	}
	return &Iterator[K, V]{tree: tree, current: i}, nil
}

// mark the off-end position if the step left no node
func (it *Iterator[K, V]) settle(offEnd int) {
	if 0 == it.current {
		it.position = offEnd
	} else {
		it.position = onNode
	}
}

// HasElement - true if the iterator is on a node
func (it *Iterator[K, V]) HasElement() bool {
	return 0 != it.current
}

// BeforeFirst - true if the iterator has moved back past the lowest key
// (or was created on an empty tree)
func (it *Iterator[K, V]) BeforeFirst() bool {
	return 0 == it.current && (beforeHead == it.position || 0 == it.tree.count)
}

// PastLast - true if the iterator has moved forward past the highest key
// (or was created on an empty tree)
func (it *Iterator[K, V]) PastLast() bool {
	return 0 == it.current && (pastTail == it.position || 0 == it.tree.count)
}

// IsFirst - true if the iterator is on the node with the lowest key
func (it *Iterator[K, V]) IsFirst() bool {
	return 0 != it.current && it.current == it.tree.head
}

// IsLast - true if the iterator is on the node with the highest key
func (it *Iterator[K, V]) IsLast() bool {
	return 0 != it.current && it.current == it.tree.tail
}

// Handle - the current node, Nil when off either end
func (it *Iterator[K, V]) Handle() Handle {
	return it.tree.arena.handle(it.current)
}

// Key - key of the current node, the iterator must have an element
func (it *Iterator[K, V]) Key() K {
	return it.tree.arena.at(it.mustCurrent()).key
}

// Value - value of the current node, the iterator must have an element
func (it *Iterator[K, V]) Value() V {
	return it.tree.arena.at(it.mustCurrent()).value
}

func (it *Iterator[K, V]) mustCurrent() index {
	if 0 == it.current {
		fault.Panic("avl: iterator is not on a node")
	}
	return it.current
}

// Next - move to the next higher key
//
// returns false when the iterator moves past the last node; stepping
// from a position off either end leaves the iterator where it is
func (it *Iterator[K, V]) Next() bool {
	if 0 == it.current {
		return false
	}
	it.current = it.tree.following(it.current)
	it.settle(pastTail)
	return 0 != it.current
}

// Prev - move to the next lower key
//
// returns false when the iterator moves before the first node; stepping
// from a position off either end leaves the iterator where it is
func (it *Iterator[K, V]) Prev() bool {
	if 0 == it.current {
		return false
	}
	it.current = it.tree.preceding(it.current)
	it.settle(beforeHead)
	return 0 != it.current
}

// All - range over the keys and values from lowest to highest key
func (tree *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := tree.head; 0 != i; i = tree.following(i) {
			n := tree.arena.at(i)
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Backward - range over the keys and values from highest to lowest key
func (tree *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := tree.tail; 0 != i; i = tree.preceding(i) {
			n := tree.arena.at(i)
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Keys - range over the keys in ascending order
func (tree *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := tree.head; 0 != i; i = tree.following(i) {
			if !yield(tree.arena.at(i).key) {
				return
			}
		}
	}
}

// Handles - range over the member nodes in ascending key order
func (tree *Tree[K, V]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for i := tree.head; 0 != i; i = tree.following(i) {
			if !yield(tree.arena.handle(i)) {
				return
			}
		}
	}
}

// the next node in key order
func (tree *Tree[K, V]) following(i index) index {
	if tree.threaded {
		return tree.arena.at(i).next
	}
	return tree.successor(i)
}

// the previous node in key order
func (tree *Tree[K, V]) preceding(i index) index {
	if tree.threaded {
		return tree.arena.at(i).prev
	}
	return tree.predecessor(i)
}

// successor from the structure: go right once then left as far as
// possible, or go up until arriving from a left child
func (tree *Tree[K, V]) successor(i index) index {
	n := tree.arena.at(i)
	if 0 != n.right {
		i = n.right
		for l := tree.arena.at(i).left; 0 != l; l = tree.arena.at(i).left {
			i = l
		}
		return i
	}
	for {
		last := i
		i = tree.arena.at(i).parent
		if 0 == i || tree.arena.at(i).left == last {
			return i
		}
	}
}

// predecessor from the structure: go left once then right as far as
// possible, or go up until arriving from a right child
func (tree *Tree[K, V]) predecessor(i index) index {
	n := tree.arena.at(i)
	if 0 != n.left {
		i = n.left
		for r := tree.arena.at(i).right; 0 != r; r = tree.arena.at(i).right {
			i = r
		}
		return i
	}
	for {
		last := i
		i = tree.arena.at(i).parent
		if 0 == i || tree.arena.at(i).right == last {
			return i
		}
	}
}
