// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlmap/counter"
	"github.com/bitmark-inc/avlmap/fault"
)

// number of nodes in each arena block
const blockSize = 256

// index of a node inside its arena, 0 is "no node"
type index uint32

// slot states
const (
	slotFree     uint8 = iota // on the free list
	slotDetached              // allocated, owned by the caller
	slotMember                // linked into the tree
)

// Handle - reference to a node of a specific tree
//
// the zero value is Nil.  A handle stays valid until the node it
// refers to is destroyed (Remove, RemoveNode, Free, Clear); after that
// every operation rejects it even if the slot has been reused.
type Handle struct {
	arena      uint32
	index      uint32
	generation uint32
}

// Nil - the handle that refers to no node
var Nil Handle

// IsNil - true if the handle refers to no node
func (h Handle) IsNil() bool {
	return 0 == h.index
}

// a node in the tree
type node[K, V any] struct {
	left       index // left sub-tree
	right      index // right sub-tree
	parent     index // parent node, also the free list link
	prev       index // in-order predecessor
	next       index // in-order successor
	height     int   // levels in this sub-tree, leaf = 1
	generation uint32
	state      uint8
	key        K // key part for ordering
	value      V // value part for data storage
}

// source of arena identities, shared by all trees
var arenaSequence counter.Counter

// arena - fixed size blocks of nodes plus a list of reclaimed slots
type arena[K, V any] struct {
	id        uint32
	blocks    [][]node[K, V]
	fresh     index // next never used slot
	pool      index // linked list of reclaimed nodes
	freeNodes int   // number of nodes in the pool
}

func (a *arena[K, V]) initialise() {
	a.id = uint32(arenaSequence.Increment())
	a.blocks = nil
	a.fresh = 1 // slot 0 is never handed out
	a.pool = 0
	a.freeNodes = 0
}

// the node stored in a slot, i must be non-zero and allocated
func (a *arena[K, V]) at(i index) *node[K, V] {
	return &a.blocks[i/blockSize][i%blockSize]
}

// allocate a new node, reuses reclaimed nodes if any are available
func (a *arena[K, V]) allocate(key K, value V) index {
	i := a.pool
	if 0 != i {
		n := a.at(i)
		a.pool = n.parent
		a.freeNodes -= 1
	} else {
		i = a.fresh
		if int(i/blockSize) == len(a.blocks) {
			a.blocks = append(a.blocks, make([]node[K, V], blockSize))
		}
		a.fresh += 1
	}

	n := a.at(i)
	generation := n.generation
	*n = node[K, V]{
		generation: generation,
		state:      slotDetached,
		key:        key,
		value:      value,
	}
	return i
}

// reclaim a node and keep it in a pool
func (a *arena[K, V]) release(i index) {
	n := a.at(i)
	generation := n.generation + 1
	if 0 == generation {
		generation = 1
	}
	*n = node[K, V]{
		parent:     a.pool, // use as free list pointer
		generation: generation,
		state:      slotFree,
	}
	a.pool = i
	a.freeNodes += 1
}

// handle for an allocated slot
func (a *arena[K, V]) handle(i index) Handle {
	if 0 == i {
		return Nil
	}
	return Handle{
		arena:      a.id,
		index:      uint32(i),
		generation: a.at(i).generation,
	}
}

// resolve a handle to its slot index
//
// errors: ErrInvalidHandle for Nil, stale or freed handles and
// ErrForeignNode for handles issued by a different tree
func (a *arena[K, V]) resolve(h Handle) (index, error) {
	if h.IsNil() {
		return 0, fault.ErrInvalidHandle
	}
	if h.arena != a.id {
		return 0, fault.ErrForeignNode
	}
	i := index(h.index)
	if i >= a.fresh {
		return 0, fault.ErrInvalidHandle
	}
	n := a.at(i)
	if slotFree == n.state || n.generation != h.generation {
		return 0, fault.ErrInvalidHandle
	}
	return i, nil
}

// number of slots currently allocated (members and detached)
func (a *arena[K, V]) allocated() int {
	return int(a.fresh) - 1 - a.freeNodes
}
