// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"cmp"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlmap/fault"
)

// CompareFunc - three way comparison of two keys
//
// returns negative if a < b, zero if a == b and positive if a > b
type CompareFunc[K any] func(a K, b K) int

// Tree - type to hold the root node of a tree
type Tree[K, V any] struct {
	compare      CompareFunc[K]
	arena        arena[K, V]
	root         index
	head         index // lowest key
	tail         index // highest key
	count        int
	threaded     bool
	restructures uint64
	log          *logger.L
}

// New - create an initially empty tree ordered by compare
func New[K, V any](compare CompareFunc[K]) *Tree[K, V] {
	if nil == compare {
		fault.Panic("avl: nil compare function")
	}
	tree := &Tree[K, V]{
		compare:  compare,
		threaded: true,
	}
	tree.arena.initialise()
	return tree
}

// NewOrdered - create an initially empty tree using the natural
// ordering of the key type
func NewOrdered[K cmp.Ordered, V any]() *Tree[K, V] {
	return New[K, V](cmp.Compare[K])
}

// NewStructural - create a tree that does not thread its nodes into
// an ordered list
//
// iterator steps are found by walking the tree, O(log n) instead of
// O(1), but insert and delete do not need to maintain the links
func NewStructural[K, V any](compare CompareFunc[K]) *Tree[K, V] {
	tree := New[K, V](compare)
	tree.threaded = false
	return tree
}

// SetLog - attach a logger channel, nil to disable logging
func (tree *Tree[K, V]) SetLog(log *logger.L) {
	tree.log = log
}

// IsEmpty - true if tree contains no data
func (tree *Tree[K, V]) IsEmpty() bool {
	return 0 == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree[K, V]) Count() int {
	return tree.count
}

// Threaded - true if iteration follows the in-order list
func (tree *Tree[K, V]) Threaded() bool {
	return tree.threaded
}

// Restructures - total number of rebalancing operations performed
func (tree *Tree[K, V]) Restructures() uint64 {
	return tree.restructures
}

// Root - return the root node of the tree
func (tree *Tree[K, V]) Root() Handle {
	return tree.arena.handle(tree.root)
}

// Valid - true if the handle refers to a live node of this tree,
// either a member or a detached node
func (tree *Tree[K, V]) Valid(h Handle) bool {
	_, err := tree.arena.resolve(h)
	return nil == err
}

// IsMember - true if the handle refers to a node linked into this tree
func (tree *Tree[K, V]) IsMember(h Handle) bool {
	i, err := tree.arena.resolve(h)
	return nil == err && slotMember == tree.arena.at(i).state
}

// Key - read the key from a node
func (tree *Tree[K, V]) Key(h Handle) K {
	return tree.mustResolve(h).key
}

// Value - read the value from a node
func (tree *Tree[K, V]) Value(h Handle) V {
	return tree.mustResolve(h).value
}

// SetValue - overwrite the value of a node
//
// the key is not affected so the node keeps its position
func (tree *Tree[K, V]) SetValue(h Handle, value V) {
	tree.mustResolve(h).value = value
}

// Height - number of levels in the sub-tree rooted at a node
func (tree *Tree[K, V]) Height(h Handle) int {
	return tree.mustResolve(h).height
}

// Parent - return parent node of a node, Nil for the root or a
// detached node
func (tree *Tree[K, V]) Parent(h Handle) Handle {
	return tree.arena.handle(tree.mustResolve(h).parent)
}

// Depth - get the depth of a node, the root is at depth zero
func (tree *Tree[K, V]) Depth(h Handle) uint {
	count := uint(0)
	parent := tree.mustResolve(h).parent
	for 0 != parent {
		count += 1
		parent = tree.arena.at(parent).parent
	}
	return count
}

// NodesAtDepth - returns all nodes at a specific depth of a tree,
// left to right
func (tree *Tree[K, V]) NodesAtDepth(depth uint) []Handle {
	nodes := []Handle{}
	tree.collectAtDepth(tree.root, depth, &nodes)
	return nodes
}

func (tree *Tree[K, V]) collectAtDepth(i index, depth uint, nodes *[]Handle) {
	if 0 == i {
		return
	}
	if 0 == depth {
		*nodes = append(*nodes, tree.arena.handle(i))
		return
	}
	n := tree.arena.at(i)
	tree.collectAtDepth(n.left, depth-1, nodes)
	tree.collectAtDepth(n.right, depth-1, nodes)
}

// accessors treat a bad handle like an out of range slice index
func (tree *Tree[K, V]) mustResolve(h Handle) *node[K, V] {
	i, err := tree.arena.resolve(h)
	if nil != err {
		fault.Panicf("avl: handle %+v: %s", h, err)
	}
	return tree.arena.at(i)
}

// resolve a handle that must be a member of the tree
func (tree *Tree[K, V]) member(h Handle) (index, error) {
	i, err := tree.arena.resolve(h)
	if nil != err {
		return 0, err
	}
	if slotMember != tree.arena.at(i).state {
		return 0, fault.ErrNotMember
	}
	return i, nil
}

// resolve a handle that must be a detached node of the tree
func (tree *Tree[K, V]) detached(h Handle) (index, error) {
	i, err := tree.arena.resolve(h)
	if nil != err {
		return 0, err
	}
	if slotDetached != tree.arena.at(i).state {
		return 0, fault.ErrAlreadyMember
	}
	return i, nil
}

// height of a possibly empty sub-tree
func (tree *Tree[K, V]) heightOf(i index) int {
	if 0 == i {
		return 0
	}
	return tree.arena.at(i).height
}
