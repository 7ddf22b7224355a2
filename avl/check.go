// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"

	"github.com/bitmark-inc/avlmap/fault"
)

// Check - verify the consistency of the whole tree
//
// checks parent links, heights, balance, key order, the in-order list
// and the node count; returns an ErrCorruptTree based error describing
// the first problem found
func (tree *Tree[K, V]) Check() error {
	err := tree.check()
	if nil != err && nil != tree.log {
		tree.log.Errorf("check: %s", err)
	}
	return err
}

func (tree *Tree[K, V]) check() error {
	if 0 != tree.root && 0 != tree.arena.at(tree.root).parent {
		return corrupt("root has a parent")
	}

	inOrder := make([]index, 0, tree.count)
	if _, err := tree.checkNode(tree.root, 0, &inOrder); nil != err {
		return err
	}

	if len(inOrder) != tree.count {
		return corrupt("structure holds %d nodes, count is %d", len(inOrder), tree.count)
	}
	for i := 1; i < len(inOrder); i += 1 {
		a := tree.arena.at(inOrder[i-1]).key
		b := tree.arena.at(inOrder[i]).key
		if tree.compare(a, b) >= 0 {
			return corrupt("keys out of order: %v then %v", a, b)
		}
	}

	first, last := index(0), index(0)
	if len(inOrder) > 0 {
		first, last = inOrder[0], inOrder[len(inOrder)-1]
	}
	if tree.head != first {
		return corrupt("head is slot %d, lowest key is in slot %d", tree.head, first)
	}
	if tree.tail != last {
		return corrupt("tail is slot %d, highest key is in slot %d", tree.tail, last)
	}

	if !tree.threaded {
		return nil
	}

	// the list must visit the same nodes in the same order
	prev := index(0)
	n := 0
	for i := tree.head; 0 != i; i = tree.arena.at(i).next {
		if n >= len(inOrder) {
			return corrupt("list is longer than the structure")
		}
		if inOrder[n] != i {
			return corrupt("list position %d is slot %d, structure has slot %d", n, i, inOrder[n])
		}
		if tree.arena.at(i).prev != prev {
			return corrupt("slot %d: prev is %d, expected %d", i, tree.arena.at(i).prev, prev)
		}
		prev = i
		n += 1
	}
	if n != len(inOrder) {
		return corrupt("list holds %d nodes, structure holds %d", n, len(inOrder))
	}
	return nil
}

// check a sub-tree, returning its height and appending its nodes in order
func (tree *Tree[K, V]) checkNode(i index, parent index, inOrder *[]index) (int, error) {
	if 0 == i {
		return 0, nil
	}
	n := tree.arena.at(i)
	if slotMember != n.state {
		return 0, corrupt("slot %d: linked into the tree but not a member", i)
	}
	if n.parent != parent {
		return 0, corrupt("slot %d: parent is %d, expected %d", i, n.parent, parent)
	}

	lh, err := tree.checkNode(n.left, i, inOrder)
	if nil != err {
		return 0, err
	}
	*inOrder = append(*inOrder, i)
	rh, err := tree.checkNode(n.right, i, inOrder)
	if nil != err {
		return 0, err
	}

	h := 1 + max(lh, rh)
	if n.height != h {
		return 0, corrupt("key %v: height is %d, expected %d", n.key, n.height, h)
	}
	if b := lh - rh; b < -1 || b > 1 {
		return 0, corrupt("key %v: balance is %d", n.key, b)
	}
	return h, nil
}

func corrupt(format string, arguments ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{fault.ErrCorruptTree}, arguments...)...)
}
