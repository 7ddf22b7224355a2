// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Clone - deep copy of the tree with the same shape, heights and order
//
// keys and values are copied by assignment.  Detached nodes of the
// original are not copied.
func (tree *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{
		compare:  tree.compare,
		threaded: tree.threaded,
		log:      tree.log,
	}
	c.arena.initialise()
	c.root = c.copyBranch(tree, tree.root, 0)
	c.count = tree.count

	if nil != tree.log {
		tree.log.Debugf("clone: %d nodes", tree.count)
	}
	return c
}

// copy a sub-tree of src, appending the copies to the list in order
func (tree *Tree[K, V]) copyBranch(src *Tree[K, V], i index, parent index) index {
	if 0 == i {
		return 0
	}
	sn := src.arena.at(i)
	j := tree.arena.allocate(sn.key, sn.value)

	left := tree.copyBranch(src, sn.left, j)
	tree.listAddAfter(tree.tail, j)
	right := tree.copyBranch(src, sn.right, j)

	n := tree.arena.at(j)
	n.parent = parent
	n.left = left
	n.right = right
	n.height = sn.height
	n.state = slotMember
	return j
}

// Clear - destroy all member nodes leaving an empty tree
//
// detached nodes are not affected and may still be inserted
func (tree *Tree[K, V]) Clear() {
	if nil != tree.log {
		tree.log.Debugf("clear: %d nodes", tree.count)
	}
	tree.releaseBranch(tree.root)
	tree.root = 0
	tree.head = 0
	tree.tail = 0
	tree.count = 0
}

func (tree *Tree[K, V]) releaseBranch(i index) {
	if 0 == i {
		return
	}
	n := tree.arena.at(i)
	left, right := n.left, n.right
	tree.releaseBranch(left)
	tree.releaseBranch(right)
	tree.arena.release(i)
}
