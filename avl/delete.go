// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlmap/fault"
)

// Detach - unlink the node holding key from the tree without destroying
// it, ownership passes to the caller
//
// returns Nil if the key is not present
func (tree *Tree[K, V]) Detach(key K) Handle {
	i := tree.search(key)
	if 0 == i {
		return Nil
	}
	tree.detach(i)
	return tree.arena.handle(i)
}

// DetachNode - unlink a member node from the tree without destroying it
//
// errors: ErrNotMember for a node that is already detached,
// ErrInvalidHandle or ErrForeignNode for a handle that does not refer
// to a live node of this tree.  The tree is unchanged on error.
func (tree *Tree[K, V]) DetachNode(h Handle) error {
	i, err := tree.member(h)
	if nil != err {
		if nil != tree.log {
			tree.log.Warnf("detach node: %+v  error: %s", h, err)
		}
		return err
	}
	tree.detach(i)
	return nil
}

// Remove - removes a specific key from the tree and destroys its node
//
// returns false if the key was not present
func (tree *Tree[K, V]) Remove(key K) bool {
	i := tree.search(key)
	if 0 == i {
		return false
	}
	tree.detach(i)
	tree.arena.release(i)
	return true
}

// RemoveNode - unlink and destroy a member node
//
// errors are as for DetachNode
func (tree *Tree[K, V]) RemoveNode(h Handle) error {
	i, err := tree.member(h)
	if nil != err {
		if nil != tree.log {
			tree.log.Warnf("remove node: %+v  error: %s", h, err)
		}
		return err
	}
	tree.detach(i)
	tree.arena.release(i)
	return nil
}

// Free - destroy a detached node
//
// errors: ErrAlreadyMember if the node is still linked into the tree
// (use RemoveNode), ErrInvalidHandle or ErrForeignNode
func (tree *Tree[K, V]) Free(h Handle) error {
	i, err := tree.detached(h)
	if nil != err {
		return err
	}
	tree.arena.release(i)
	return nil
}

// unlink a member node and rebalance
func (tree *Tree[K, V]) detach(i index) {
	// the list must be fixed first while the structure can still
	// provide the neighbours of a structural tree
	tree.listDetach(i)
	tree.count -= 1

	n := tree.arena.at(i)
	var fixFrom index

	if 0 != n.right {
		// leftmost node of the right sub-tree
		replacement := n.right
		for l := tree.arena.at(replacement).left; 0 != l; l = tree.arena.at(replacement).left {
			replacement = l
		}
		rn := tree.arena.at(replacement)

		// if replacing with its own child, fixing starts at the
		// replacement, otherwise at the replacement's parent
		if rn.parent == i {
			fixFrom = replacement
		} else {
			fixFrom = rn.parent
		}
		tree.removeNode(replacement, rn.right)
		tree.replaceNode(i, replacement)

	} else if 0 != n.left {
		// rightmost node of the left sub-tree
		replacement := n.left
		for r := tree.arena.at(replacement).right; 0 != r; r = tree.arena.at(replacement).right {
			replacement = r
		}
		rn := tree.arena.at(replacement)

		if rn.parent == i {
			fixFrom = replacement
		} else {
			fixFrom = rn.parent
		}
		tree.removeNode(replacement, rn.left)
		tree.replaceNode(i, replacement)

	} else {
		fixFrom = n.parent
		tree.removeNode(i, 0)
	}

	n.left = 0
	n.right = 0
	n.parent = 0
	n.height = 0
	n.state = slotDetached

	// deleted the last node
	if 0 == fixFrom {
		return
	}

	tree.recalcHeights(fixFrom)

	// unlike insertion several restructures may be needed on the way up
	rounds := 0
	for ub := tree.firstUnbalanced(fixFrom); 0 != ub; ub = tree.firstUnbalanced(fixFrom) {
		fixFrom = tree.restructure(tree.restructurePoint(ub))
		rounds += 1
	}
	if rounds > 1 && nil != tree.log {
		tree.log.Debugf("detach: %d restructures  count: %d", rounds, tree.count)
	}
}

// move down two levels from an unbalanced node towards the greater
// height
//
// the first move can never be a tie; on a tie at the second level
// continue in the direction of the first move
func (tree *Tree[K, V]) restructurePoint(ub index) index {
	n := tree.arena.at(ub)
	lh := tree.heightOf(n.left)
	rh := tree.heightOf(n.right)
	if lh == rh {
		fault.Panicf("avl: unbalanced node has equal sub-tree heights: %d", lh)
	}

	if rh > lh {
		ub = n.right
		n = tree.arena.at(ub)
		if tree.heightOf(n.left) > tree.heightOf(n.right) {
			return n.left
		}
		return n.right
	}

	ub = n.left
	n = tree.arena.at(ub)
	if tree.heightOf(n.right) > tree.heightOf(n.left) {
		return n.right
	}
	return n.left
}

// put replacement, which is not in the tree, into the position of i
func (tree *Tree[K, V]) replaceNode(i index, replacement index) {
	n := tree.arena.at(i)
	rn := tree.arena.at(replacement)

	rn.left = n.left
	tree.setParent(n.left, replacement)
	rn.right = n.right
	tree.setParent(n.right, replacement)

	rn.parent = n.parent
	tree.replaceChild(n.parent, i, replacement)

	rn.height = n.height
}

// take i out of the tree and put filler, nil or a child of i, in its
// place
func (tree *Tree[K, V]) removeNode(i index, filler index) {
	parent := tree.arena.at(i).parent
	tree.replaceChild(parent, i, filler)
	tree.setParent(filler, parent)
}

// point the link of parent that refers to child at replacement, a zero
// parent means child is the root
func (tree *Tree[K, V]) replaceChild(parent index, child index, replacement index) {
	if 0 == parent {
		tree.root = replacement
		return
	}
	p := tree.arena.at(parent)
	if p.left == child {
		p.left = replacement
	} else {
		p.right = replacement
	}
}
