// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - insert a new key and value into the tree
//
// returns the new node and true, or if the key is already present the
// existing node and false; in that case the tree is not changed
func (tree *Tree[K, V]) Insert(key K, value V) (Handle, bool) {
	found, parent, lastLess := tree.locate(key)
	if 0 != found {
		return tree.arena.handle(found), false
	}
	i := tree.arena.allocate(key, value)
	tree.attach(i, parent, lastLess)
	return tree.arena.handle(i), true
}

// InsertKey - insert a key with the zero value
func (tree *Tree[K, V]) InsertKey(key K) (Handle, bool) {
	var zero V
	return tree.Insert(key, zero)
}

// Put - insert a key and value, overwriting the value if the key is
// already present
//
// returns the node holding the key and true if it was newly added
func (tree *Tree[K, V]) Put(key K, value V) (Handle, bool) {
	found, parent, lastLess := tree.locate(key)
	if 0 != found {
		tree.arena.at(found).value = value
		return tree.arena.handle(found), false
	}
	i := tree.arena.allocate(key, value)
	tree.attach(i, parent, lastLess)
	return tree.arena.handle(i), true
}

// NewNode - create a detached node owned by the caller
//
// the node can be linked in with InsertNode or destroyed with Free
func (tree *Tree[K, V]) NewNode(key K, value V) Handle {
	return tree.arena.handle(tree.arena.allocate(key, value))
}

// InsertNode - link a detached node into the tree
//
// returns the node and true on success.  If its key is already present
// the existing node and false are returned and the node stays detached.
//
// errors: ErrInvalidHandle, ErrForeignNode, ErrAlreadyMember
func (tree *Tree[K, V]) InsertNode(h Handle) (Handle, bool, error) {
	i, err := tree.detached(h)
	if nil != err {
		if nil != tree.log {
			tree.log.Warnf("insert node: %+v  error: %s", h, err)
		}
		return Nil, false, err
	}
	found, parent, lastLess := tree.locate(tree.arena.at(i).key)
	if 0 != found {
		return tree.arena.handle(found), false, nil
	}
	tree.attach(i, parent, lastLess)
	return h, true, nil
}

// Adopt - move a detached node from another tree into this one
//
// on success the node in src is destroyed and the new node in this tree
// is returned with true.  If the key is already present the node stays
// detached in src and the existing node and false are returned.
func (tree *Tree[K, V]) Adopt(src *Tree[K, V], h Handle) (Handle, bool, error) {
	if src == tree {
		return tree.InsertNode(h)
	}
	j, err := src.detached(h)
	if nil != err {
		if nil != tree.log {
			tree.log.Warnf("adopt node: %+v  error: %s", h, err)
		}
		return Nil, false, err
	}
	sn := src.arena.at(j)
	found, parent, lastLess := tree.locate(sn.key)
	if 0 != found {
		return tree.arena.handle(found), false, nil
	}
	i := tree.arena.allocate(sn.key, sn.value)
	src.arena.release(j)
	tree.attach(i, parent, lastLess)
	return tree.arena.handle(i), true, nil
}

// descend to where key is or would be attached
//
// returns the node holding key if it is present; otherwise the parent
// to attach under and the last node at which the descent went left
func (tree *Tree[K, V]) locate(key K) (found index, parent index, lastLess index) {
	i := tree.root
	for 0 != i {
		n := tree.arena.at(i)
		switch c := tree.compare(key, n.key); {
		case c < 0:
			parent, lastLess = i, i
			i = n.left
		case c > 0:
			parent = i
			i = n.right
		default:
			return i, 0, 0
		}
	}
	return 0, parent, lastLess
}

// once an insertion position is found, attach a node to the tree as a
// leaf and rebalance
func (tree *Tree[K, V]) attach(i index, parent index, lastLess index) {
	tree.count += 1

	n := tree.arena.at(i)
	n.parent = parent
	n.left = 0
	n.right = 0
	n.prev = 0
	n.next = 0
	n.height = 1
	n.state = slotMember

	if 0 != parent {
		// if the parent is lastLess the descent finished going left
		if lastLess == parent {
			tree.arena.at(parent).left = i
			tree.listAddBefore(parent, i)
		} else {
			tree.arena.at(parent).right = i
			tree.listAddAfter(parent, i)
		}
	} else {
		tree.root = i
		tree.listAddAfter(tree.tail, i)
	}

	tree.recalcHeights(parent)

	// a single restructure always restores the balance after an insert
	if ub := tree.firstUnbalancedGrandparent(i); 0 != ub {
		tree.restructure(ub)
	}
}
