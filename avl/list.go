// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// the in-order list: head/tail on the tree, prev/next on each node
//
// a structural tree keeps only head and tail up to date

// link n into the list immediately before next, which must be a member
func (tree *Tree[K, V]) listAddBefore(next index, i index) {
	if !tree.threaded {
		if next == tree.head {
			tree.head = i
		}
		return
	}

	n := tree.arena.at(i)
	nx := tree.arena.at(next)
	n.next = next
	n.prev = nx.prev
	nx.prev = i

	if 0 == n.prev {
		tree.head = i
	} else {
		tree.arena.at(n.prev).next = i
	}
}

// link n into the list immediately after prev, prev == 0 means the list
// is empty
func (tree *Tree[K, V]) listAddAfter(prev index, i index) {
	if !tree.threaded {
		if 0 == prev {
			tree.head = i
			tree.tail = i
		} else if prev == tree.tail {
			tree.tail = i
		}
		return
	}

	n := tree.arena.at(i)
	n.prev = prev
	if 0 == prev {
		n.next = tree.head
		tree.head = i
	} else {
		p := tree.arena.at(prev)
		n.next = p.next
		p.next = i
	}

	if 0 == n.next {
		tree.tail = i
	} else {
		tree.arena.at(n.next).prev = i
	}
}

// unlink n from the list, the tree structure must still be intact
func (tree *Tree[K, V]) listDetach(i index) {
	if !tree.threaded {
		if i == tree.head {
			tree.head = tree.successor(i)
		}
		if i == tree.tail {
			tree.tail = tree.predecessor(i)
		}
		return
	}

	n := tree.arena.at(i)
	if 0 == n.prev {
		tree.head = n.next
	} else {
		tree.arena.at(n.prev).next = n.next
	}

	if 0 == n.next {
		tree.tail = n.prev
	} else {
		tree.arena.at(n.next).prev = n.prev
	}
	n.prev = 0
	n.next = 0
}
