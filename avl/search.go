// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Find - find a specific key, returns Nil if it is not present
func (tree *Tree[K, V]) Find(key K) Handle {
	return tree.arena.handle(tree.search(key))
}

// Get - the value stored with a key
func (tree *Tree[K, V]) Get(key K) (V, bool) {
	i := tree.search(key)
	if 0 == i {
		var zero V
		return zero, false
	}
	return tree.arena.at(i).value, true
}

// Contains - true if the key is present
func (tree *Tree[K, V]) Contains(key K) bool {
	return 0 != tree.search(key)
}

// descend from the root, one comparison per level
func (tree *Tree[K, V]) search(key K) index {
	i := tree.root
	for 0 != i {
		n := tree.arena.at(i)
		switch c := tree.compare(key, n.key); {
		case c < 0:
			i = n.left
		case c > 0:
			i = n.right
		default:
			return i
		}
	}
	return 0
}
