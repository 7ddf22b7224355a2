// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print - write an ASCII graphic representation of the tree, right
// sub-trees above left ones; returns the maximum depth of the tree
func (tree *Tree[K, V]) Print(w io.Writer, printData bool) int {
	return tree.printTree(w, tree.root, "", rootBranch, printData)
}

// internal print - returns the maximum depth of the sub-tree
func (tree *Tree[K, V]) printTree(w io.Writer, i index, prefix string, br branch, printData bool) int {
	if 0 == i {
		return 0
	}
	n := tree.arena.at(i)

	rd := 0
	if 0 != n.right {
		t := "       "
		if leftBranch == br {
			t = "|      "
		}
		rd = tree.printTree(w, n.right, prefix+t, rightBranch, printData)
	}

	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	up := interface{}(nil)
	if 0 != n.parent {
		up = tree.arena.at(n.parent).key
	}
	if printData {
		fmt.Fprintf(w, "%v → %v ^%v %+2d/h%d\n", n.key, n.value, up, tree.balanceOf(i), n.height)
	} else {
		fmt.Fprintf(w, "%v ^%v\n", n.key, up)
	}

	ld := 0
	if 0 != n.left {
		t := "       "
		if rightBranch == br {
			t = "|      "
		}
		ld = tree.printTree(w, n.left, prefix+t, leftBranch, printData)
	}

	return 1 + max(ld, rd)
}
