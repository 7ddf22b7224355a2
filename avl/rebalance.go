// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// recalculate the heights from a node up towards the root
//
// stops at the first node whose height did not change, since none of
// its ancestors can change either
func (tree *Tree[K, V]) recalcHeights(i index) {
	for 0 != i {
		n := tree.arena.at(i)
		h := 1 + max(tree.heightOf(n.left), tree.heightOf(n.right))
		if h == n.height {
			return
		}
		n.height = h
		i = n.parent
	}
}

// left height minus right height
func (tree *Tree[K, V]) balanceOf(i index) int {
	n := tree.arena.at(i)
	return tree.heightOf(n.left) - tree.heightOf(n.right)
}

// the first node on the way up whose grandparent is out of balance,
// 0 if there is none
func (tree *Tree[K, V]) firstUnbalancedGrandparent(i index) index {
	if 0 == i {
		return 0
	}
	p := tree.arena.at(i).parent
	if 0 == p {
		return 0
	}
	gp := tree.arena.at(p).parent
	for 0 != gp {
		if b := tree.balanceOf(gp); b < -1 || b > 1 {
			return i
		}
		i = tree.arena.at(i).parent
		gp = tree.arena.at(gp).parent
	}
	return 0
}

// the first node, starting with i itself, that is out of balance,
// 0 if there is none
func (tree *Tree[K, V]) firstUnbalanced(i index) index {
	for 0 != i {
		if b := tree.balanceOf(i); b < -1 || b > 1 {
			return i
		}
		i = tree.arena.at(i).parent
	}
	return 0
}

// restructure the node n, its parent and grandparent
//
// the three nodes are labelled a, b, c in key order and the four sub
// trees hanging from them t1..t4; b becomes the local root with a and c
// as its children.  This single rebuild covers all four rotation cases.
//
// n must have a grandparent.  Returns the great grandparent (0 if b is
// now the root) so that callers can continue checking from there.
func (tree *Tree[K, V]) restructure(n index) index {
	tree.restructures += 1

	nn := tree.arena.at(n)
	p := nn.parent
	pn := tree.arena.at(p)
	gp := pn.parent
	gpn := tree.arena.at(gp)
	ggp := gpn.parent

	var a, b, c index
	var t1, t2, t3, t4 index

	if gpn.right == p {
		if pn.right == n {
			//  gp
			//    \
			//     p
			//      \
			//       n
			a, b, c = gp, p, n
			t1, t2, t3, t4 = gpn.left, pn.left, nn.left, nn.right
		} else {
			//  gp
			//    \
			//     p
			//    /
			//   n
			a, b, c = gp, n, p
			t1, t2, t3, t4 = gpn.left, nn.left, nn.right, pn.right
		}
	} else {
		if pn.right == n {
			//      gp
			//     /
			//    p
			//     \
			//      n
			a, b, c = p, n, gp
			t1, t2, t3, t4 = pn.left, nn.left, nn.right, gpn.right
		} else {
			//      gp
			//     /
			//    p
			//   /
			//  n
			a, b, c = n, p, gp
			t1, t2, t3, t4 = nn.left, nn.right, pn.right, gpn.right
		}
	}

	an := tree.arena.at(a)
	bn := tree.arena.at(b)
	cn := tree.arena.at(c)

	// tie b to the great grandparent
	if 0 == ggp {
		tree.root = b
	} else if ggpn := tree.arena.at(ggp); ggpn.left == gp {
		ggpn.left = b
	} else {
		ggpn.right = b
	}
	bn.parent = ggp

	bn.left = a
	an.parent = b
	bn.right = c
	cn.parent = b

	an.left = t1
	tree.setParent(t1, a)
	an.right = t2
	tree.setParent(t2, a)
	cn.left = t3
	tree.setParent(t3, c)
	cn.right = t4
	tree.setParent(t4, c)

	an.height = 1 + max(tree.heightOf(t1), tree.heightOf(t2))
	cn.height = 1 + max(tree.heightOf(t3), tree.heightOf(t4))
	bn.height = 1 + max(an.height, cn.height)

	tree.recalcHeights(ggp)
	return ggp
}

func (tree *Tree[K, V]) setParent(child index, parent index) {
	if 0 != child {
		tree.arena.at(child).parent = parent
	}
}
