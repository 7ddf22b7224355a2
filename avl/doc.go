// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree with parent links and an
// in-order list threaded through the nodes
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.  Concurrent readers are fine as long as there is no
//       writer.
//
// Nodes live in an arena owned by the tree and are referred to by
// Handle values rather than pointers.  A node is either a member of
// the tree or detached; a detached node belongs to the caller who must
// either insert it again or Free it.
//
// The same Tree serves as an ordered map (Tree[K, V]) and, with a
// zero size value, as an ordered set (Set[K]).  The ordering is any
// three way comparison function: negative, zero or positive.
//
// Iteration follows the threaded list so that each step is O(1).  A
// tree created by NewStructural does not maintain the list and its
// iterators find the next node from the tree structure instead.
package avl
