// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"fmt"

	"github.com/bitmark-inc/avlmap/avl"
)

func ExampleTree() {
	tree := avl.NewOrdered[string, int]()
	tree.Insert("pear", 3)
	tree.Insert("apple", 1)
	tree.Insert("fig", 2)

	for key, value := range tree.All() {
		fmt.Println(key, value)
	}
	// Output:
	// apple 1
	// fig 2
	// pear 3
}

func ExampleTree_Detach() {
	tree := avl.NewOrdered[int, string]()
	for _, k := range []int{2, 1, 3} {
		tree.Insert(k, fmt.Sprintf("item %d", k))
	}

	h := tree.Detach(2)
	fmt.Println(tree.Count(), tree.Value(h))

	// the same node goes back in
	_, added, err := tree.InsertNode(h)
	fmt.Println(added, err, tree.Count())
	// Output:
	// 2 item 2
	// true <nil> 3
}

func ExampleIterator() {
	tree := avl.NewOrdered[int, struct{}]()
	for _, k := range []int{10, 20, 30} {
		tree.InsertKey(k)
	}

	for it := tree.Last(); it.HasElement(); it.Prev() {
		fmt.Println(it.Key())
	}
	// Output:
	// 30
	// 20
	// 10
}

func ExampleSet() {
	s := avl.NewOrderedSet[string]()
	for _, w := range []string{"b", "a", "b", "c"} {
		if err := s.Add(w); nil != err {
			fmt.Println(w, err)
		}
	}
	for k := range s.All() {
		fmt.Println(k)
	}
	// Output:
	// b key already exists
	// a
	// b
	// c
}
