// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - set holding at most a fixed number of items, adding to
// a full set evicts the oldest item
type LimitedSet[T comparable] struct {
	sync.Mutex
	size  int
	count int
	ring  *ring.Ring // next slot to fill, holds the oldest item when full
	hash  map[T]*ring.Ring
}

// New - create a new limited set that holds up to 'n' items
func New[T comparable](n int) *LimitedSet[T] {
	if n <= 0 {
		return nil
	}
	return &LimitedSet[T]{
		size: n,
		ring: ring.New(n),
		hash: make(map[T]*ring.Ring),
	}
}

// Add - add an item to the set
//
// returns the evicted item and true if the set was full; adding an
// existing item makes it the newest instead
func (ls *LimitedSet[T]) Add(item T) (T, bool) {
	ls.Lock()
	defer ls.Unlock()

	var evicted T
	if r, ok := ls.hash[item]; ok {
		ls.moveToCursor(r)
		ls.ring = r.Next()
		return evicted, false
	}

	full := false
	if oldItem, ok := ls.ring.Value.(T); ok {
		delete(ls.hash, oldItem)
		evicted = oldItem
		full = true
	} else {
		ls.count += 1
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return evicted, full
}

// Exists - check to see if item is in the set
func (ls *LimitedSet[T]) Exists(item T) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Remove - delete an item, returns false if it was not present
func (ls *LimitedSet[T]) Remove(item T) bool {
	ls.Lock()
	defer ls.Unlock()
	r, ok := ls.hash[item]
	if !ok {
		return false
	}
	ls.remove(item, r)
	return true
}

// Take - remove and return the oldest item
func (ls *LimitedSet[T]) Take() (T, bool) {
	ls.Lock()
	defer ls.Unlock()

	r := ls.ring
	for i := 0; i < ls.size; i += 1 {
		if item, ok := r.Value.(T); ok {
			ls.remove(item, r)
			return item, true
		}
		r = r.Next()
	}
	var empty T
	return empty, false
}

// Count - number of items currently held
func (ls *LimitedSet[T]) Count() int {
	ls.Lock()
	defer ls.Unlock()
	return ls.count
}

// Items - the items from oldest to newest
func (ls *LimitedSet[T]) Items() []T {
	ls.Lock()
	defer ls.Unlock()

	items := make([]T, 0, ls.count)
	ls.ring.Do(func(v interface{}) {
		if item, ok := v.(T); ok {
			items = append(items, item)
		}
	})
	return items
}

// empty a slot and make it the next one to fill so that the order of
// the remaining items is kept
func (ls *LimitedSet[T]) remove(item T, r *ring.Ring) {
	delete(ls.hash, item)
	ls.count -= 1
	r.Value = nil
	ls.moveToCursor(r)
	ls.ring = r
}

// relink r immediately before the cursor
func (ls *LimitedSet[T]) moveToCursor(r *ring.Ring) {
	if 1 == ls.size {
		return
	}
	if r == ls.ring {
		ls.ring = r.Next()
	}
	r.Prev().Unlink(1)
	ls.ring.Prev().Link(r)
}
