// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/avlmap/avl"
	"github.com/bitmark-inc/avlmap/fault"
	"github.com/bitmark-inc/avlmap/limitedset"
)

// bits of the current action
const (
	actionInsert = 0x1
	actionRemove = 0x2
)

// one in this many inserts links a previously detached node back in
const reinsertChance = 4

// worker - owns one tree and mutates it for a number of rounds
type worker struct {
	id      int
	log     *logger.L
	options *Configuration
	stats   *statistics
	rng     *rand.Rand
	limiter *rate.Limiter
	tree    *avl.Tree[int, int]
	pool    *limitedset.LimitedSet[avl.Handle]

	round     uint64
	increment int
	action    int
	index     int
}

func newWorker(id int, options *Configuration, stats *statistics) *worker {
	seed := options.Seed
	if 0 == seed {
		seed = uint64(time.Now().UnixNano())
	}

	log := logger.New(fmt.Sprintf("worker-%d", id))

	var tree *avl.Tree[int, int]
	if options.Threaded {
		tree = avl.NewOrdered[int, int]()
	} else {
		tree = avl.NewStructural[int, int](cmp.Compare[int])
	}
	tree.SetLog(log)

	return &worker{
		id:      id,
		log:     log,
		options: options,
		stats:   stats,
		rng:     rand.New(rand.NewPCG(seed, uint64(id))),
		limiter: rate.NewLimiter(rate.Limit(options.ProgressRate), 1),
		tree:    tree,
		pool:    limitedset.New[avl.Handle](options.DetachedPool),
	}
}

// Run - perform the configured number of rounds or until shutdown
func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log
	log.Infof("starting… threaded: %v", w.tree.Threaded())

	err := w.run(shutdown)
	if nil != err {
		w.stats.failures.Increment()
		log.Criticalf("round: %d  error: %s", w.round, err)
	}

	log.Infof("finished: rounds: %d  count: %d  restructures: %d", w.round, w.tree.Count(), w.tree.Restructures())
	w.release()
	log.Flush()
}

func (w *worker) run(shutdown <-chan struct{}) error {
	for w.round = 0; w.round < w.options.Rounds; w.round += 1 {
		select {
		case <-shutdown:
			return w.verify(w.tree, "shutdown")
		default:
		}
		if err := w.step(); nil != err {
			return err
		}
	}
	return w.verify(w.tree, "final")
}

// a single round
func (w *worker) step() error {
	o := w.options

	// do we change our action?
	if 0 == w.round%o.ActionChangePeriod {
		w.increment = 0
		if 1 == w.rng.IntN(2) {
			w.increment = w.rng.IntN(o.IncrementVariation)
		}
		w.action = w.rng.IntN(3) + 1
		w.log.Debugf("round: %d  increment: %d  insert: %v  remove: %v", w.round, w.increment, 0 != w.action&actionInsert, 0 != w.action&actionRemove)
	}

	before := w.tree.Restructures()

	if 0 != w.action&actionInsert {
		w.newIndex()
		if err := w.insert(); nil != err {
			return err
		}
	}

	if 0 != w.action&actionRemove {
		w.newIndex()
		if err := w.remove(); nil != err {
			return err
		}
	}

	w.stats.restructures.Add(w.tree.Restructures() - before)
	w.stats.rounds.Increment()

	if 0 == w.round%o.VerifyPeriod {
		if err := w.verify(w.tree, "tree"); nil != err {
			return err
		}
	}

	// test the deep copy
	if 0 == w.round%o.CopyPeriod {
		if err := w.copy(); nil != err {
			return err
		}
	}

	if w.limiter.Allow() {
		height := 0
		if !w.tree.IsEmpty() {
			height = w.tree.Height(w.tree.Root())
		}
		w.log.Infof("round: %d  increment: %d  index: %d  count: %d  height: %d  detached: %d", w.round, w.increment, w.index, w.tree.Count(), height, w.pool.Count())
	}
	return nil
}

// find a new index to use, random if the increment is zero
func (w *worker) newIndex() {
	if 0 == w.increment {
		w.index = w.rng.IntN(w.options.Entries)
	} else {
		w.index = (w.index + w.increment) % w.options.Entries
	}
}

// insert the current index, or sometimes a detached node
func (w *worker) insert() error {

	if w.pool.Count() > 0 && 0 == w.rng.IntN(reinsertChance) {

		// any pooled node, not only the oldest
		items := w.pool.Items()
		h := items[w.rng.IntN(len(items))]
		w.pool.Remove(h)

		_, added, err := w.tree.InsertNode(h)
		if nil != err {
			return err
		}
		if added {
			w.stats.reinserts.Increment()
			return nil
		}

		// key was added again while the node was detached
		w.stats.dropped.Increment()
		return w.tree.Free(h)
	}

	h, added := w.tree.Insert(w.index, w.index)
	if added {
		w.stats.inserts.Increment()
		return nil
	}
	w.stats.duplicates.Increment()
	if v := w.tree.Value(h); v != w.index {
		return fmt.Errorf("%w: key: %d has value: %d", fault.ErrVerificationFailed, w.index, v)
	}
	return nil
}

// remove the current index, either destroying it or keeping it as a
// detached node for later reinsertion
func (w *worker) remove() error {

	if 0 == w.rng.IntN(2) {
		if w.tree.Remove(w.index) {
			w.stats.removes.Increment()
		} else {
			w.stats.missing.Increment()
		}
		return nil
	}

	h := w.tree.Detach(w.index)
	if h.IsNil() {
		w.stats.missing.Increment()
		return nil
	}
	w.stats.detaches.Increment()

	// a recycled slot must carry a new generation
	if w.pool.Exists(h) {
		return fmt.Errorf("%w: detached node: %+v is already pooled", fault.ErrVerificationFailed, h)
	}

	if evicted, full := w.pool.Add(h); full {
		w.stats.evictions.Increment()
		return w.tree.Free(evicted)
	}
	return nil
}

// check the structure and that every value matches its key
func (w *worker) verify(tree *avl.Tree[int, int], name string) error {
	w.stats.verifies.Increment()

	if err := tree.Check(); nil != err {
		return fmt.Errorf("%w: %s: %s", fault.ErrVerificationFailed, name, err)
	}

	// pooled nodes belong to the worker's own tree
	if tree == w.tree {
		for _, h := range w.pool.Items() {
			if !tree.Valid(h) || tree.IsMember(h) {
				return fmt.Errorf("%w: %s: pooled node: %+v is not detached", fault.ErrVerificationFailed, name, h)
			}
		}
	}
	for k, v := range tree.All() {
		if k != v {
			return fmt.Errorf("%w: %s: key: %d has value: %d", fault.ErrVerificationFailed, name, k, v)
		}
	}
	return nil
}

// clone the tree, verify the copy then empty it
func (w *worker) copy() error {
	w.stats.copies.Increment()

	c := w.tree.Clone()
	if err := w.verify(c, "copy"); nil != err {
		return err
	}
	if c.Count() != w.tree.Count() {
		return fmt.Errorf("%w: copy has: %d nodes  expected: %d", fault.ErrVerificationFailed, c.Count(), w.tree.Count())
	}
	c.Clear()
	if !c.IsEmpty() {
		return fmt.Errorf("%w: copy not empty after clear", fault.ErrVerificationFailed)
	}
	return nil
}

// destroy the detached nodes and the tree
func (w *worker) release() {
	for h, ok := w.pool.Take(); ok; h, ok = w.pool.Take() {
		if err := w.tree.Free(h); nil != err {
			w.log.Errorf("free detached node error: %s", err)
		}
	}
	w.tree.Clear()
}
