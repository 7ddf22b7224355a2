// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/avlmap/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	for i := 0; i < 5; i += 1 {
		c1.Increment()
	}

	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	c1.Decrement()

	if 4 != c1.Uint64() {
		t.Errorf("counter is not 4 after decrementing: %d", c1.Uint64())
	}

	for i := 0; i < 4; i += 1 {
		c1.Decrement()
	}

	if !c1.IsZero() {
		t.Errorf("counter did not return to zero: %d", c1.Uint64())
	}

	c1.Decrement()

	// check against underflow, i.e. twos complement -1
	if ^uint64(0) != c1.Uint64() {
		t.Errorf("counter did not underflow: %d", c1.Uint64())
	}
}

func TestAddAndReset(t *testing.T) {
	var c counter.Counter

	assert.Equal(t, uint64(10), c.Add(10), "wrong value after add")
	assert.Equal(t, uint64(12), c.Add(2), "wrong value after second add")
	assert.Equal(t, uint64(12), c.Reset(), "reset did not return previous value")
	assert.True(t, c.IsZero(), "counter not zero after reset")
}

func TestConcurrentIncrement(t *testing.T) {
	const (
		goroutines = 8
		increments = 1000
	)

	var c counter.Counter
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*increments), c.Uint64(), "lost increments")
}
