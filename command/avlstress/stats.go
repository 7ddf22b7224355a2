// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlmap/counter"
)

// totals shared by all workers
type statistics struct {
	rounds       counter.Counter
	inserts      counter.Counter
	duplicates   counter.Counter
	removes      counter.Counter
	missing      counter.Counter
	detaches     counter.Counter
	reinserts    counter.Counter
	evictions    counter.Counter
	dropped      counter.Counter
	verifies     counter.Counter
	copies       counter.Counter
	restructures counter.Counter
	failures     counter.Counter
}

// one line summary of the totals
func (s *statistics) String() string {
	return fmt.Sprintf(
		"rounds: %d  inserts: %d  duplicates: %d  removes: %d  missing: %d  detaches: %d  reinserts: %d  evictions: %d  dropped: %d  verifies: %d  copies: %d  restructures: %d  failures: %d",
		s.rounds.Uint64(),
		s.inserts.Uint64(),
		s.duplicates.Uint64(),
		s.removes.Uint64(),
		s.missing.Uint64(),
		s.detaches.Uint64(),
		s.reinserts.Uint64(),
		s.evictions.Uint64(),
		s.dropped.Uint64(),
		s.verifies.Uint64(),
		s.copies.Uint64(),
		s.restructures.Uint64(),
		s.failures.Uint64(),
	)
}

// background process to log the totals periodically
type reporter struct {
	log      *logger.L
	stats    *statistics
	interval time.Duration
}

func newReporter(stats *statistics, interval time.Duration) *reporter {
	return &reporter{
		log:      logger.New("stats"),
		stats:    stats,
		interval: interval,
	}
}

// Run - log the totals and the rate of rounds until shutdown
func (r *reporter) Run(args interface{}, shutdown <-chan struct{}) {

	log := r.log
	log.Info("starting…")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.stats.rounds.Uint64()
	lastTime := time.Now()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case now := <-ticker.C:
			rounds := r.stats.rounds.Uint64()
			elapsed := now.Sub(lastTime).Seconds()
			if elapsed > 0 {
				log.Infof("rate: %.0f rounds/s", float64(rounds-last)/elapsed)
			}
			log.Infof("%s", r.stats)
			last = rounds
			lastTime = now
		}
	}

	log.Infof("final: %s", r.stats)
	log.Info("shutting down…")
	log.Flush()
}
