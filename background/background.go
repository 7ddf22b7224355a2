// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
)

// the shutdown and completed channels for a background process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for a set of running processes
type T struct {
	sync.Mutex
	s       []shutdown
	stopped bool
}

// Process - a background process
//
// Run must return promptly once shutdown is closed; it may also return
// earlier when its work is complete
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	// start each background
	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = shutdown
		register.s[i].finished = finished
		go func(p Process) {
			defer close(finished)
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Wait - wait for every process to return on its own
func (t *T) Wait() {
	for _, s := range t.s {
		<-s.finished
	}
}

// Done - channel that is closed once every process has returned
func (t *T) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		t.Wait()
		close(done)
	}()
	return done
}

// Stop - stop a set of background processes
//
// safe to call more than once
func (t *T) Stop() {
	t.Lock()
	if !t.stopped {
		t.stopped = true

		// shutdown all background tasks
		for _, s := range t.s {
			close(s.shutdown)
		}
	}
	t.Unlock()

	// wait for finished
	t.Wait()
}
