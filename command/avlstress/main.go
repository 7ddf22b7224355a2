// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlmap/background"
	"github.com/bitmark-inc/avlmap/fault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 0 == len(options["config-file"]) {
		exitwithstatus.Message("%s: %s", program, fault.ErrMissingConfigFile)
	}
	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// the PANIC channel for fault
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	quiet := len(options["quiet"]) > 0

	// ------------------
	// start of real main
	// ------------------

	stats := &statistics{}

	workers := make(background.Processes, theConfiguration.Workers)
	for i := range workers {
		workers[i] = newWorker(i, theConfiguration, stats)
	}

	var reporting *background.T
	if theConfiguration.StatsInterval > 0 {
		interval := time.Duration(theConfiguration.StatsInterval) * time.Second
		reporting = background.Start(background.Processes{newReporter(stats, interval)}, nil)
	}

	log.Infof("start: %d workers  rounds: %d", theConfiguration.Workers, theConfiguration.Rounds)
	if !quiet {
		fmt.Printf("running %d workers for %d rounds…\n", theConfiguration.Workers, theConfiguration.Rounds)
	}
	running := background.Start(workers, nil)

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-running.Done():
		log.Info("all workers finished")
	case sig := <-ch:
		log.Infof("received signal: %v", sig)
		if !quiet {
			fmt.Printf("\nreceived signal: %v\n", sig)
			fmt.Printf("\nshutting down…\n")
		}
	}

	log.Info("shutting down…")
	running.Stop()
	if nil != reporting {
		reporting.Stop()
	}

	log.Infof("totals: %s", stats)
	if !quiet {
		fmt.Printf("%s\n", stats)
	}

	if failures := stats.failures.Uint64(); 0 != failures {
		log.Criticalf("%d workers failed verification", failures)
		log.Flush()
		exitwithstatus.Message("%s: %d workers failed verification", program, failures)
	}
}
