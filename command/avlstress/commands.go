// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/avlmap/avl"
	"github.com/bitmark-inc/avlmap/fault"
)

// setup command handler
//
// commands that do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "dump", "d":
		if 0 == len(arguments) {
			fmt.Printf("error: missing count\n")
			exitwithstatus.Exit(1)
		}
		n, err := strconv.Atoi(arguments[0])
		if nil != err {
			fmt.Printf("error: count: %q  error: %s\n", arguments[0], err)
			exitwithstatus.Exit(1)
		}
		order := "asc"
		if len(arguments) > 1 {
			order = arguments[1]
		}
		if err := dumpTree(os.Stdout, n, order); nil != err {
			fmt.Printf("error: dump: %s\n", err)
			exitwithstatus.Exit(1)
		}

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  dump N [asc|desc|random]   (d)      - insert N keys in the given order\n")
		fmt.Printf("                                        and print the resulting tree\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - run the stress test, same as no arguments\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// build a tree of n keys inserted in the given order and print it
func dumpTree(w io.Writer, n int, order string) error {
	if n <= 0 {
		return fault.ErrInvalidCount
	}

	keys := make([]int, n)
	for i := range keys {
		keys[i] = i + 1
	}
	switch order {
	case "asc", "a":
	case "desc", "d":
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	case "random", "r":
		rand.Shuffle(n, func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})
	default:
		return fmt.Errorf("%w: order: %q", fault.ErrUnknownCommand, order)
	}

	tree := avl.NewOrdered[int, struct{}]()
	for _, k := range keys {
		tree.InsertKey(k)
	}
	if err := tree.Check(); nil != err {
		return err
	}

	depth := tree.Print(w, false)
	fmt.Fprintf(w, "count: %d  depth: %d  restructures: %d\n", tree.Count(), depth, tree.Restructures())
	return nil
}
