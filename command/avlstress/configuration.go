// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlmap/configuration"
	"github.com/bitmark-inc/avlmap/fault"
	"github.com/bitmark-inc/avlmap/util"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the config file

	defaultRounds             = 1000000
	defaultEntries            = 64831
	defaultActionChangePeriod = 120233
	defaultVerifyPeriod       = 1119
	defaultCopyPeriod         = 1351
	defaultIncrementVariation = 10
	defaultDetachedPool       = 100
	defaultStatsInterval      = 10 // seconds
	defaultProgressRate       = 1.0

	defaultLogDirectory = "log"
	defaultLogFile      = "avlstress.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - everything read from the Lua configuration file
type Configuration struct {
	DataDirectory      string               `gluamapper:"data_directory" json:"data_directory"`
	Workers            int                  `gluamapper:"workers" json:"workers"`
	Rounds             uint64               `gluamapper:"rounds" json:"rounds"`
	Entries            int                  `gluamapper:"entries" json:"entries"`
	ActionChangePeriod uint64               `gluamapper:"action_change_period" json:"action_change_period"`
	VerifyPeriod       uint64               `gluamapper:"verify_period" json:"verify_period"`
	CopyPeriod         uint64               `gluamapper:"copy_period" json:"copy_period"`
	IncrementVariation int                  `gluamapper:"increment_variation" json:"increment_variation"`
	DetachedPool       int                  `gluamapper:"detached_pool" json:"detached_pool"`
	Threaded           bool                 `gluamapper:"threaded" json:"threaded"`
	Seed               uint64               `gluamapper:"seed" json:"seed"`
	StatsInterval      int                  `gluamapper:"stats" json:"stats"`
	ProgressRate       float64              `gluamapper:"progress_rate" json:"progress_rate"`
	Logging            logger.Configuration `gluamapper:"logging" json:"logging"`
}

// the default values before reading the configuration file
func defaultConfiguration() *Configuration {
	return &Configuration{
		DataDirectory:      defaultDataDirectory,
		Workers:            runtime.NumCPU(),
		Rounds:             defaultRounds,
		Entries:            defaultEntries,
		ActionChangePeriod: defaultActionChangePeriod,
		VerifyPeriod:       defaultVerifyPeriod,
		CopyPeriod:         defaultCopyPeriod,
		IncrementVariation: defaultIncrementVariation,
		DetachedPool:       defaultDetachedPool,
		Threaded:           true,
		StatsInterval:      defaultStatsInterval,
		ProgressRate:       defaultProgressRate,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "info",
			},
		},
	}
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	if !util.EnsureFileExists(configurationFileName) {
		return nil, fmt.Errorf("%w: %q", fault.ErrMissingConfigFile, configurationFileName)
	}

	options := defaultConfiguration()

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	default:
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// fail if the log file is not a simple file name
	if !util.IsPlainFileName(options.Logging.File) {
		return nil, fmt.Errorf("%w: %q", fault.ErrNotPlainFileName, options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	d, err := util.EnsureDirectory(options.DataDirectory, options.Logging.Directory)
	if nil != err {
		return nil, err
	}
	options.Logging.Directory = d

	// done
	return options, nil
}

// check the stress test parameters
func (options *Configuration) validate() error {
	if options.Workers <= 0 {
		return fault.ErrInvalidWorkerCount
	}

	counts := []struct {
		name  string
		value int64
	}{
		{"rounds", int64(options.Rounds)},
		{"entries", int64(options.Entries)},
		{"action_change_period", int64(options.ActionChangePeriod)},
		{"verify_period", int64(options.VerifyPeriod)},
		{"copy_period", int64(options.CopyPeriod)},
		{"increment_variation", int64(options.IncrementVariation)},
		{"detached_pool", int64(options.DetachedPool)},
	}
	for _, c := range counts {
		if c.value <= 0 {
			return fmt.Errorf("%w: %s = %d", fault.ErrInvalidCount, c.name, c.value)
		}
	}

	if options.StatsInterval < 0 {
		return fmt.Errorf("%w: stats = %d", fault.ErrInvalidCount, options.StatsInterval)
	}
	if options.ProgressRate <= 0 {
		return fmt.Errorf("%w: progress_rate = %f", fault.ErrInvalidCount, options.ProgressRate)
	}
	return nil
}
