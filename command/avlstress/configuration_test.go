// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avlmap/fault"
)

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, text string) string {
	d, err := os.MkdirTemp("", "avlstress")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(d) })

	fileName := filepath.Join(d, "avlstress.conf")
	require.NoError(t, os.WriteFile(fileName, []byte(text), 0600))
	return fileName
}

func TestSampleConfiguration(t *testing.T) {
	sample, err := os.ReadFile("avlstress.conf.sample")
	require.NoError(t, err)

	os.Unsetenv("AVLSTRESS_WORKERS")
	fileName := writeConfiguration(t, string(sample))

	options, err := getConfiguration(fileName)
	require.NoError(t, err)

	d := filepath.Dir(fileName)
	assert.Equal(t, d+string(filepath.Separator), options.DataDirectory)
	assert.Equal(t, 4, options.Workers)
	assert.Equal(t, uint64(1000000), options.Rounds)
	assert.Equal(t, 64831, options.Entries)
	assert.Equal(t, uint64(120233), options.ActionChangePeriod)
	assert.Equal(t, uint64(1119), options.VerifyPeriod)
	assert.Equal(t, uint64(1351), options.CopyPeriod)
	assert.Equal(t, 10, options.IncrementVariation)
	assert.Equal(t, 100, options.DetachedPool)
	assert.True(t, options.Threaded)
	assert.Equal(t, 10, options.StatsInterval)
	assert.Equal(t, filepath.Join(d, "log"), options.Logging.Directory)
	assert.Equal(t, "avlstress.log", options.Logging.File)
	assert.Equal(t, "info", options.Logging.Levels["stats"])

	info, err := os.Stat(options.Logging.Directory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigurationEnvironment(t *testing.T) {
	sample, err := os.ReadFile("avlstress.conf.sample")
	require.NoError(t, err)

	t.Setenv("AVLSTRESS_WORKERS", "9")
	options, err := getConfiguration(writeConfiguration(t, string(sample)))
	require.NoError(t, err)
	assert.Equal(t, 9, options.Workers)
}

func TestConfigurationDefaults(t *testing.T) {
	options, err := getConfiguration(writeConfiguration(t, `return { threaded = false }`))
	require.NoError(t, err)

	expected := defaultConfiguration()
	assert.False(t, options.Threaded)
	assert.Equal(t, expected.Workers, options.Workers)
	assert.Equal(t, expected.Rounds, options.Rounds)
	assert.Equal(t, expected.Entries, options.Entries)
	assert.Equal(t, "info", options.Logging.Levels["DEFAULT"])
}

func TestConfigurationErrors(t *testing.T) {
	items := []struct {
		text     string
		expected error
	}{
		{`return { workers = 0 }`, fault.ErrInvalidWorkerCount},
		{`return { entries = 0 }`, fault.ErrInvalidCount},
		{`return { verify_period = 0 }`, fault.ErrInvalidCount},
		{`return { detached_pool = -1 }`, fault.ErrInvalidCount},
		{`return { stats = -1 }`, fault.ErrInvalidCount},
		{`return { progress_rate = 0 }`, fault.ErrInvalidCount},
		{`return { logging = { file = "a/b.log" } }`, fault.ErrNotPlainFileName},
		{`return 7`, fault.ErrConfigurationNotTable},
	}

	for i, item := range items {
		_, err := getConfiguration(writeConfiguration(t, item.text))
		require.Error(t, err, "%d: %s", i, item.text)
		assert.True(t, errors.Is(err, item.expected), "%d: %s  error: %s", i, item.text, err)
	}

	_, err := getConfiguration(writeConfiguration(t, `return { data_directory = "" }`))
	assert.Error(t, err)
}

func TestConfigurationMissingFile(t *testing.T) {
	fileName := filepath.Join(filepath.Dir(writeConfiguration(t, `return {}`)), "absent.conf")

	_, err := getConfiguration(fileName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrMissingConfigFile), "error: %s", err)
	assert.Contains(t, err.Error(), "absent.conf")
}
