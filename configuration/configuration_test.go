// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chia-Network/chia-blockchain-sub006/configuration"
)

type testDatabase struct {
	Directory string `gluamapper:"directory"`
	Name      string `gluamapper:"name"`
}

type testConfiguration struct {
	DataDirectory string       `gluamapper:"data_directory"`
	Count         int          `gluamapper:"count"`
	Enabled       bool         `gluamapper:"enabled"`
	Database      testDatabase `gluamapper:"database"`
}

const sampleConfiguration = `
local M = {}

M.data_directory = "/var/lib/test"
M.count = 12
M.enabled = true

M.database = {
    directory = M.data_directory .. "/data",
    name = "test.leveldb",
}

return M
`

func writeConfigurationFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "test.conf")
	err := os.WriteFile(path, []byte(content), 0o644)
	if nil != err {
		t.Fatalf("write error: %s", err)
	}
	return path
}

func TestParseConfigurationFile(t *testing.T) {
	path := writeConfigurationFile(t, sampleConfiguration)

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(path, &config)
	assert.Nil(t, err, "parse error")

	assert.Equal(t, "/var/lib/test", config.DataDirectory, "data directory")
	assert.Equal(t, 12, config.Count, "count")
	assert.True(t, config.Enabled, "enabled")
	assert.Equal(t, "/var/lib/test/data", config.Database.Directory, "database directory")
	assert.Equal(t, "test.leveldb", config.Database.Name, "database name")
}

func TestParseConfigurationFileArg(t *testing.T) {
	// the configuration program sees its own file name in arg[0]
	path := writeConfigurationFile(t, `
local M = {}
M.data_directory = arg[0]
return M
`)

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(path, &config)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, path, config.DataDirectory, "arg[0]")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	config := testConfiguration{}

	err := configuration.ParseConfigurationFile("no-such-file.conf", &config)
	assert.NotNil(t, err, "missing file accepted")

	path := writeConfigurationFile(t, `this is not lua`)
	err = configuration.ParseConfigurationFile(path, &config)
	assert.NotNil(t, err, "broken program accepted")
}
