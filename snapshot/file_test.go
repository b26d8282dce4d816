// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

func TestFileNameRoundTrip(t *testing.T) {
	var storeID merkle.StoreID
	storeID[0] = 0xab
	storeID[31] = 0x01

	f := fileName{
		storeID:    storeID,
		rootHash:   merkle.NewDigest([]byte("some root")),
		kind:       kindFull,
		generation: 42,
	}

	parsed, ok := parseFileName(f.String())
	assert.True(t, ok, "own file name rejected")
	assert.Equal(t, f, parsed, "file name round trip")

	f.kind = kindDelta
	parsed, ok = parseFileName(f.String())
	assert.True(t, ok, "delta file name rejected")
	assert.Equal(t, f, parsed, "delta file name round trip")
}

func TestParseFileNameRejectsForeign(t *testing.T) {
	rejected := []string{
		"",
		"notes.txt",
		"store-root-full-1-v1.0.dat",
		// truncated store id
		"abcd-0000000000000000000000000000000000000000000000000000000000000000-full-1-v1.0.dat",
		// bad kind
		"0000000000000000000000000000000000000000000000000000000000000000-0000000000000000000000000000000000000000000000000000000000000000-partial-1-v1.0.dat",
		// bad version
		"0000000000000000000000000000000000000000000000000000000000000000-0000000000000000000000000000000000000000000000000000000000000000-full-1-v2.0.dat",
		// upper case hex
		"AB00000000000000000000000000000000000000000000000000000000000000-0000000000000000000000000000000000000000000000000000000000000000-full-1-v1.0.dat",
	}
	for _, name := range rejected {
		_, ok := parseFileName(name)
		assert.False(t, ok, "accepted: %q", name)
	}
}
