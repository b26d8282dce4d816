// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diff_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + ".leveldb")
	os.RemoveAll("test.log")
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()

	logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      "test.log",
		Size:      50000,
		Count:     10,
	})

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = ledger.Initialise()
	if nil != err {
		t.Fatalf("ledger initialise error: %s", err)
	}

	err = tree.Initialise()
	if nil != err {
		t.Fatalf("tree initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	tree.Finalise()
	ledger.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// helper: apply one batch, commit it and return the new root
func commitChanges(t *testing.T, storeID merkle.StoreID, changes []tree.Change) ledger.Root {
	_, err := tree.Apply(storeID, changes, false)
	if nil != err {
		t.Fatalf("apply error: %s", err)
	}
	payload, err := ledger.Publish(storeID)
	if nil != err {
		t.Fatalf("publish error: %s", err)
	}
	err = ledger.Confirm(storeID, payload.Generation)
	if nil != err {
		t.Fatalf("confirm error: %s", err)
	}
	root, err := ledger.RootAt(storeID, payload.Generation)
	if nil != err {
		t.Fatalf("root at error: %s", err)
	}
	return root
}
