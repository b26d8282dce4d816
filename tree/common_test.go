// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

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

// helper: create a store
func newStore(t *testing.T) merkle.StoreID {
	storeID, err := ledger.CreateStore()
	if nil != err {
		t.Fatalf("create store error: %s", err)
	}
	return storeID
}

// helper: publish and confirm the staged pending root
func commitPending(t *testing.T, storeID merkle.StoreID) ledger.Root {
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

// helper: apply one batch and commit it
func applyCommitted(t *testing.T, storeID merkle.StoreID, changes []tree.Change) ledger.Root {
	_, err := tree.Apply(storeID, changes, false)
	assert.Nil(t, err, "apply error")
	return commitPending(t, storeID)
}

func insertChange(key []byte, value []byte) tree.Change {
	return tree.Change{Action: tree.ActionInsert, Key: key, Value: value}
}

func deleteChange(key []byte) tree.Change {
	return tree.Change{Action: tree.ActionDelete, Key: key}
}

func upsertChange(key []byte, value []byte) tree.Change {
	return tree.Change{Action: tree.ActionUpsert, Key: key, Value: value}
}
