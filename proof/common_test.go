// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

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

// helper: create a store and commit one batch of inserts
func committedStore(t *testing.T, items map[string]string) merkle.StoreID {
	storeID, err := ledger.CreateStore()
	if nil != err {
		t.Fatalf("create store error: %s", err)
	}

	changes := []tree.Change{}
	for key, value := range items {
		changes = append(changes, tree.Change{
			Action: tree.ActionInsert,
			Key:    []byte(key),
			Value:  []byte(value),
		})
	}

	commitChanges(t, storeID, changes)
	return storeID
}

// helper: apply one batch and commit it
func commitChanges(t *testing.T, storeID merkle.StoreID, changes []tree.Change) {
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
}
