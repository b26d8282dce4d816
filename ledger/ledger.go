// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"time"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

// PendingPayload - the minimal data the external anchoring
// collaborator needs to commit a root on chain
type PendingPayload struct {
	StoreID    merkle.StoreID `json:"storeId"`
	RootHash   merkle.Digest  `json:"rootHash"`
	Generation uint64         `json:"generation"`
}

// SyncState - result of the sync-status query
//
// target equals current when nothing is pending
type SyncState struct {
	CurrentRootHash   merkle.Digest `json:"currentRootHash"`
	CurrentGeneration uint64        `json:"currentGeneration"`
	TargetRootHash    merkle.Digest `json:"targetRootHash"`
	TargetGeneration  uint64        `json:"targetGeneration"`
}

// CreateStore - create a fresh store
//
// generation zero is the committed empty root, so a new store is
// immediately readable
func CreateStore() (merkle.StoreID, error) {
	storeID, err := merkle.NewStoreID()
	if nil != err {
		return storeID, err
	}
	return storeID, CreateStoreWithID(storeID)
}

// CreateStoreWithID - create a store under an externally assigned id
func CreateStoreWithID(storeID merkle.StoreID) error {
	LockStore(storeID)
	defer UnlockStore(storeID)

	if StoreExists(storeID) {
		return fault.StoreAlreadyExists
	}

	now := uint64(time.Now().Unix())

	trx := storage.NewTransaction()
	if err := trx.Begin(); nil != err {
		return err
	}

	creation := make([]byte, 8)
	binary.BigEndian.PutUint64(creation, now)
	trx.Put(storage.Pool.Stores, storeID[:], creation)

	genesis := Root{
		StoreID:    storeID,
		NodeHash:   merkle.EmptyRoot,
		Generation: 0,
		Status:     StatusCommitted,
		Timestamp:  now,
	}
	trx.Put(storage.Pool.Roots, rootKey(storeID, 0), genesis.pack())

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	globalData.log.Infof("created store: %s", storeID)
	return nil
}

// StoreExists - check a store id is known
func StoreExists(storeID merkle.StoreID) bool {
	return storage.Pool.Stores.Has(storeID[:])
}

// StoreList - all known store ids
func StoreList() ([]merkle.StoreID, error) {
	stores := []merkle.StoreID{}
	cursor := storage.Pool.Stores.NewFetchCursor(nil)
	err := cursor.Map(func(key []byte, _ []byte) error {
		var storeID merkle.StoreID
		if err := merkle.StoreIDFromBytes(&storeID, key); nil != err {
			return err
		}
		stores = append(stores, storeID)
		return nil
	})
	return stores, err
}

// LatestRoot - the newest root record of any status
func LatestRoot(storeID merkle.StoreID) (Root, error) {
	element, found := storage.Pool.Roots.LastElement(storeID[:])
	if !found {
		return Root{}, fault.StoreNotAvailable
	}
	return unpackRoot(element.Key, element.Value), nil
}

// CurrentRoot - the newest committed root
//
// only the newest record can be non-committed, so at most one step
// back is needed
func CurrentRoot(storeID merkle.StoreID) (Root, error) {
	latest, err := LatestRoot(storeID)
	if nil != err {
		return Root{}, err
	}
	if latest.Status.IsCommitted() {
		return latest, nil
	}
	return RootAt(storeID, latest.Generation-1)
}

// RootAt - fetch one generation
func RootAt(storeID merkle.StoreID, generation uint64) (Root, error) {
	key := rootKey(storeID, generation)
	value := storage.Pool.Roots.Get(key)
	if nil == value {
		if !StoreExists(storeID) {
			return Root{}, fault.StoreNotAvailable
		}
		return Root{}, fault.HistoryNotFound
	}
	return unpackRoot(key, value), nil
}

// RootByHash - find the earliest generation carrying a node hash
//
// the empty sentinel always resolves (generation zero)
func RootByHash(storeID merkle.StoreID, hash merkle.Digest) (Root, error) {
	var found *Root
	cursor := storage.Pool.Roots.NewFetchCursor(storeID[:])
	err := cursor.Map(func(key []byte, value []byte) error {
		root := unpackRoot(key, value)
		if root.NodeHash == hash {
			found = &root
			return fault.HistoryNotFound // any error stops the scan
		}
		return nil
	})
	if nil != found {
		return *found, nil
	}
	if nil != err && fault.HistoryNotFound != err {
		return Root{}, err
	}
	if !StoreExists(storeID) {
		return Root{}, fault.StoreNotAvailable
	}
	return Root{}, fault.HistoryNotFound
}

// History - all generations in order, index 0 is the empty root
func History(storeID merkle.StoreID) ([]Root, error) {
	if !StoreExists(storeID) {
		return nil, fault.StoreNotAvailable
	}
	history := []Root{}
	cursor := storage.Pool.Roots.NewFetchCursor(storeID[:])
	err := cursor.Map(func(key []byte, value []byte) error {
		history = append(history, unpackRoot(key, value))
		return nil
	})
	return history, err
}

// NewPendingRoot - stage the next generation as a pending batch root
//
// the caller must hold the store lock and stages the tree nodes in the
// same transaction, so the root record and its nodes land atomically
func NewPendingRoot(trx storage.Transaction, storeID merkle.StoreID, nodeHash merkle.Digest) (Root, error) {
	latest, err := LatestRoot(storeID)
	if nil != err {
		return Root{}, err
	}
	if !latest.Status.IsCommitted() {
		return Root{}, fault.PendingRootConflict
	}

	root := Root{
		StoreID:    storeID,
		NodeHash:   nodeHash,
		Generation: latest.Generation + 1,
		Status:     StatusPendingBatch,
		Timestamp:  uint64(time.Now().Unix()),
	}
	trx.Put(storage.Pool.Roots, rootKey(storeID, root.Generation), root.pack())
	return root, nil
}

// Publish - move the pending batch root to pending and return the
// payload for the anchoring collaborator
func Publish(storeID merkle.StoreID) (PendingPayload, error) {
	LockStore(storeID)
	defer UnlockStore(storeID)

	latest, err := LatestRoot(storeID)
	if nil != err {
		return PendingPayload{}, err
	}

	switch latest.Status {
	case StatusPending:
		return PendingPayload{}, fault.AlreadySubmitted
	case StatusCommitted:
		return PendingPayload{}, fault.NoPendingRoot
	}

	if !canTransition(latest.Status, StatusPending) {
		return PendingPayload{}, fault.PendingRootConflict
	}
	latest.Status = StatusPending
	storage.Pool.Roots.Put(rootKey(storeID, latest.Generation), latest.pack())

	globalData.log.Infof("published root: %s generation: %d for store: %s", latest.NodeHash, latest.Generation, storeID)

	return PendingPayload{
		StoreID:    storeID,
		RootHash:   latest.NodeHash,
		Generation: latest.Generation,
	}, nil
}

// Confirm - external anchoring succeeded for a generation
func Confirm(storeID merkle.StoreID, generation uint64) error {
	LockStore(storeID)

	root, err := RootAt(storeID, generation)
	if nil != err {
		UnlockStore(storeID)
		return err
	}

	switch root.Status {
	case StatusCommitted:
		UnlockStore(storeID)
		return fault.LatestRootAlreadyConfirmed
	case StatusPendingBatch:
		UnlockStore(storeID)
		return fault.NoPendingRoot
	}

	root.Status = StatusCommitted
	storage.Pool.Roots.Put(rootKey(storeID, generation), root.pack())

	globalData.log.Infof("committed root: %s generation: %d for store: %s", root.NodeHash, root.Generation, storeID)
	UnlockStore(storeID)

	// observers run outside the store lock so a slow exporter cannot
	// block further mutations
	for _, observer := range commitObservers() {
		observer(root)
	}
	return nil
}

// DiscardPending - stage removal of the single non-committed root
//
// the caller must hold the store lock; the discarded record is
// returned for audit
func DiscardPending(trx storage.Transaction, storeID merkle.StoreID) (Root, error) {
	latest, err := LatestRoot(storeID)
	if nil != err {
		return Root{}, err
	}
	if latest.Status.IsCommitted() {
		return Root{}, fault.NoPendingRoot
	}
	trx.Delete(storage.Pool.Roots, rootKey(storeID, latest.Generation))
	return latest, nil
}

// DiscardAfter - stage removal of every root after a generation
//
// the caller must hold the store lock; used when the external chain
// reorganises; returns the discarded records, newest first
func DiscardAfter(trx storage.Transaction, storeID merkle.StoreID, generation uint64) ([]Root, error) {
	latest, err := LatestRoot(storeID)
	if nil != err {
		return nil, err
	}
	if generation > latest.Generation {
		return nil, fault.InvalidGeneration
	}

	discarded := []Root{}
	for g := latest.Generation; g > generation; g -= 1 {
		root, err := RootAt(storeID, g)
		if nil != err {
			return nil, err
		}
		trx.Delete(storage.Pool.Roots, rootKey(storeID, g))
		discarded = append(discarded, root)
	}
	return discarded, nil
}

// SyncStatus - report current versus target roots
//
// reads only committed records plus the single pending record, so it
// never takes the store lock and cannot block mutations elsewhere
func SyncStatus(storeID merkle.StoreID) (SyncState, error) {
	latest, err := LatestRoot(storeID)
	if nil != err {
		return SyncState{}, err
	}

	current := latest
	if !latest.Status.IsCommitted() {
		current, err = RootAt(storeID, latest.Generation-1)
		if nil != err {
			return SyncState{}, err
		}
	}

	return SyncState{
		CurrentRootHash:   current.NodeHash,
		CurrentGeneration: current.Generation,
		TargetRootHash:    latest.NodeHash,
		TargetGeneration:  latest.Generation,
	}, nil
}
