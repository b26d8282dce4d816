// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"bytes"
	"sort"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

// Action - kind of one change
type Action byte

// possible actions
const (
	ActionInsert Action = iota + 1
	ActionDelete
	ActionUpsert
)

// String - convert action for use by the fmt package (for %s)
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	case ActionUpsert:
		return "upsert"
	default:
		return "invalid"
	}
}

// Change - one entry of a changelist
//
// Reference and Side override default placement for an insert
type Change struct {
	Action    Action
	Key       []byte
	Value     []byte
	Reference *merkle.Digest
	Side      merkle.Side
}

// Batch - a changelist bound to one store
type Batch struct {
	StoreID merkle.StoreID
	Changes []Change
}

// Apply - run a changelist against a store's current root and stage
// the result as the next pending batch root
//
// submit publishes the new root immediately after staging
func Apply(storeID merkle.StoreID, changes []Change, submit bool) (ledger.Root, error) {
	if 0 == len(changes) {
		return ledger.Root{}, fault.EmptyChangelist
	}

	ledger.LockStore(storeID)
	root, err := applyLocked(storeID, changes)
	ledger.UnlockStore(storeID)
	if nil != err {
		return ledger.Root{}, err
	}

	if submit {
		if _, err := ledger.Publish(storeID); nil != err {
			return ledger.Root{}, err
		}
		root.Status = ledger.StatusPending
	}
	return root, nil
}

// internal: the store lock must be held
func applyLocked(storeID merkle.StoreID, changes []Change) (ledger.Root, error) {
	latest, err := ledger.LatestRoot(storeID)
	if nil != err {
		return ledger.Root{}, err
	}
	if !latest.Status.IsCommitted() {
		return ledger.Root{}, fault.PendingRootConflict
	}

	w := loadTree(storeID, latest.NodeHash)
	if err := w.applyChanges(changes); nil != err {
		return ledger.Root{}, err
	}
	if w.root == latest.NodeHash {
		return ledger.Root{}, fault.NoOpBatch
	}

	trx := storage.NewTransaction()
	if err := trx.Begin(); nil != err {
		return ledger.Root{}, err
	}
	w.commitNodes(trx)
	root, err := ledger.NewPendingRoot(trx, storeID, w.root)
	if nil != err {
		trx.Abort()
		return ledger.Root{}, err
	}
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return ledger.Root{}, err
	}

	globalData.log.Infof("staged root: %s generation: %d for store: %s", root.NodeHash, root.Generation, storeID)
	return root, nil
}

// internal: run the changes in order
func (w *workingTree) applyChanges(changes []Change) error {
	for _, change := range changes {
		var err error
		switch change.Action {
		case ActionInsert:
			err = w.insert(change.Key, change.Value, change.Reference, change.Side)
		case ActionDelete:
			err = w.delete(change.Key)
		case ActionUpsert:
			err = w.upsert(change.Key, change.Value)
		default:
			err = fault.InvalidError("unknown change action")
		}
		if nil != err {
			return err
		}
	}
	return nil
}

// ApplyMulti - stage changelists for several stores in one storage
// transaction, all or nothing
//
// each store id may appear only once
func ApplyMulti(batches []Batch, submit bool) ([]ledger.Root, error) {
	if 0 == len(batches) {
		return nil, fault.EmptyChangelist
	}

	seen := make(map[merkle.StoreID]struct{})
	for _, batch := range batches {
		if _, ok := seen[batch.StoreID]; ok {
			return nil, fault.StoreIDRepeated
		}
		seen[batch.StoreID] = struct{}{}
		if 0 == len(batch.Changes) {
			return nil, fault.EmptyChangelist
		}
	}

	// stable lock order
	ordered := make([]Batch, len(batches))
	copy(ordered, batches)
	sort.Slice(ordered, func(i int, j int) bool {
		return bytes.Compare(ordered[i].StoreID[:], ordered[j].StoreID[:]) < 0
	})
	for _, batch := range ordered {
		ledger.LockStore(batch.StoreID)
	}

	roots, err := applyMultiLocked(batches)

	for _, batch := range ordered {
		ledger.UnlockStore(batch.StoreID)
	}
	if nil != err {
		return nil, err
	}

	if submit {
		for i, batch := range batches {
			if _, err := ledger.Publish(batch.StoreID); nil != err {
				return nil, err
			}
			roots[i].Status = ledger.StatusPending
		}
	}
	return roots, nil
}

// internal: all store locks must be held
func applyMultiLocked(batches []Batch) ([]ledger.Root, error) {
	trx := storage.NewTransaction()
	if err := trx.Begin(); nil != err {
		return nil, err
	}

	roots := make([]ledger.Root, 0, len(batches))
	for _, batch := range batches {
		latest, err := ledger.LatestRoot(batch.StoreID)
		if nil != err {
			trx.Abort()
			return nil, err
		}
		if !latest.Status.IsCommitted() {
			trx.Abort()
			return nil, fault.PendingRootConflict
		}

		w := loadTree(batch.StoreID, latest.NodeHash)
		if err := w.applyChanges(batch.Changes); nil != err {
			trx.Abort()
			return nil, err
		}
		if w.root == latest.NodeHash {
			trx.Abort()
			return nil, fault.NoOpBatch
		}

		w.commitNodes(trx)
		root, err := ledger.NewPendingRoot(trx, batch.StoreID, w.root)
		if nil != err {
			trx.Abort()
			return nil, err
		}
		roots = append(roots, root)
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return nil, err
	}
	return roots, nil
}

// ClearPending - discard a store's single non-committed root and the
// nodes only it referenced
func ClearPending(storeID merkle.StoreID) error {
	ledger.LockStore(storeID)
	defer ledger.UnlockStore(storeID)

	trx := storage.NewTransaction()
	if err := trx.Begin(); nil != err {
		return err
	}
	discarded, err := ledger.DiscardPending(trx, storeID)
	if nil != err {
		trx.Abort()
		return err
	}
	derefSubtree(trx, discarded.NodeHash)
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	globalData.log.Infof("cleared pending root: %s generation: %d for store: %s", discarded.NodeHash, discarded.Generation, storeID)
	return nil
}

// ClearAllPending - clear pending roots across every store, stores
// without one are skipped
func ClearAllPending() error {
	stores, err := ledger.StoreList()
	if nil != err {
		return err
	}
	for _, storeID := range stores {
		err := ClearPending(storeID)
		if nil != err && fault.NoPendingRoot != err {
			return err
		}
	}
	return nil
}

// RollbackToGeneration - drop every root after a generation and
// release their nodes, used when the external chain reorganises
func RollbackToGeneration(storeID merkle.StoreID, generation uint64) error {
	ledger.LockStore(storeID)
	defer ledger.UnlockStore(storeID)

	trx := storage.NewTransaction()
	if err := trx.Begin(); nil != err {
		return err
	}
	discarded, err := ledger.DiscardAfter(trx, storeID, generation)
	if nil != err {
		trx.Abort()
		return err
	}
	for _, root := range discarded {
		derefSubtree(trx, root.NodeHash)
	}
	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	globalData.log.Infof("rolled back store: %s to generation: %d dropping %d roots", storeID, generation, len(discarded))
	return nil
}

// SubmitAllPendingRoots - publish the pending batch root of every
// store that has one
func SubmitAllPendingRoots() ([]ledger.PendingPayload, error) {
	stores, err := ledger.StoreList()
	if nil != err {
		return nil, err
	}
	payloads := []ledger.PendingPayload{}
	for _, storeID := range stores {
		payload, err := ledger.Publish(storeID)
		if nil != err {
			if fault.NoPendingRoot == err || fault.AlreadySubmitted == err {
				continue
			}
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// Insert - single key convenience over Apply
func Insert(storeID merkle.StoreID, key []byte, value []byte, reference *merkle.Digest, side merkle.Side, submit bool) (ledger.Root, error) {
	return Apply(storeID, []Change{{
		Action:    ActionInsert,
		Key:       key,
		Value:     value,
		Reference: reference,
		Side:      side,
	}}, submit)
}

// Delete - single key convenience over Apply
func Delete(storeID merkle.StoreID, key []byte, submit bool) (ledger.Root, error) {
	return Apply(storeID, []Change{{
		Action: ActionDelete,
		Key:    key,
	}}, submit)
}

// Upsert - single key convenience over Apply
func Upsert(storeID merkle.StoreID, key []byte, value []byte, submit bool) (ledger.Root, error) {
	return Apply(storeID, []Change{{
		Action: ActionUpsert,
		Key:    key,
		Value:  value,
	}}, submit)
}
