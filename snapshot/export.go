// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"os"
	"path/filepath"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// internal: the ledger calls this on every committed root
func exportCommitted(root ledger.Root) {
	globalData.RLock()
	_, off := globalData.unsubscribed[root.StoreID]
	globalData.RUnlock()
	if off {
		return
	}

	if err := exportRoot(root); nil != err {
		globalData.log.Errorf("export failed for store: %s generation: %d  error: %s", root.StoreID, root.Generation, err)
	}
}

// internal: write the delta and full files of one root and apply the
// full file retention cap
func exportRoot(root ledger.Root) error {
	previous := merkle.EmptyRoot
	if root.Generation > 0 {
		before, err := ledger.RootAt(root.StoreID, root.Generation-1)
		if nil != err {
			return err
		}
		previous = before.NodeHash
	}

	delta := tree.PackedNodesDelta(root.StoreID, root.NodeHash, previous)
	err := writeFile(fileName{
		storeID:    root.StoreID,
		rootHash:   root.NodeHash,
		kind:       kindDelta,
		generation: root.Generation,
	}, delta)
	if nil != err {
		return err
	}

	full := tree.PackedNodes(root.StoreID, root.NodeHash)
	err = writeFile(fileName{
		storeID:    root.StoreID,
		rootHash:   root.NodeHash,
		kind:       kindFull,
		generation: root.Generation,
	}, full)
	if nil != err {
		return err
	}

	globalData.log.Infof("exported store: %s generation: %d (%d delta, %d full records)", root.StoreID, root.Generation, len(delta), len(full))

	return enforceRetention(root.StoreID, root.Generation)
}

// internal: drop full files older than the retention window ending at
// the given generation
func enforceRetention(storeID merkle.StoreID, newest uint64) error {
	globalData.RLock()
	limit := globalData.maximumFullFileCount
	globalData.RUnlock()

	if newest+1 <= limit {
		return nil
	}
	oldest := newest + 1 - limit

	files, err := listFiles(storeID)
	if nil != err {
		return err
	}
	directory := storeDirectory(storeID)
	for _, f := range files {
		if kindFull != f.kind || f.generation >= oldest {
			continue
		}
		if err := os.Remove(filepath.Join(directory, f.String())); nil != err {
			return err
		}
		globalData.log.Infof("retention dropped full file generation: %d for store: %s", f.generation, storeID)
	}
	return nil
}

// Subscribe - start exporting a store and backfill files for its
// whole committed history
func Subscribe(storeID merkle.StoreID) error {
	globalData.Lock()
	delete(globalData.unsubscribed, storeID)
	globalData.Unlock()

	history, err := ledger.History(storeID)
	if nil != err {
		return err
	}
	for _, root := range history {
		if !root.Status.IsCommitted() {
			continue
		}
		if err := exportRoot(root); nil != err {
			return err
		}
	}
	return nil
}

// Unsubscribe - stop exporting a store
//
// retain keeps the already exported files, otherwise every file of
// the store is removed
func Unsubscribe(storeID merkle.StoreID, retain bool) error {
	globalData.Lock()
	globalData.unsubscribed[storeID] = struct{}{}
	globalData.Unlock()

	if retain {
		return nil
	}

	files, err := listFiles(storeID)
	if nil != err {
		return err
	}
	directory := storeDirectory(storeID)
	for _, f := range files {
		if err := os.Remove(filepath.Join(directory, f.String())); nil != err {
			return err
		}
	}

	globalData.RLock()
	groupByStore := globalData.groupByStore
	globalData.RUnlock()
	if groupByStore {
		// ignore a non-empty directory holding foreign files
		_ = os.Remove(directory)
	}

	globalData.log.Infof("unsubscribed store: %s retain: %t", storeID, retain)
	return nil
}
