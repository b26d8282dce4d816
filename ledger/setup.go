// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// CommitObserver - called after every Pending → Committed transition
type CommitObserver func(root Root)

// globals for the ledger
type ledgerData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	storeLocks map[merkle.StoreID]*sync.Mutex
	observers  []CommitObserver

	// set once during initialise
	initialised bool
}

// global data
var globalData ledgerData

// Initialise - setup the ledger
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.storeLocks = make(map[merkle.StoreID]*sync.Mutex)
	globalData.observers = nil

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// RegisterCommitObserver - add a commit observer
//
// observers run synchronously inside the confirming call and must not
// block for long
func RegisterCommitObserver(observer CommitObserver) {
	globalData.Lock()
	globalData.observers = append(globalData.observers, observer)
	globalData.Unlock()
}

// LockStore - take the per-store mutation lock
//
// only one mutation sequence per store may be in flight; stores are
// locked independently so a slow external confirmation on one store
// never blocks another
func LockStore(storeID merkle.StoreID) {
	globalData.Lock()
	lock, ok := globalData.storeLocks[storeID]
	if !ok {
		lock = new(sync.Mutex)
		globalData.storeLocks[storeID] = lock
	}
	globalData.Unlock()
	lock.Lock()
}

// UnlockStore - release the per-store mutation lock
func UnlockStore(storeID merkle.StoreID) {
	globalData.RLock()
	lock := globalData.storeLocks[storeID]
	globalData.RUnlock()
	if nil != lock {
		lock.Unlock()
	}
}

// internal: snapshot the observer list
func commitObservers() []CommitObserver {
	globalData.RLock()
	defer globalData.RUnlock()
	observers := make([]CommitObserver, len(globalData.observers))
	copy(observers, globalData.observers)
	return observers
}
