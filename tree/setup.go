// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
)

const (
	snapshotExpiration = 5 * time.Minute
	snapshotCleanup    = 10 * time.Minute
)

// globals for the tree engine
type treeData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	// key/value listings of historical roots, keyed by root hash
	snapshots *cache.Cache

	// set once during initialise
	initialised bool
}

// global data
var globalData treeData

// Initialise - setup the tree engine
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("tree")
	globalData.log.Info("starting…")

	globalData.snapshots = cache.New(snapshotExpiration, snapshotCleanup)

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the tree engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.snapshots.Flush()

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}
