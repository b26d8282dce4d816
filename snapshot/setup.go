// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/background"
	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Configuration - exporter settings
type Configuration struct {
	Directory            string `gluamapper:"directory" json:"directory"`
	MaximumFullFileCount uint64 `gluamapper:"maximum_full_file_count" json:"maximum_full_file_count"`
	GroupByStore         bool   `gluamapper:"group_by_store" json:"group_by_store"`
}

// DefaultMaximumFullFileCount - full file retention cap when the
// configuration leaves it unset
const DefaultMaximumFullFileCount = 10

// globals for the exporter
type snapshotData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	directory            string
	maximumFullFileCount uint64
	groupByStore         bool

	unsubscribed map[merkle.StoreID]struct{}

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData snapshotData

// Initialise - setup the exporter and hook it to the ledger
func Initialise(configuration Configuration) error {
	globalData.Lock()

	if globalData.initialised {
		globalData.Unlock()
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("snapshot")
	globalData.log.Info("starting…")

	globalData.directory = configuration.Directory
	globalData.maximumFullFileCount = configuration.MaximumFullFileCount
	if 0 == globalData.maximumFullFileCount {
		globalData.maximumFullFileCount = DefaultMaximumFullFileCount
	}
	globalData.groupByStore = configuration.GroupByStore
	globalData.unsubscribed = make(map[merkle.StoreID]struct{})

	globalData.initialised = true
	globalData.Unlock()

	ledger.RegisterCommitObserver(exportCommitted)

	w, err := newWatcher()
	if nil != err {
		return err
	}
	globalData.background = background.Start(background.Processes{w}, nil)

	return nil
}

// Finalise - shutdown the exporter
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.background.Stop()

	globalData.Lock()
	defer globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}
