// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
)

// watches the output directory and repairs external removals of the
// newest full file of a store
type watcher struct {
	log     *logger.L
	watcher *fsnotify.Watcher
}

func newWatcher() (*watcher, error) {
	globalData.RLock()
	directory := globalData.directory
	globalData.RUnlock()

	if err := os.MkdirAll(directory, 0o755); nil != err {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	if err := fsw.Add(directory); nil != err {
		fsw.Close()
		return nil, err
	}

	// per-store subdirectories that already exist
	entries, err := os.ReadDir(directory)
	if nil == err {
		for _, entry := range entries {
			if entry.IsDir() {
				_ = fsw.Add(filepath.Join(directory, entry.Name()))
			}
		}
	}

	return &watcher{
		log:     logger.New("snapshot-watcher"),
		watcher: fsw,
	}, nil
}

// Run - background process loop
func (w *watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watch error: %s", err)
		}
	}

	w.watcher.Close()
	log.Info("finished")
	log.Flush()
}

func (w *watcher) handle(event fsnotify.Event) {
	log := w.log

	// new per-store subdirectory
	if 0 != event.Op&fsnotify.Create {
		if info, err := os.Stat(event.Name); nil == err && info.IsDir() {
			_ = w.watcher.Add(event.Name)
		}
		return
	}

	if 0 == event.Op&(fsnotify.Remove|fsnotify.Rename) {
		return
	}

	f, ok := parseFileName(filepath.Base(event.Name))
	if !ok {
		return
	}

	globalData.RLock()
	_, off := globalData.unsubscribed[f.storeID]
	globalData.RUnlock()
	if off {
		return
	}

	if kindFull != f.kind || !w.isNewestFull(f) {
		log.Infof("snapshot file removed externally: %s", filepath.Base(event.Name))
		return
	}

	root, err := ledger.RootAt(f.storeID, f.generation)
	if nil != err {
		log.Errorf("cannot restore removed file: %s  error: %s", filepath.Base(event.Name), err)
		return
	}
	if err := exportRoot(root); nil != err {
		log.Errorf("cannot restore removed file: %s  error: %s", filepath.Base(event.Name), err)
		return
	}
	log.Warnf("restored newest full file for store: %s generation: %d", f.storeID, f.generation)
}

// internal: no remaining full file is newer than this one
func (w *watcher) isNewestFull(f fileName) bool {
	files, err := listFiles(f.storeID)
	if nil != err {
		return false
	}
	for _, other := range files {
		if kindFull == other.kind && other.generation > f.generation {
			return false
		}
	}
	return true
}
