// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	cache "github.com/patrickmn/go-cache"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// KeyValue - one leaf of a listing
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// internal: pick a root record, nil generation selects the current
// committed root
func resolveRoot(storeID merkle.StoreID, generation *uint64) (ledger.Root, error) {
	if nil == generation {
		return ledger.CurrentRoot(storeID)
	}
	return ledger.RootAt(storeID, *generation)
}

// internal: a read-only tree view, cached by root hash since node
// records are content addressed
func treeFor(storeID merkle.StoreID, root merkle.Digest) *workingTree {
	cacheKey := root.String()
	if cached, found := globalData.snapshots.Get(cacheKey); found {
		return cached.(*workingTree)
	}
	w := loadTree(storeID, root)
	globalData.snapshots.Set(cacheKey, w, cache.DefaultExpiration)
	return w
}

// GetValue - value of one key, nil generation selects the current
// committed root
func GetValue(storeID merkle.StoreID, key []byte, generation *uint64) ([]byte, error) {
	root, err := resolveRoot(storeID, generation)
	if nil != err {
		return nil, err
	}
	w := treeFor(storeID, root.NodeHash)
	leafHash, ok := w.index.Get(key)
	if !ok {
		return nil, fault.KeyNotFound
	}
	leaf, ok := w.node(leafHash).(*merkle.Leaf)
	if !ok {
		return nil, fault.NotLeafNode
	}
	return leaf.Value, nil
}

// GetKeys - all keys at a root in tree order
func GetKeys(storeID merkle.StoreID, generation *uint64) ([][]byte, error) {
	items, err := GetKeysValues(storeID, generation)
	if nil != err {
		return nil, err
	}
	keys := make([][]byte, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys, nil
}

// GetKeysValues - all leaves at a root in tree order
func GetKeysValues(storeID merkle.StoreID, generation *uint64) ([]KeyValue, error) {
	root, err := resolveRoot(storeID, generation)
	if nil != err {
		return nil, err
	}
	return treeFor(storeID, root.NodeHash).keysValues(), nil
}

// KeysValuesByRoot - all leaves under a root hash that must belong to
// the store's history
func KeysValuesByRoot(storeID merkle.StoreID, rootHash merkle.Digest) ([]KeyValue, error) {
	root, err := ledger.RootByHash(storeID, rootHash)
	if nil != err {
		return nil, err
	}
	return treeFor(storeID, root.NodeHash).keysValues(), nil
}

// PathStep - one internal on a root→leaf path with the side the path
// continues on
type PathStep struct {
	Node merkle.Internal
	Side merkle.Side
}

// LeafPath - the leaf digest of a key together with the internals
// above it, root first
func LeafPath(storeID merkle.StoreID, key []byte, generation *uint64) (merkle.Digest, []PathStep, ledger.Root, error) {
	root, err := resolveRoot(storeID, generation)
	if nil != err {
		return merkle.EmptyRoot, nil, ledger.Root{}, err
	}
	w := treeFor(storeID, root.NodeHash)
	leafHash, ok := w.index.Get(key)
	if !ok {
		return merkle.EmptyRoot, nil, ledger.Root{}, fault.KeyNotFound
	}
	path, ok := w.pathTo(leafHash)
	if !ok {
		return merkle.EmptyRoot, nil, ledger.Root{}, fault.KeyNotFound
	}
	steps := make([]PathStep, len(path))
	for i, step := range path {
		steps[i] = PathStep{Node: *step.node, Side: step.side}
	}
	return leafHash, steps, root, nil
}

// Ancestors - the internal nodes above a node, direct parent first
func Ancestors(storeID merkle.StoreID, nodeHash merkle.Digest, generation *uint64) ([]merkle.Internal, error) {
	root, err := resolveRoot(storeID, generation)
	if nil != err {
		return nil, err
	}
	w := treeFor(storeID, root.NodeHash)
	path, ok := w.pathTo(nodeHash)
	if !ok {
		return nil, fault.NodeNotFound
	}
	ancestors := make([]merkle.Internal, 0, len(path))
	for i := len(path) - 1; i >= 0; i -= 1 {
		ancestors = append(ancestors, *path[i].node)
	}
	return ancestors, nil
}
