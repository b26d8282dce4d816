// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

// internal: fetch a node that a root record claims to exist
//
// a missing or undecodable node under a recorded root is storage
// corruption and is fatal
func fetchNode(hash merkle.Digest) merkle.Node {
	packed := storage.Pool.Nodes.Get(hash[:])
	if nil == packed {
		logger.Panicf("tree: missing node: %s", hash)
	}
	node, err := merkle.UnpackNode(packed)
	if nil != err {
		logger.Panicf("tree: undecodable node: %s  error: %s", hash, err)
	}
	return node
}

// internal: stage one subtree into the transaction with reference
// counting
//
// a node already present only gains a reference; a new node is written
// with count one and its children are staged in turn, so shared
// subtrees are stored once
func refSubtree(trx storage.Transaction, staged map[merkle.Digest]merkle.Node, hash merkle.Digest) {
	if hash.IsEmpty() {
		return
	}
	count, found := trx.GetN(storage.Pool.Refcounts, hash[:])
	if found {
		trx.PutN(storage.Pool.Refcounts, hash[:], count+1)
		return
	}

	node, ok := staged[hash]
	if !ok {
		logger.Panicf("tree: staged node not found: %s", hash)
	}
	trx.Put(storage.Pool.Nodes, hash[:], node.Pack())
	trx.PutN(storage.Pool.Refcounts, hash[:], 1)

	if internal, ok := node.(*merkle.Internal); ok {
		refSubtree(trx, staged, internal.Left)
		refSubtree(trx, staged, internal.Right)
	}
}

// internal: drop one reference from a subtree
//
// a node reaching zero references is deleted and its children are
// dereferenced in turn
func derefSubtree(trx storage.Transaction, hash merkle.Digest) {
	if hash.IsEmpty() {
		return
	}
	count, found := trx.GetN(storage.Pool.Refcounts, hash[:])
	if !found {
		logger.Panicf("tree: missing reference count: %s", hash)
	}
	if count > 1 {
		trx.PutN(storage.Pool.Refcounts, hash[:], count-1)
		return
	}

	packed := trx.Get(storage.Pool.Nodes, hash[:])
	if nil == packed {
		logger.Panicf("tree: missing node: %s", hash)
	}
	node, err := merkle.UnpackNode(packed)
	if nil != err {
		logger.Panicf("tree: undecodable node: %s  error: %s", hash, err)
	}

	trx.Delete(storage.Pool.Nodes, hash[:])
	trx.Delete(storage.Pool.Refcounts, hash[:])

	if internal, ok := node.(*merkle.Internal); ok {
		derefSubtree(trx, internal.Left)
		derefSubtree(trx, internal.Right)
	}
}
