// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// PackedNodes - every node record reachable from a root in preorder,
// root first
func PackedNodes(storeID merkle.StoreID, root merkle.Digest) [][]byte {
	records := [][]byte{}
	w := treeFor(storeID, root)
	w.walkPacked(root, nil, &records)
	return records
}

// PackedNodesDelta - the node records reachable from a root but not
// from a previous root, preorder
//
// nodes are content addressed, so a subtree shared with the previous
// root is skipped whole
func PackedNodesDelta(storeID merkle.StoreID, root merkle.Digest, previous merkle.Digest) [][]byte {
	skip := make(map[merkle.Digest]struct{})
	if !previous.IsEmpty() {
		w := treeFor(storeID, previous)
		w.markSubtree(previous, skip)
	}

	records := [][]byte{}
	w := treeFor(storeID, root)
	w.walkPacked(root, skip, &records)
	return records
}

func (w *workingTree) walkPacked(hash merkle.Digest, skip map[merkle.Digest]struct{}, records *[][]byte) {
	if hash.IsEmpty() {
		return
	}
	if _, ok := skip[hash]; ok {
		return
	}
	node := w.node(hash)
	*records = append(*records, node.Pack())
	if internal, ok := node.(*merkle.Internal); ok {
		w.walkPacked(internal.Left, skip, records)
		w.walkPacked(internal.Right, skip, records)
	}
}

func (w *workingTree) markSubtree(hash merkle.Digest, seen map[merkle.Digest]struct{}) {
	if hash.IsEmpty() {
		return
	}
	if _, ok := seen[hash]; ok {
		return
	}
	seen[hash] = struct{}{}
	if internal, ok := w.node(hash).(*merkle.Internal); ok {
		w.markSubtree(internal.Left, seen)
		w.markSubtree(internal.Right, seen)
	}
}
