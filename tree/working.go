// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/Chia-Network/chia-blockchain-sub006/avl"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

// in-memory view of one store at one root
//
// staged holds nodes created by the current batch; everything else is
// read from the node pool
type workingTree struct {
	storeID merkle.StoreID
	root    merkle.Digest
	staged  map[merkle.Digest]merkle.Node
	index   *avl.Tree // key → leaf digest
}

// one step on a root→node path
type pathStep struct {
	node *merkle.Internal
	side merkle.Side
}

// internal: load a tree and build its key index by traversal
func loadTree(storeID merkle.StoreID, root merkle.Digest) *workingTree {
	w := &workingTree{
		storeID: storeID,
		root:    root,
		staged:  make(map[merkle.Digest]merkle.Node),
		index:   avl.New(),
	}
	w.indexSubtree(root)
	return w
}

func (w *workingTree) indexSubtree(hash merkle.Digest) {
	if hash.IsEmpty() {
		return
	}
	switch node := w.node(hash).(type) {
	case *merkle.Leaf:
		w.index.Insert(node.Key, hash)
	case *merkle.Internal:
		w.indexSubtree(node.Left)
		w.indexSubtree(node.Right)
	}
}

// internal: resolve a node through the staged set first
func (w *workingTree) node(hash merkle.Digest) merkle.Node {
	if node, ok := w.staged[hash]; ok {
		return node
	}
	return fetchNode(hash)
}

func (w *workingTree) isLeaf(hash merkle.Digest) bool {
	return w.node(hash).IsLeaf()
}

// internal: record a freshly built node
func (w *workingTree) stage(node merkle.Node) merkle.Digest {
	hash := node.Hash()
	w.staged[hash] = node
	return hash
}

// internal: depth first search for the path from the root down to a
// node hash; the returned steps start at the root
func (w *workingTree) pathTo(target merkle.Digest) ([]pathStep, bool) {
	if w.root == target {
		return []pathStep{}, true
	}
	return w.descend(w.root, target, nil)
}

func (w *workingTree) descend(current merkle.Digest, target merkle.Digest, path []pathStep) ([]pathStep, bool) {
	if current.IsEmpty() {
		return nil, false
	}
	internal, ok := w.node(current).(*merkle.Internal)
	if !ok {
		return nil, false
	}
	for _, side := range []merkle.Side{merkle.Left, merkle.Right} {
		child := internal.Child(side)
		if child == target {
			return append(path, pathStep{node: internal, side: side}), true
		}
		if found, ok := w.descend(child, target, append(path, pathStep{node: internal, side: side})); ok {
			return found, true
		}
	}
	return nil, false
}

// internal: rebuild the internals along a path after the node at its
// end was replaced, bottom up; returns the new root
func (w *workingTree) rebuildPath(path []pathStep, replacement merkle.Digest) merkle.Digest {
	current := replacement
	for i := len(path) - 1; i >= 0; i -= 1 {
		step := path[i]
		internal := &merkle.Internal{}
		if merkle.Left == step.side {
			internal.Left = current
			internal.Right = step.node.Right
		} else {
			internal.Left = step.node.Left
			internal.Right = current
		}
		current = w.stage(internal)
	}
	return current
}

// internal: ordered key/value listing by in-order traversal
func (w *workingTree) keysValues() []KeyValue {
	items := []KeyValue{}
	w.collect(w.root, &items)
	return items
}

func (w *workingTree) collect(hash merkle.Digest, items *[]KeyValue) {
	if hash.IsEmpty() {
		return
	}
	switch node := w.node(hash).(type) {
	case *merkle.Leaf:
		*items = append(*items, KeyValue{Key: node.Key, Value: node.Value})
	case *merkle.Internal:
		w.collect(node.Left, items)
		w.collect(node.Right, items)
	}
}

// internal: stage every new node reachable from the current root into
// the transaction
func (w *workingTree) commitNodes(trx storage.Transaction) {
	refSubtree(trx, w.staged, w.root)
}
