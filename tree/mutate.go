// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// internal: bit i of a digest, most significant bit first
func bitAt(digest merkle.Digest, i int) merkle.Side {
	if 0 == digest[i/8]&(0x80>>uint(i%8)) {
		return merkle.Left
	}
	return merkle.Right
}

// internal: index of the first differing bit at or after from
func firstDivergentBit(a merkle.Digest, b merkle.Digest, from int) (int, bool) {
	for i := from; i < 8*merkle.DigestLength; i += 1 {
		if bitAt(a, i) != bitAt(b, i) {
			return i, true
		}
	}
	return 0, false
}

// internal: insert a new leaf
//
// nil reference selects default placement by key hash bits; a non-nil
// reference grafts the leaf beside the referenced node on the given
// side and the resulting shape is binding
func (w *workingTree) insert(key []byte, value []byte, reference *merkle.Digest, side merkle.Side) error {
	if w.index.Has(key) {
		return fault.DuplicateKey
	}

	leaf := &merkle.Leaf{Key: key, Value: value}
	leafHash := w.stage(leaf)

	if nil != reference {
		if err := side.Validate(); nil != err {
			return err
		}
		path, ok := w.pathTo(*reference)
		if !ok {
			return fault.NodeNotFound
		}
		internal := &merkle.Internal{}
		if merkle.Left == side {
			internal.Left = leafHash
			internal.Right = *reference
		} else {
			internal.Left = *reference
			internal.Right = leafHash
		}
		w.root = w.rebuildPath(path, w.stage(internal))
	} else {
		root, err := w.placeByBits(w.root, 0, leaf, leafHash, merkle.HashKey(key))
		if nil != err {
			return err
		}
		w.root = root
	}

	w.index.Insert(key, leafHash)
	return nil
}

// internal: default placement descent
func (w *workingTree) placeByBits(current merkle.Digest, depth int, leaf *merkle.Leaf, leafHash merkle.Digest, keyHash merkle.Digest) (merkle.Digest, error) {
	if current.IsEmpty() {
		return leafHash, nil
	}

	switch node := w.node(current).(type) {
	case *merkle.Leaf:
		return w.splitLeaves(current, node, depth, leafHash, keyHash)

	case *merkle.Internal:
		side := bitAt(keyHash, depth)
		child, err := w.placeByBits(node.Child(side), depth+1, leaf, leafHash, keyHash)
		if nil != err {
			return merkle.EmptyRoot, err
		}
		internal := &merkle.Internal{}
		if merkle.Left == side {
			internal.Left = child
			internal.Right = node.Right
		} else {
			internal.Left = node.Left
			internal.Right = child
		}
		return w.stage(internal), nil
	}
	return merkle.EmptyRoot, fault.WrongNodeEncoding
}

// internal: replace a colliding leaf by the chain down to the first
// divergent bit, sentinel siblings along the way
func (w *workingTree) splitLeaves(existingHash merkle.Digest, existing *merkle.Leaf, depth int, leafHash merkle.Digest, keyHash merkle.Digest) (merkle.Digest, error) {
	existingKeyHash := merkle.HashKey(existing.Key)

	divergence, ok := firstDivergentBit(keyHash, existingKeyHash, depth)
	if !ok {
		// identical key hashes can only reach here through a grafted
		// shape that moved the twin off its bit path
		return merkle.EmptyRoot, fault.DuplicateKey
	}

	bottom := &merkle.Internal{}
	if merkle.Left == bitAt(keyHash, divergence) {
		bottom.Left = leafHash
		bottom.Right = existingHash
	} else {
		bottom.Left = existingHash
		bottom.Right = leafHash
	}
	current := w.stage(bottom)

	for i := divergence - 1; i >= depth; i -= 1 {
		chain := &merkle.Internal{}
		if merkle.Left == bitAt(keyHash, i) {
			chain.Left = current
			chain.Right = merkle.EmptyRoot
		} else {
			chain.Left = merkle.EmptyRoot
			chain.Right = current
		}
		current = w.stage(chain)
	}
	return current, nil
}

// internal: remove a leaf by key, promoting a lone sibling leaf
func (w *workingTree) delete(key []byte) error {
	leafHash, ok := w.index.Get(key)
	if !ok {
		return fault.KeyNotFound
	}

	path, found := w.pathTo(leafHash)
	if !found {
		return fault.KeyNotFound
	}
	w.index.Delete(key)

	if 0 == len(path) {
		w.root = merkle.EmptyRoot
		return nil
	}

	current := merkle.EmptyRoot
	currentIsLeaf := false
	for i := len(path) - 1; i >= 0; i -= 1 {
		step := path[i]
		other := step.node.Child(step.side.Other())

		if current.IsEmpty() {
			if other.IsEmpty() {
				continue
			}
			if w.isLeaf(other) {
				current = other
				currentIsLeaf = true
				continue
			}
			current = w.stageOn(step.side, merkle.EmptyRoot, other)
			continue
		}

		if currentIsLeaf && other.IsEmpty() {
			continue
		}

		current = w.stageOn(step.side, current, other)
		currentIsLeaf = false
	}
	w.root = current
	return nil
}

// internal: build an internal from a child on side and its sibling
func (w *workingTree) stageOn(side merkle.Side, child merkle.Digest, other merkle.Digest) merkle.Digest {
	internal := &merkle.Internal{}
	if merkle.Left == side {
		internal.Left = child
		internal.Right = other
	} else {
		internal.Left = other
		internal.Right = child
	}
	return w.stage(internal)
}

// internal: replace the value of a present key in place, placement is
// unchanged since only the key hash determines it
func (w *workingTree) upsert(key []byte, value []byte) error {
	oldHash, ok := w.index.Get(key)
	if !ok {
		return w.insert(key, value, nil, merkle.Left)
	}

	leaf := &merkle.Leaf{Key: key, Value: value}
	leafHash := w.stage(leaf)
	if leafHash == oldHash {
		return nil
	}

	path, found := w.pathTo(oldHash)
	if !found {
		return fault.KeyNotFound
	}
	w.root = w.rebuildPath(path, leafHash)
	w.index.Insert(key, leafHash)
	return nil
}
