// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Walk - run a function over all nodes in ascending key order
//
// the walk stops early if the function returns false
func (tree *Tree) Walk(f func(key []byte, value merkle.Digest) bool) {
	tree.root.walk(f)
}

// internal: in-order traversal
func (p *Node) walk(f func(key []byte, value merkle.Digest) bool) bool {
	if nil == p {
		return true
	}
	if !p.left.walk(f) {
		return false
	}
	if !f(p.key, p.value) {
		return false
	}
	return p.right.walk(f)
}

// Keys - all keys in ascending order
func (tree *Tree) Keys() [][]byte {
	keys := make([][]byte, 0, tree.count)
	tree.Walk(func(key []byte, _ merkle.Digest) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
