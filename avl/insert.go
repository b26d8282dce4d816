// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"bytes"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Insert - add a key and its leaf digest to the tree
//
// an existing key has its digest replaced in place
// returns true if a new node was added
func (tree *Tree) Insert(key []byte, value merkle.Digest) bool {
	added := false
	tree.root = insert(tree.root, key, value, &added)
	if added {
		tree.count += 1
	}
	return added
}

// internal: recursive insertion with rebalancing on unwind
func insert(p *Node, key []byte, value merkle.Digest, added *bool) *Node {
	if nil == p {
		*added = true
		return &Node{
			key:    key,
			value:  value,
			height: 1,
		}
	}
	switch c := bytes.Compare(key, p.key); {
	case c < 0:
		p.left = insert(p.left, key, value, added)
	case c > 0:
		p.right = insert(p.right, key, value, added)
	default:
		p.value = value
		return p
	}
	return rebalance(p)
}
