// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"bytes"
)

// Delete - remove a key from the tree
//
// returns true if the key was present
func (tree *Tree) Delete(key []byte) bool {
	removed := false
	tree.root = remove(tree.root, key, &removed)
	if removed {
		tree.count -= 1
	}
	return removed
}

// internal: recursive removal with rebalancing on unwind
func remove(p *Node, key []byte, removed *bool) *Node {
	if nil == p {
		return nil
	}
	switch c := bytes.Compare(key, p.key); {
	case c < 0:
		p.left = remove(p.left, key, removed)
	case c > 0:
		p.right = remove(p.right, key, removed)
	default:
		*removed = true
		if nil == p.left {
			return p.right
		}
		if nil == p.right {
			return p.left
		}
		// two children: replace with the in-order successor
		successor := p.right
		for nil != successor.left {
			successor = successor.left
		}
		p.key = successor.key
		p.value = successor.value
		dropped := false
		p.right = remove(p.right, successor.key, &dropped)
	}
	return rebalance(p)
}
