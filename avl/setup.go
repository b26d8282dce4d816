// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Tree - type to hold the root node of a tree
type Tree struct {
	root  *Node
	count int
}

// Node - one key in the index
type Node struct {
	key    []byte
	value  merkle.Digest
	left   *Node
	right  *Node
	height int
}

// New - create an initially empty tree
func New() *Tree {
	return &Tree{
		root:  nil,
		count: 0,
	}
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.count
}

// Key - read the key from a node
func (p *Node) Key() []byte {
	return p.key
}

// Value - read the leaf digest from a node
func (p *Node) Value() merkle.Digest {
	return p.value
}

// internal: height of a possibly nil subtree
func height(p *Node) int {
	if nil == p {
		return 0
	}
	return p.height
}

// internal: recompute height from children
func (p *Node) fix() *Node {
	hl := height(p.left)
	hr := height(p.right)
	if hl > hr {
		p.height = hl + 1
	} else {
		p.height = hr + 1
	}
	return p
}

// internal: balance factor
func balance(p *Node) int {
	if nil == p {
		return 0
	}
	return height(p.left) - height(p.right)
}

// internal: single right rotation
func rotateRight(p *Node) *Node {
	q := p.left
	p.left = q.right
	q.right = p.fix()
	return q.fix()
}

// internal: single left rotation
func rotateLeft(p *Node) *Node {
	q := p.right
	p.right = q.left
	q.left = p.fix()
	return q.fix()
}

// internal: restore the AVL invariant at one node
func rebalance(p *Node) *Node {
	p.fix()
	switch balance(p) {
	case 2:
		if balance(p.left) < 0 {
			p.left = rotateLeft(p.left)
		}
		return rotateRight(p)
	case -2:
		if balance(p.right) > 0 {
			p.right = rotateRight(p.right)
		}
		return rotateLeft(p)
	default:
		return p
	}
}
