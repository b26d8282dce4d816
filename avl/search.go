// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"bytes"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Get - fetch the leaf digest for a key
func (tree *Tree) Get(key []byte) (merkle.Digest, bool) {
	p := tree.root
	for nil != p {
		switch c := bytes.Compare(key, p.key); {
		case c < 0:
			p = p.left
		case c > 0:
			p = p.right
		default:
			return p.value, true
		}
	}
	return merkle.Digest{}, false
}

// Has - check if a key exists
func (tree *Tree) Has(key []byte) bool {
	_, ok := tree.Get(key)
	return ok
}
