// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/binary"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
)

// Node - polymorphic over leaf and internal nodes
type Node interface {
	Hash() Digest
	Pack() []byte
	IsLeaf() bool
}

// Leaf - a key/value pair at the bottom of the tree
type Leaf struct {
	Key   []byte
	Value []byte
}

// Internal - a node referencing two children by hash
//
// an absent child is recorded as the empty sentinel
type Internal struct {
	Left  Digest
	Right Digest
}

// Hash - the protocol leaf hash
func (leaf *Leaf) Hash() Digest {
	return LeafHash(leaf.Key, leaf.Value)
}

// IsLeaf - satisfy the Node interface
func (leaf *Leaf) IsLeaf() bool { return true }

// Pack - serialize a leaf for node storage
//
// layout: tag ‖ uint32 key length ‖ key ‖ value
func (leaf *Leaf) Pack() []byte {
	buffer := make([]byte, 5, 5+len(leaf.Key)+len(leaf.Value))
	buffer[0] = leafTag
	binary.BigEndian.PutUint32(buffer[1:5], uint32(len(leaf.Key)))
	buffer = append(buffer, leaf.Key...)
	buffer = append(buffer, leaf.Value...)
	return buffer
}

// Hash - the protocol internal hash
func (internal *Internal) Hash() Digest {
	return InternalHash(internal.Left, internal.Right)
}

// IsLeaf - satisfy the Node interface
func (internal *Internal) IsLeaf() bool { return false }

// Pack - serialize an internal node for node storage
//
// layout: tag ‖ left hash ‖ right hash
func (internal *Internal) Pack() []byte {
	buffer := make([]byte, 0, 1+2*DigestLength)
	buffer = append(buffer, internalTag)
	buffer = append(buffer, internal.Left[:]...)
	buffer = append(buffer, internal.Right[:]...)
	return buffer
}

// Child - select a child hash by side
func (internal *Internal) Child(side Side) Digest {
	if Left == side {
		return internal.Left
	}
	return internal.Right
}

// UnpackNode - decode a stored node record
//
// an unknown tag byte indicates corrupted node storage; the caller is
// expected to treat that error as fatal
func UnpackNode(record []byte) (Node, error) {
	if 0 == len(record) {
		return nil, fault.WrongNodeEncoding
	}
	switch record[0] {
	case leafTag:
		if len(record) < 5 {
			return nil, fault.WrongNodeEncoding
		}
		keyLength := binary.BigEndian.Uint32(record[1:5])
		if uint32(len(record)-5) < keyLength {
			return nil, fault.WrongNodeEncoding
		}
		key := make([]byte, keyLength)
		copy(key, record[5:5+keyLength])
		value := make([]byte, uint32(len(record))-5-keyLength)
		copy(value, record[5+keyLength:])
		return &Leaf{Key: key, Value: value}, nil

	case internalTag:
		if 1+2*DigestLength != len(record) {
			return nil, fault.WrongNodeEncoding
		}
		internal := &Internal{}
		copy(internal.Left[:], record[1:1+DigestLength])
		copy(internal.Right[:], record[1+DigestLength:])
		return internal, nil

	default:
		return nil, fault.WrongNodeEncoding
	}
}
