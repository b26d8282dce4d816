// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// Root - one generation of a store's history
type Root struct {
	StoreID    merkle.StoreID `json:"storeId"`
	NodeHash   merkle.Digest  `json:"nodeHash"`
	Generation uint64         `json:"generation"`
	Status     Status         `json:"-"`
	Timestamp  uint64         `json:"timestamp"`
}

// record value layout: node hash ‖ status byte ‖ big endian timestamp
const rootValueLength = merkle.DigestLength + 1 + 8

// internal: storage key for one root record
func rootKey(storeID merkle.StoreID, generation uint64) []byte {
	key := make([]byte, merkle.StoreIDLength+8)
	copy(key, storeID[:])
	binary.BigEndian.PutUint64(key[merkle.StoreIDLength:], generation)
	return key
}

// internal: pack the value part of a root record
func (root Root) pack() []byte {
	buffer := make([]byte, rootValueLength)
	copy(buffer, root.NodeHash[:])
	buffer[merkle.DigestLength] = byte(root.Status)
	binary.BigEndian.PutUint64(buffer[merkle.DigestLength+1:], root.Timestamp)
	return buffer
}

// internal: unpack a stored root record, fatal on corruption
func unpackRoot(key []byte, value []byte) Root {
	if merkle.StoreIDLength+8 != len(key) {
		logger.Panicf("ledger: truncated root key: %x", key)
	}
	if rootValueLength != len(value) {
		logger.Panicf("ledger: truncated root record: %x", value)
	}
	root := Root{}
	copy(root.StoreID[:], key[:merkle.StoreIDLength])
	root.Generation = binary.BigEndian.Uint64(key[merkle.StoreIDLength:])
	copy(root.NodeHash[:], value[:merkle.DigestLength])
	root.Status = statusFromByte(value[merkle.DigestLength])
	root.Timestamp = binary.BigEndian.Uint64(value[merkle.DigestLength+1:])
	return root
}
