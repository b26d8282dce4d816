// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
)

// StoreIDLength - number of bytes in a store identifier
const StoreIDLength = 32

// StoreID - identifies one key-value store and its root history
type StoreID [StoreIDLength]byte

// NewStoreID - create a random store identifier
//
// the identifier is normally assigned by the external anchoring
// collaborator; a random one is used when creating a fresh local store
func NewStoreID() (StoreID, error) {
	var id StoreID
	_, err := rand.Read(id[:])
	return id, err
}

// String - convert a binary store id to hex string for use by the fmt package (for %s)
func (id StoreID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - convert store id to hex text
func (id StoreID) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a store id
func (id *StoreID) UnmarshalText(s []byte) error {
	if StoreIDLength != hex.DecodedLen(len(s)) {
		return fault.NotStoreID
	}
	buffer := make([]byte, StoreIDLength)
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return fault.CannotDecodeStoreID
	}
	if StoreIDLength != byteCount {
		return fault.NotStoreID
	}
	copy(id[:], buffer)
	return nil
}

// StoreIDFromBytes - convert and validate a binary byte slice to a store id
func StoreIDFromBytes(id *StoreID, buffer []byte) error {
	if StoreIDLength != len(buffer) {
		return fault.NotStoreID
	}
	copy(id[:], buffer)
	return nil
}
