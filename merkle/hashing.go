// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// domain separation tags - protocol constants, never change these
const (
	leafTag     byte = 0x00
	internalTag byte = 0x01
)

// HashKey - protocol hash of a raw key
func HashKey(key []byte) Digest {
	return NewDigest(key)
}

// HashValue - protocol hash of a raw value
func HashValue(value []byte) Digest {
	return NewDigest(value)
}

// LeafHashFromHashes - leaf hash from already-hashed key and value
func LeafHashFromHashes(keyHash Digest, valueHash Digest) Digest {
	buffer := make([]byte, 0, 1+2*DigestLength)
	buffer = append(buffer, leafTag)
	buffer = append(buffer, keyHash[:]...)
	buffer = append(buffer, valueHash[:]...)
	return NewDigest(buffer)
}

// LeafHash - leaf hash from a raw key and value
func LeafHash(key []byte, value []byte) Digest {
	keyHash := HashKey(key)
	valueHash := HashValue(value)
	return LeafHashFromHashes(keyHash, valueHash)
}

// InternalHash - internal node hash from its two child hashes
//
// either child may be the empty sentinel
func InternalHash(left Digest, right Digest) Digest {
	buffer := make([]byte, 0, 1+2*DigestLength)
	buffer = append(buffer, internalTag)
	buffer = append(buffer, left[:]...)
	buffer = append(buffer, right[:]...)
	return NewDigest(buffer)
}

// CombineOn - fold one proof layer: the other hash sits on the given side
func CombineOn(current Digest, other Digest, otherSide Side) Digest {
	if Left == otherSide {
		return InternalHash(other, current)
	}
	return InternalHash(current, other)
}
