// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - digests and node hashing for the data layer tree
//
// All hashes are SHA3-256 and the exact byte layout below is a protocol
// constant; it must match other implementations byte-for-byte:
//
//	key hash      = SHA3-256(key)
//	value hash    = SHA3-256(value)
//	leaf hash     = SHA3-256(0x00 ‖ key hash ‖ value hash)
//	internal hash = SHA3-256(0x01 ‖ left hash ‖ right hash)
//
// the all-zero digest is the well-known sentinel for an empty tree and
// never collides with a real node hash
package merkle
