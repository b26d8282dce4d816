// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - height balanced binary tree mapping byte-string keys
// to node digests
//
// used as the ordered key index of a store's working tree: keys are
// ordered by bytes.Compare and each key holds the digest of its leaf
// in the merkle tree
package avl
