// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tree - the merkle tree engine
//
// mutations are applied to an in-memory working tree loaded from the
// store's current committed root; the resulting node records are staged
// into one storage transaction together with the new pending root, so a
// batch is either fully visible or absent
//
// default placement descends the key hash bits from the most
// significant bit; two colliding leaves split at their first divergent
// bit with empty sentinel siblings along the chain; deleting a leaf
// promotes a lone sibling leaf upwards; both rules together make the
// shape of a default-placed tree a pure function of its key set
//
// an explicit reference node and side override default placement and
// the resulting shape is binding
//
// every node record carries a reference count, one per referencing
// parent plus one per root record pointing at it; rollback and clear
// decrement recursively and drop unreferenced nodes
package tree
