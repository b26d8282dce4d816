// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data for the data layer
//
// a single LevelDB database split into pools by a one byte prefix:
//
//	N ‖ node hash            → packed node (leaf or internal)
//	C ‖ node hash            → big endian reference count
//	R ‖ store id ‖ BE gen    → packed root record
//	S ‖ store id             → store creation record
//	M ‖ migration id         → RFC3339 time the migration was applied
//	Z ‖ test key             → test data
//
// pool keys are content addresses (node hashes) or store-scoped
// sequences (roots), so the node pool is a flat table keyed by hash
// with the root records as named entry points into it
package storage
