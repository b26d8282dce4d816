// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - export committed roots as files for mirrors
//
// every committed generation gets a delta file holding the node
// records new to that generation; a full file holding every reachable
// node record is kept only for the most recent generations up to a
// configured cap, the oldest full file beyond the cap is removed
//
// a directory watcher re-emits the newest full file of a store if it
// disappears externally, files are regenerated from the node pool
package snapshot
