// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the per-store sequence of merkle roots
//
// every store owns a gapless, strictly increasing generation sequence
// of root records; generation zero is always the committed empty root
//
// state machine per store:
//
//	(no pending) --create--> PendingBatch --publish--> Pending --confirm--> Committed
//	PendingBatch --clear--> (no pending, reverts to last Committed)
//	Pending --clear/confirm failed--> (no pending, reverts to last Committed)
//
// at most one non-Committed root exists per store at any time; this is
// the sole mutation concurrency control for a store
package ledger
