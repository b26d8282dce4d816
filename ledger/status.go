// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"
)

// Status - commit status of one root record
//
// the byte values are part of the storage encoding; any other value in
// a stored record is corruption and is fatal
type Status byte

// possible statuses
const (
	StatusCommitted    Status = 0 // anchored externally
	StatusPending      Status = 1 // handed to the anchoring collaborator
	StatusPendingBatch Status = 2 // created locally, not yet published
)

// the only transitions the state machine allows
var allowedTransitions = map[Status][]Status{
	StatusPendingBatch: {StatusPending},
	StatusPending:      {StatusCommitted},
	StatusCommitted:    {},
}

// internal: check one status transition
func canTransition(from Status, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// internal: convert a stored status byte, fatal on any illegal value
func statusFromByte(b byte) Status {
	if b > byte(StatusPendingBatch) {
		logger.Panicf("ledger: illegal root status byte: %d", b)
	}
	return Status(b)
}

// IsCommitted - true for an externally anchored root
func (s Status) IsCommitted() bool {
	return StatusCommitted == s
}

// String - convert status for use by the fmt package (for %s)
func (s Status) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusPending:
		return "pending"
	case StatusPendingBatch:
		return "pending batch"
	default:
		return "invalid"
	}
}
