// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/Chia-Network/chia-blockchain-sub006/fault"
)

// Side - left or right position of a node below its parent
type Side byte

// possible sides - the byte values are part of the proof encoding
const (
	Left  Side = 0
	Right Side = 1
)

// Validate - check a side holds one of the two defined values
func (s Side) Validate() error {
	if Left != s && Right != s {
		return fault.InvalidProofSide
	}
	return nil
}

// Other - the opposite side
func (s Side) Other() Side {
	if Left == s {
		return Right
	}
	return Left
}

// String - convert side for use by the fmt package (for %s)
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}
