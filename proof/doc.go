// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - inclusion proofs for keys under a merkle root
//
// a proof carries one layer chain per requested key running from the
// leaf up to the root; layers shared between keys are stored once in a
// common pool and referenced by index
//
// verification is a pure function over the proof bytes; whether the
// proven root is still the store's current root is reported separately
package proof
