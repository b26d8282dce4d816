// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - the record already exists
	ExistsError GenericError
	// InvalidError - the request cannot be understood or acted upon
	InvalidError GenericError
	// NotFoundError - the record does not exist
	NotFoundError GenericError
	// ProcessError - the operation conflicts with the current state
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised         = ProcessError("already initialised")
	AlreadySubmitted           = ProcessError("already submitted")
	CannotDecodeStoreID        = InvalidError("cannot decode store id")
	DuplicateKey               = ExistsError("key already present")
	EmptyChangelist            = InvalidError("changelist is empty")
	HistoryNotFound            = NotFoundError("root is not part of store history")
	InvalidCount               = InvalidError("invalid count")
	InvalidCursor              = InvalidError("invalid cursor")
	InvalidGeneration          = InvalidError("invalid generation")
	InvalidPage                = InvalidError("invalid page number")
	InvalidProofKeyValue       = InvalidError("node hash does not match key and value")
	InvalidProofLayer          = InvalidError("invalid layer hash")
	InvalidProofSide           = InvalidError("mismatched side flag")
	KeyNotFound                = NotFoundError("key not found")
	LatestRootAlreadyConfirmed = ProcessError("latest root already confirmed")
	MigrationUnknown           = InvalidError("migration identifier is unknown")
	NodeNotFound               = NotFoundError("node not found")
	NoOpBatch                  = InvalidError("no-op changelist")
	NoPendingRoot              = ProcessError("no pending root")
	NotDigest                  = InvalidError("invalid digest length")
	NotInitialised             = ProcessError("not initialised")
	NotLeafNode                = InvalidError("node is not a leaf")
	NotStoreID                 = InvalidError("invalid store id length")
	PageTooSmall               = InvalidError("single item exceeds page size")
	PendingRootConflict        = ProcessError("pending root already exists")
	StoreAlreadyExists         = ExistsError("store already exists")
	StoreIDRepeated            = InvalidError("store id must appear once")
	StoreNotAvailable          = NotFoundError("store not available")
	WrongNodeEncoding          = InvalidError("unknown node encoding tag")
	WrongRootStatus            = InvalidError("unknown root status")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an error was of the exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error was of the invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if an error was of the not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error was of the process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
