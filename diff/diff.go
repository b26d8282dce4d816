// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package diff - key/value difference between two roots of one store
//
// the result holds a Delete entry per vanished key, an Insert entry
// per new key, and a Delete then Insert pair per changed key; entries
// are ordered by ascending leaf hash, a changed pair sorts on the leaf
// hash of its Delete entry so the pair stays adjacent
package diff

import (
	"bytes"
	"sort"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// Type - kind of one diff entry
type Type byte

// possible entry types
const (
	TypeInsert Type = iota + 1
	TypeDelete
)

// String - convert type for use by the fmt package (for %s)
func (t Type) String() string {
	switch t {
	case TypeInsert:
		return "insert"
	case TypeDelete:
		return "delete"
	default:
		return "invalid"
	}
}

// Entry - one difference
type Entry struct {
	Type  Type   `json:"type"`
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// internal: entry plus its sort position
type sortedEntry struct {
	entry    Entry
	sortHash merkle.Digest
	rank     int // deletes before inserts on equal hash
}

// KVDiff - differences from the tree at hashA to the tree at hashB
//
// both hashes must be roots in the store's history; applying the
// result to hashA yields hashB
func KVDiff(storeID merkle.StoreID, hashA merkle.Digest, hashB merkle.Digest) ([]Entry, error) {
	before, err := tree.KeysValuesByRoot(storeID, hashA)
	if nil != err {
		return nil, err
	}
	after, err := tree.KeysValuesByRoot(storeID, hashB)
	if nil != err {
		return nil, err
	}

	beforeMap := make(map[string][]byte, len(before))
	for _, item := range before {
		beforeMap[string(item.Key)] = item.Value
	}
	afterMap := make(map[string][]byte, len(after))
	for _, item := range after {
		afterMap[string(item.Key)] = item.Value
	}

	entries := []sortedEntry{}

	for _, item := range before {
		newValue, present := afterMap[string(item.Key)]
		if present && bytes.Equal(item.Value, newValue) {
			continue
		}
		deleteHash := merkle.LeafHash(item.Key, item.Value)
		entries = append(entries, sortedEntry{
			entry:    Entry{Type: TypeDelete, Key: item.Key, Value: item.Value},
			sortHash: deleteHash,
			rank:     0,
		})
		if present {
			// changed key, the pair sorts together
			entries = append(entries, sortedEntry{
				entry:    Entry{Type: TypeInsert, Key: item.Key, Value: newValue},
				sortHash: deleteHash,
				rank:     1,
			})
		}
	}

	for _, item := range after {
		if _, present := beforeMap[string(item.Key)]; present {
			continue
		}
		entries = append(entries, sortedEntry{
			entry:    Entry{Type: TypeInsert, Key: item.Key, Value: item.Value},
			sortHash: merkle.LeafHash(item.Key, item.Value),
			rank:     1,
		})
	}

	sort.Slice(entries, func(i int, j int) bool {
		c := bytes.Compare(entries[i].sortHash[:], entries[j].sortHash[:])
		if 0 != c {
			return c < 0
		}
		return entries[i].rank < entries[j].rank
	})

	result := make([]Entry, len(entries))
	for i, e := range entries {
		result[i] = e.entry
	}
	return result, nil
}
