// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - batched writes across any pools, committed in one
// database write so multi-pool and multi-store updates are atomic
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

// TransactionData - transaction state
type TransactionData struct {
	sync.Mutex
	inUse bool
	batch *leveldb.Batch
	cache Cache
}

// NewTransaction - create an idle transaction
func NewTransaction() Transaction {
	return &TransactionData{
		inUse: false,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

// Begin - mark the transaction active
func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fmt.Errorf("transaction already in use")
	}
	t.inUse = true
	return nil
}

// InUse - check if the transaction is active
func (t *TransactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Put - stage a key/value pair
func (t *TransactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixed := pool.prefixKey(key)
	t.cache.Set(dbPut, string(prefixed), value)
	t.batch.Put(prefixed, value)
}

// PutN - stage a big endian uint64 value
func (t *TransactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(pool, key, buffer)
}

// Delete - stage a key removal
func (t *TransactionData) Delete(pool *PoolHandle, key []byte) {
	prefixed := pool.prefixKey(key)
	t.cache.Set(dbDelete, string(prefixed), []byte{})
	t.batch.Delete(prefixed)
}

// Get - read a value observing this transaction's staged writes
func (t *TransactionData) Get(pool *PoolHandle, key []byte) []byte {
	prefixed := pool.prefixKey(key)
	if value, op, found := t.cache.Get(string(prefixed)); found {
		if dbDelete == op {
			return nil
		}
		return value
	}
	return pool.Get(key)
}

// GetN - read a big endian uint64 observing staged writes
func (t *TransactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(pool, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check a key observing staged writes
func (t *TransactionData) Has(pool *PoolHandle, key []byte) bool {
	prefixed := pool.prefixKey(key)
	if _, op, found := t.cache.Get(string(prefixed)); found {
		return dbDelete != op
	}
	return pool.Has(key)
}

// Commit - write all staged changes in one database write
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fmt.Errorf("transaction commit with nil database")
	}

	err := poolData.db.Write(t.batch, nil)
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
	return err
}

// Abort - discard all staged changes
func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}
