// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

func TestPoolPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	key := []byte("key-one")
	assert.False(t, p.Has(key), "fresh pool has key")

	p.Put(key, []byte("data-one"))
	assert.True(t, p.Has(key), "put lost")
	assert.Equal(t, []byte("data-one"), p.Get(key), "wrong data")

	p.Put(key, []byte("data-one(NEW)"))
	assert.Equal(t, []byte("data-one(NEW)"), p.Get(key), "replacement lost")

	p.Delete(key)
	assert.False(t, p.Has(key), "delete lost")
	assert.Nil(t, p.Get(key), "deleted data returned")
}

func TestPoolCounterRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	key := []byte("counter")
	_, found := p.GetN(key)
	assert.False(t, found, "missing counter found")

	p.PutN(key, 42)
	n, found := p.GetN(key)
	assert.True(t, found, "counter missing")
	assert.Equal(t, uint64(42), n, "counter value")
}

func TestRefcountPool(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Refcounts

	hash := []byte("some node hash")
	_, found := p.GetN(hash)
	assert.False(t, found, "missing refcount found")

	p.PutN(hash, 2)
	n, found := p.GetN(hash)
	assert.True(t, found, "refcount missing")
	assert.Equal(t, uint64(2), n, "refcount value")

	// counts and node records share a key space but not a prefix
	assert.False(t, storage.Pool.Nodes.Has(hash), "refcount leaked into nodes")
}

func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")
	storage.Pool.TestData.Put(key, []byte("test data"))

	assert.False(t, storage.Pool.Nodes.Has(key), "prefix leak into nodes")
	assert.False(t, storage.Pool.Roots.Has(key), "prefix leak into roots")
}

func TestLastElement(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	_, found := p.LastElement([]byte("run-"))
	assert.False(t, found, "last element of empty range")

	p.Put([]byte("run-01"), []byte("a"))
	p.Put([]byte("run-07"), []byte("b"))
	p.Put([]byte("run-03"), []byte("c"))
	p.Put([]byte("sun-99"), []byte("outside"))

	element, found := p.LastElement([]byte("run-"))
	assert.True(t, found, "last element missing")
	assert.Equal(t, []byte("run-07"), element.Key, "wrong last key")
	assert.Equal(t, []byte("b"), element.Value, "wrong last value")
}

func TestCursorFetch(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	expected := []string{"item-0", "item-1", "item-2", "item-3", "item-4"}
	for _, k := range expected {
		p.Put([]byte(k), []byte("data-"+k))
	}

	cursor := p.NewFetchCursor([]byte("item-"))
	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 2, len(first), "first batch size")
	assert.Equal(t, []byte("item-0"), first[0].Key, "first key")

	rest, err := cursor.Fetch(10)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, 3, len(rest), "second batch size")
	assert.Equal(t, []byte("item-2"), rest[0].Key, "cursor did not advance")
}

func TestCursorMap(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	for _, k := range []string{"map-a", "map-b", "map-c"} {
		p.Put([]byte(k), []byte(k))
	}

	keys := []string{}
	err := p.NewFetchCursor([]byte("map-")).Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, []string{"map-a", "map-b", "map-c"}, keys, "map order")
}

func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx := storage.NewTransaction()
	err := trx.Begin()
	assert.Nil(t, err, "begin error")

	trx.Put(p, []byte("trx-key"), []byte("trx-data"))

	// staged write visible inside, invisible outside
	assert.Equal(t, []byte("trx-data"), trx.Get(p, []byte("trx-key")), "staged read")
	assert.False(t, p.Has([]byte("trx-key")), "uncommitted write visible")

	err = trx.Commit()
	assert.Nil(t, err, "commit error")
	assert.Equal(t, []byte("trx-data"), p.Get([]byte("trx-key")), "committed write lost")
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx := storage.NewTransaction()
	err := trx.Begin()
	assert.Nil(t, err, "begin error")

	trx.Put(p, []byte("away"), []byte("data"))
	trx.Abort()

	assert.False(t, p.Has([]byte("away")), "aborted write visible")
}

func TestTransactionStagedDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("doomed"), []byte("data"))

	trx := storage.NewTransaction()
	err := trx.Begin()
	assert.Nil(t, err, "begin error")

	trx.Delete(p, []byte("doomed"))
	assert.False(t, trx.Has(p, []byte("doomed")), "staged delete invisible inside")
	assert.True(t, p.Has([]byte("doomed")), "staged delete visible outside")

	err = trx.Commit()
	assert.Nil(t, err, "commit error")
	assert.False(t, p.Has([]byte("doomed")), "committed delete lost")
}

func TestPersistenceAcrossRestart(t *testing.T) {
	setup(t)
	defer teardown(t)

	storage.Pool.TestData.Put([]byte("durable"), []byte("data"))

	storage.Finalise()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Nil(t, err, "reinitialise error")

	assert.Equal(t, []byte("data"), storage.Pool.TestData.Get([]byte("durable")), "data lost on restart")
}

func TestMigrationsRecordedOnce(t *testing.T) {
	setup(t)
	defer teardown(t)

	recorded := 0
	err := storage.Pool.Migrations.NewFetchCursor(nil).Map(func(key []byte, value []byte) error {
		recorded += 1
		return nil
	})
	assert.Nil(t, err, "cursor error")
	assert.True(t, recorded > 0, "no migrations recorded")

	// a restart must not change the applied set
	storage.Finalise()
	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Nil(t, err, "reinitialise error")

	again := 0
	err = storage.Pool.Migrations.NewFetchCursor(nil).Map(func(key []byte, value []byte) error {
		again += 1
		return nil
	})
	assert.Nil(t, err, "cursor error")
	assert.Equal(t, recorded, again, "migrations reapplied")
}
