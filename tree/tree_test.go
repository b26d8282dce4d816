// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

func TestRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	key := []byte("round trip key")
	value := []byte("round trip value")

	applyCommitted(t, storeID, []tree.Change{insertChange(key, value)})

	restored, err := tree.GetValue(storeID, key, nil)
	assert.Nil(t, err, "get value error")
	assert.Equal(t, value, restored, "value changed in round trip")
}

func TestExampleScenario(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	key := []byte{0x61}
	valueOne := []byte{0x00, 0x01}
	valueTwo := []byte{0x00, 0x02}

	// single key: the leaf is the root
	rootOne := applyCommitted(t, storeID, []tree.Change{insertChange(key, valueOne)})
	assert.Equal(t, merkle.LeafHash(key, valueOne), rootOne.NodeHash, "single leaf root")

	rootTwo := applyCommitted(t, storeID, []tree.Change{upsertChange(key, valueTwo)})
	assert.Equal(t, merkle.LeafHash(key, valueTwo), rootTwo.NodeHash, "replaced leaf root")

	rootThree := applyCommitted(t, storeID, []tree.Change{deleteChange(key)})
	assert.Equal(t, merkle.EmptyRoot, rootThree.NodeHash, "delete did not empty the tree")

	history, err := ledger.History(storeID)
	assert.Nil(t, err, "history error")
	assert.Equal(t, 4, len(history), "history length")
	assert.Equal(t, merkle.EmptyRoot, history[0].NodeHash, "history[0]")
	assert.Equal(t, rootOne.NodeHash, history[1].NodeHash, "history[1]")
	assert.Equal(t, rootTwo.NodeHash, history[2].NodeHash, "history[2]")
	assert.Equal(t, merkle.EmptyRoot, history[3].NodeHash, "history[3]")
}

func TestBatchCanonicalization(t *testing.T) {
	setup(t)
	defer teardown(t)

	changes := []tree.Change{
		insertChange([]byte("alpha"), []byte("1")),
		insertChange([]byte("beta"), []byte("2")),
		insertChange([]byte("gamma"), []byte("3")),
		insertChange([]byte("delta"), []byte("4")),
		insertChange([]byte("epsilon"), []byte("5")),
	}
	reversed := make([]tree.Change, len(changes))
	for i, c := range changes {
		reversed[len(changes)-1-i] = c
	}

	storeA := newStore(t)
	storeB := newStore(t)

	rootA := applyCommitted(t, storeA, changes)
	rootB := applyCommitted(t, storeB, reversed)

	assert.Equal(t, rootA.NodeHash, rootB.NodeHash, "insertion order changed the root")
}

func TestBatchCanonicalizationRandomOrder(t *testing.T) {
	setup(t)
	defer teardown(t)

	changes := make([]tree.Change, 20)
	for i := range changes {
		changes[i] = insertChange(
			[]byte(fmt.Sprintf("key-%02d", i)),
			[]byte(fmt.Sprintf("value-%02d", i)),
		)
	}

	reference := newStore(t)
	expected := applyCommitted(t, reference, changes)

	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 5; round += 1 {
		shuffled := make([]tree.Change, len(changes))
		copy(shuffled, changes)
		rnd.Shuffle(len(shuffled), func(i int, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		storeID := newStore(t)
		root := applyCommitted(t, storeID, shuffled)
		assert.Equal(t, expected.NodeHash, root.NodeHash, "shuffle %d changed the root", round)
	}
}

func TestBatchReinsertIsCanonical(t *testing.T) {
	setup(t)
	defer teardown(t)

	// insert(k,v1); delete(k); insert(k,v2) within one batch nets to
	// insert(k,v2)
	storeA := newStore(t)
	rootA := applyCommitted(t, storeA, []tree.Change{
		insertChange([]byte("base"), []byte("0")),
		insertChange([]byte("churn"), []byte("first")),
		deleteChange([]byte("churn")),
		insertChange([]byte("churn"), []byte("final")),
	})

	storeB := newStore(t)
	rootB := applyCommitted(t, storeB, []tree.Change{
		insertChange([]byte("base"), []byte("0")),
		insertChange([]byte("churn"), []byte("final")),
	})

	assert.Equal(t, rootB.NodeHash, rootA.NodeHash, "reinsert left a non-canonical shape")

	value, err := tree.GetValue(storeA, []byte("churn"), nil)
	assert.Nil(t, err, "get value error")
	assert.Equal(t, []byte("final"), value, "reinserted value")
}

func TestDeletePreservesCanonicalShape(t *testing.T) {
	setup(t)
	defer teardown(t)

	// inserting N keys then deleting one must equal inserting N-1
	storeA := newStore(t)
	applyCommitted(t, storeA, []tree.Change{
		insertChange([]byte("one"), []byte("1")),
		insertChange([]byte("two"), []byte("2")),
		insertChange([]byte("three"), []byte("3")),
	})
	rootAfterDelete := applyCommitted(t, storeA, []tree.Change{deleteChange([]byte("two"))})

	storeB := newStore(t)
	direct := applyCommitted(t, storeB, []tree.Change{
		insertChange([]byte("one"), []byte("1")),
		insertChange([]byte("three"), []byte("3")),
	})

	assert.Equal(t, direct.NodeHash, rootAfterDelete.NodeHash, "delete left a non-canonical shape")
}

func TestDuplicateKey(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)
	applyCommitted(t, storeID, []tree.Change{insertChange([]byte("once"), []byte("1"))})

	_, err := tree.Apply(storeID, []tree.Change{insertChange([]byte("once"), []byte("2"))}, false)
	assert.Equal(t, fault.DuplicateKey, err, "duplicate insert accepted")

	// also within one batch
	_, err = tree.Apply(storeID, []tree.Change{
		insertChange([]byte("twice"), []byte("1")),
		insertChange([]byte("twice"), []byte("2")),
	}, false)
	assert.Equal(t, fault.DuplicateKey, err, "duplicate insert in batch accepted")
}

func TestDeleteMissingKey(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	_, err := tree.Apply(storeID, []tree.Change{deleteChange([]byte("ghost"))}, false)
	assert.Equal(t, fault.KeyNotFound, err, "delete of missing key accepted")
}

func TestEmptyChangelist(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	_, err := tree.Apply(storeID, []tree.Change{}, false)
	assert.Equal(t, fault.EmptyChangelist, err, "empty changelist accepted")
}

func TestNoOpBatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)
	applyCommitted(t, storeID, []tree.Change{insertChange([]byte("steady"), []byte("1"))})

	// insert and delete cancel out
	_, err := tree.Apply(storeID, []tree.Change{
		insertChange([]byte("passing"), []byte("x")),
		deleteChange([]byte("passing")),
	}, false)
	assert.Equal(t, fault.NoOpBatch, err, "net no-op accepted")

	// replacing a value with itself is also a no-op
	_, err = tree.Apply(storeID, []tree.Change{upsertChange([]byte("steady"), []byte("1"))}, false)
	assert.Equal(t, fault.NoOpBatch, err, "identity upsert accepted")
}

func TestPendingRootBlocksNextBatch(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	_, err := tree.Apply(storeID, []tree.Change{insertChange([]byte("a"), []byte("1"))}, false)
	assert.Nil(t, err, "first apply error")

	_, err = tree.Apply(storeID, []tree.Change{insertChange([]byte("b"), []byte("2"))}, false)
	assert.Equal(t, fault.PendingRootConflict, err, "second batch accepted while pending")
}

func TestSubmitImmediately(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	root, err := tree.Apply(storeID, []tree.Change{insertChange([]byte("a"), []byte("1"))}, true)
	assert.Nil(t, err, "apply error")
	assert.Equal(t, ledger.StatusPending, root.Status, "submitted root not pending")

	_, err = ledger.Publish(storeID)
	assert.Equal(t, fault.AlreadySubmitted, err, "double publish accepted")
}

func TestExplicitPlacementIsBinding(t *testing.T) {
	setup(t)
	defer teardown(t)

	keyOne := []byte("first")
	keyTwo := []byte("second")

	// explicit placement beside the first leaf fixes the shape
	// regardless of where default placement would put the key
	storeID := newStore(t)
	reference := merkle.LeafHash(keyOne, []byte("1"))
	graftRoot := applyCommitted(t, storeID, []tree.Change{
		insertChange(keyOne, []byte("1")),
		{
			Action:    tree.ActionInsert,
			Key:       keyTwo,
			Value:     []byte("2"),
			Reference: &reference,
			Side:      merkle.Right,
		},
	})

	expected := merkle.InternalHash(reference, merkle.LeafHash(keyTwo, []byte("2")))
	assert.Equal(t, expected, graftRoot.NodeHash, "graft shape")

	// both keys stay readable under the grafted shape
	value, err := tree.GetValue(storeID, keyTwo, nil)
	assert.Nil(t, err, "get value error")
	assert.Equal(t, []byte("2"), value, "grafted value")

	// and a later delete under the grafted shape promotes the
	// remaining leaf back to the root
	afterDelete := applyCommitted(t, storeID, []tree.Change{deleteChange(keyTwo)})
	assert.Equal(t, reference, afterDelete.NodeHash, "lone leaf not promoted")
}

func TestExplicitPlacementUnknownReference(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)
	reference := merkle.NewDigest([]byte("nowhere"))

	_, err := tree.Apply(storeID, []tree.Change{{
		Action:    tree.ActionInsert,
		Key:       []byte("k"),
		Value:     []byte("v"),
		Reference: &reference,
		Side:      merkle.Left,
	}}, false)
	assert.Equal(t, fault.NodeNotFound, err, "unknown reference accepted")
}

func TestHistoricalReads(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	applyCommitted(t, storeID, []tree.Change{insertChange([]byte("k"), []byte("old"))})
	applyCommitted(t, storeID, []tree.Change{upsertChange([]byte("k"), []byte("new"))})

	generation := uint64(1)
	value, err := tree.GetValue(storeID, []byte("k"), &generation)
	assert.Nil(t, err, "historical get error")
	assert.Equal(t, []byte("old"), value, "historical value")

	value, err = tree.GetValue(storeID, []byte("k"), nil)
	assert.Nil(t, err, "current get error")
	assert.Equal(t, []byte("new"), value, "current value")

	generation = 0
	keys, err := tree.GetKeys(storeID, &generation)
	assert.Nil(t, err, "keys at empty root error")
	assert.Equal(t, 0, len(keys), "empty root has keys")
}

func TestGetKeysValues(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	changes := []tree.Change{}
	for i := 0; i < 8; i += 1 {
		changes = append(changes, insertChange(
			[]byte(fmt.Sprintf("key-%d", i)),
			[]byte(fmt.Sprintf("value-%d", i)),
		))
	}
	applyCommitted(t, storeID, changes)

	items, err := tree.GetKeysValues(storeID, nil)
	assert.Nil(t, err, "keys values error")
	assert.Equal(t, 8, len(items), "item count")

	seen := make(map[string]string)
	for _, item := range items {
		seen[string(item.Key)] = string(item.Value)
	}
	for i := 0; i < 8; i += 1 {
		assert.Equal(t, fmt.Sprintf("value-%d", i), seen[fmt.Sprintf("key-%d", i)], "missing item")
	}
}

func TestAncestors(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)
	applyCommitted(t, storeID, []tree.Change{
		insertChange([]byte("one"), []byte("1")),
		insertChange([]byte("two"), []byte("2")),
		insertChange([]byte("three"), []byte("3")),
	})

	leaf := merkle.LeafHash([]byte("one"), []byte("1"))
	ancestors, err := tree.Ancestors(storeID, leaf, nil)
	assert.Nil(t, err, "ancestors error")
	assert.True(t, len(ancestors) > 0, "no ancestors for a leaf among three")

	// the last ancestor is the root
	current, err := ledger.CurrentRoot(storeID)
	assert.Nil(t, err, "current root error")
	top := ancestors[len(ancestors)-1]
	assert.Equal(t, current.NodeHash, merkle.InternalHash(top.Left, top.Right), "top ancestor is not the root")

	_, err = tree.Ancestors(storeID, merkle.NewDigest([]byte("absent")), nil)
	assert.Equal(t, fault.NodeNotFound, err, "unknown node accepted")
}

func TestClearPending(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)
	applyCommitted(t, storeID, []tree.Change{insertChange([]byte("keep"), []byte("1"))})

	staged, err := tree.Apply(storeID, []tree.Change{insertChange([]byte("drop"), []byte("2"))}, false)
	assert.Nil(t, err, "apply error")

	err = tree.ClearPending(storeID)
	assert.Nil(t, err, "clear pending error")

	latest, err := ledger.LatestRoot(storeID)
	assert.Nil(t, err, "latest root error")
	assert.Equal(t, uint64(1), latest.Generation, "pending root survived")

	// the discarded root's nodes are gone, the kept root's remain
	assert.False(t, storage.Pool.Nodes.Has(staged.NodeHash[:]), "discarded nodes survived")
	assert.True(t, storage.Pool.Nodes.Has(latest.NodeHash[:]), "kept nodes dropped")

	err = tree.ClearPending(storeID)
	assert.Equal(t, fault.NoPendingRoot, err, "clear with nothing pending")
}

func TestRollbackReleasesNodes(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	rootOne := applyCommitted(t, storeID, []tree.Change{
		insertChange([]byte("base"), []byte("1")),
	})
	rootTwo := applyCommitted(t, storeID, []tree.Change{
		insertChange([]byte("extra"), []byte("2")),
	})
	assert.NotEqual(t, rootOne.NodeHash, rootTwo.NodeHash, "generations share a root")

	err := tree.RollbackToGeneration(storeID, 1)
	assert.Nil(t, err, "rollback error")

	_, err = ledger.RootAt(storeID, 2)
	assert.Equal(t, fault.HistoryNotFound, err, "rolled back root still present")

	// generation two's unique nodes are deleted, shared ones survive
	assert.False(t, storage.Pool.Nodes.Has(rootTwo.NodeHash[:]), "dropped generation nodes survived")
	assert.True(t, storage.Pool.Nodes.Has(rootOne.NodeHash[:]), "kept generation nodes dropped")

	value, err := tree.GetValue(storeID, []byte("base"), nil)
	assert.Nil(t, err, "get value after rollback error")
	assert.Equal(t, []byte("1"), value, "value after rollback")
}

func TestApplyMulti(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeA := newStore(t)
	storeB := newStore(t)

	roots, err := tree.ApplyMulti([]tree.Batch{
		{StoreID: storeA, Changes: []tree.Change{insertChange([]byte("a"), []byte("1"))}},
		{StoreID: storeB, Changes: []tree.Change{insertChange([]byte("b"), []byte("2"))}},
	}, false)
	assert.Nil(t, err, "apply multi error")
	assert.Equal(t, 2, len(roots), "root count")
	assert.Equal(t, uint64(1), roots[0].Generation, "store A generation")
	assert.Equal(t, uint64(1), roots[1].Generation, "store B generation")

	// both stores now hold a pending batch root
	for _, storeID := range []merkle.StoreID{storeA, storeB} {
		latest, err := ledger.LatestRoot(storeID)
		assert.Nil(t, err, "latest root error")
		assert.Equal(t, ledger.StatusPendingBatch, latest.Status, "missing pending root")
	}
}

func TestApplyMultiRepeatedStore(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeID := newStore(t)

	_, err := tree.ApplyMulti([]tree.Batch{
		{StoreID: storeID, Changes: []tree.Change{insertChange([]byte("a"), []byte("1"))}},
		{StoreID: storeID, Changes: []tree.Change{insertChange([]byte("b"), []byte("2"))}},
	}, false)
	assert.Equal(t, fault.StoreIDRepeated, err, "repeated store id accepted")
}

func TestApplyMultiAllOrNothing(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeA := newStore(t)
	storeB := newStore(t)

	// the second batch fails, the first must not stick
	_, err := tree.ApplyMulti([]tree.Batch{
		{StoreID: storeA, Changes: []tree.Change{insertChange([]byte("a"), []byte("1"))}},
		{StoreID: storeB, Changes: []tree.Change{deleteChange([]byte("ghost"))}},
	}, false)
	assert.Equal(t, fault.KeyNotFound, err, "failing batch accepted")

	latest, err := ledger.LatestRoot(storeA)
	assert.Nil(t, err, "latest root error")
	assert.Equal(t, uint64(0), latest.Generation, "partial multi-store batch leaked")
}

func TestSubmitAllPendingRoots(t *testing.T) {
	setup(t)
	defer teardown(t)

	storeA := newStore(t)
	storeB := newStore(t)
	storeC := newStore(t) // no pending root

	_, err := tree.Apply(storeA, []tree.Change{insertChange([]byte("a"), []byte("1"))}, false)
	assert.Nil(t, err, "apply error")
	_, err = tree.Apply(storeB, []tree.Change{insertChange([]byte("b"), []byte("2"))}, false)
	assert.Nil(t, err, "apply error")

	payloads, err := tree.SubmitAllPendingRoots()
	assert.Nil(t, err, "submit all error")
	assert.Equal(t, 2, len(payloads), "payload count")

	latest, err := ledger.LatestRoot(storeC)
	assert.Nil(t, err, "latest root error")
	assert.Equal(t, ledger.StatusCommitted, latest.Status, "idle store touched")
}
