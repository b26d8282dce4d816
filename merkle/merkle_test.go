// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

func TestDigestTextRoundTrip(t *testing.T) {
	digest := merkle.NewDigest([]byte("hello world"))

	text, err := digest.MarshalText()
	assert.Nil(t, err, "marshal error")

	var restored merkle.Digest
	err = restored.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, digest, restored, "round trip changed digest")
}

func TestDigestUnmarshalRejectsWrongLength(t *testing.T) {
	var digest merkle.Digest
	err := digest.UnmarshalText([]byte("0123abc"))
	assert.NotNil(t, err, "short hex accepted")
}

func TestEmptyRootIsEmpty(t *testing.T) {
	assert.True(t, merkle.EmptyRoot.IsEmpty(), "sentinel not empty")
	assert.False(t, merkle.NewDigest([]byte{1}).IsEmpty(), "real digest empty")
}

func TestLeafHashMatchesTaggedDigest(t *testing.T) {
	key := []byte{0x61}
	value := []byte{0x00, 0x01}

	keyHash := merkle.HashKey(key)
	valueHash := merkle.HashValue(value)

	buffer := []byte{0x00}
	buffer = append(buffer, keyHash[:]...)
	buffer = append(buffer, valueHash[:]...)

	assert.Equal(t, merkle.NewDigest(buffer), merkle.LeafHash(key, value), "leaf hash mismatch")
	assert.Equal(t, merkle.LeafHash(key, value), merkle.LeafHashFromHashes(keyHash, valueHash), "hash forms disagree")
}

func TestInternalHashOrdersChildren(t *testing.T) {
	left := merkle.NewDigest([]byte("left"))
	right := merkle.NewDigest([]byte("right"))

	assert.NotEqual(t, merkle.InternalHash(left, right), merkle.InternalHash(right, left), "internal hash is order independent")

	assert.Equal(t, merkle.InternalHash(left, right), merkle.CombineOn(right, left, merkle.Left), "combine on left")
	assert.Equal(t, merkle.InternalHash(left, right), merkle.CombineOn(left, right, merkle.Right), "combine on right")
}

func TestLeafPackUnpack(t *testing.T) {
	leaf := &merkle.Leaf{
		Key:   []byte("a key"),
		Value: []byte("a value"),
	}

	node, err := merkle.UnpackNode(leaf.Pack())
	assert.Nil(t, err, "unpack error")

	restored, ok := node.(*merkle.Leaf)
	assert.True(t, ok, "not a leaf")
	assert.Equal(t, leaf.Key, restored.Key, "key mismatch")
	assert.Equal(t, leaf.Value, restored.Value, "value mismatch")
	assert.Equal(t, leaf.Hash(), restored.Hash(), "hash mismatch")
	assert.True(t, restored.IsLeaf(), "IsLeaf")
}

func TestInternalPackUnpack(t *testing.T) {
	internal := &merkle.Internal{
		Left:  merkle.NewDigest([]byte("L")),
		Right: merkle.EmptyRoot,
	}

	node, err := merkle.UnpackNode(internal.Pack())
	assert.Nil(t, err, "unpack error")

	restored, ok := node.(*merkle.Internal)
	assert.True(t, ok, "not an internal")
	assert.Equal(t, internal.Left, restored.Left, "left mismatch")
	assert.Equal(t, internal.Right, restored.Right, "right mismatch")
	assert.False(t, restored.IsLeaf(), "IsLeaf")
}

func TestUnpackRejectsUnknownTag(t *testing.T) {
	packed := (&merkle.Leaf{Key: []byte{1}, Value: []byte{2}}).Pack()
	packed[0] = 0x7f

	_, err := merkle.UnpackNode(packed)
	assert.Equal(t, fault.WrongNodeEncoding, err, "unknown tag accepted")
}

func TestSideValidate(t *testing.T) {
	assert.Nil(t, merkle.Left.Validate(), "left invalid")
	assert.Nil(t, merkle.Right.Validate(), "right invalid")
	assert.NotNil(t, merkle.Side(9).Validate(), "bad side accepted")
	assert.Equal(t, merkle.Right, merkle.Left.Other(), "other of left")
	assert.Equal(t, merkle.Left, merkle.Right.Other(), "other of right")
}

func TestStoreIDJSON(t *testing.T) {
	storeID, err := merkle.NewStoreID()
	assert.Nil(t, err, "new store id error")

	buffer, err := json.Marshal(storeID)
	assert.Nil(t, err, "marshal error")

	var restored merkle.StoreID
	err = json.Unmarshal(buffer, &restored)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, storeID, restored, "round trip changed store id")
}
