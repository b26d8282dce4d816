// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// Layer - one sibling step of a leaf→root chain
//
// Side is the side the sibling hash sits on; CombinedHash is the
// parent hash the fold must reproduce
type Layer struct {
	OtherHash    merkle.Digest `json:"otherHash"`
	Side         merkle.Side   `json:"side"`
	CombinedHash merkle.Digest `json:"combinedHash"`
}

// KeyProof - the chain of one key, leaf upward, as indexes into the
// shared layer pool
type KeyProof struct {
	Key       []byte        `json:"key"`
	Value     []byte        `json:"value"`
	KeyHash   merkle.Digest `json:"keyHash"`
	ValueHash merkle.Digest `json:"valueHash"`
	NodeHash  merkle.Digest `json:"nodeHash"`
	Layers    []uint32      `json:"layers"`
}

// Proof - inclusion proof for one or more keys under one root
type Proof struct {
	StoreID    merkle.StoreID `json:"storeId"`
	RootHash   merkle.Digest  `json:"rootHash"`
	Generation uint64         `json:"generation"`
	Layers     []Layer        `json:"layers"`
	Keys       []KeyProof     `json:"keys"`
}

// Generate - build an inclusion proof, nil generation selects the
// current committed root
func Generate(storeID merkle.StoreID, generation *uint64, keys [][]byte) (*Proof, error) {
	if 0 == len(keys) {
		return nil, fault.KeyNotFound
	}

	proof := &Proof{StoreID: storeID}
	pool := make(map[Layer]uint32)

	for _, key := range keys {
		leafHash, path, root, err := tree.LeafPath(storeID, key, generation)
		if nil != err {
			return nil, err
		}
		proof.RootHash = root.NodeHash
		proof.Generation = root.Generation

		value, err := tree.GetValue(storeID, key, &root.Generation)
		if nil != err {
			return nil, err
		}

		keyProof := KeyProof{
			Key:       key,
			Value:     value,
			KeyHash:   merkle.HashKey(key),
			ValueHash: merkle.HashValue(value),
			NodeHash:  leafHash,
			Layers:    []uint32{},
		}

		// path runs root→leaf, the chain runs leaf→root
		for i := len(path) - 1; i >= 0; i -= 1 {
			step := path[i]
			layer := Layer{
				OtherHash:    step.Node.Child(step.Side.Other()),
				Side:         step.Side.Other(),
				CombinedHash: step.Node.Hash(),
			}
			index, ok := pool[layer]
			if !ok {
				index = uint32(len(proof.Layers))
				proof.Layers = append(proof.Layers, layer)
				pool[layer] = index
			}
			keyProof.Layers = append(keyProof.Layers, index)
		}

		proof.Keys = append(proof.Keys, keyProof)
	}
	return proof, nil
}

// Verify - check the proof against only its own bytes
//
// a non-nil expected root additionally pins the proven root hash
func (proof *Proof) Verify(expectedRoot *merkle.Digest) error {
	if 0 == len(proof.Keys) {
		return fault.InvalidProofLayer
	}
	if nil != expectedRoot && *expectedRoot != proof.RootHash {
		return fault.InvalidProofLayer
	}

	for _, keyProof := range proof.Keys {
		if merkle.HashKey(keyProof.Key) != keyProof.KeyHash {
			return fault.InvalidProofKeyValue
		}
		if merkle.HashValue(keyProof.Value) != keyProof.ValueHash {
			return fault.InvalidProofKeyValue
		}
		if merkle.LeafHashFromHashes(keyProof.KeyHash, keyProof.ValueHash) != keyProof.NodeHash {
			return fault.InvalidProofKeyValue
		}

		current := keyProof.NodeHash
		for _, index := range keyProof.Layers {
			if index >= uint32(len(proof.Layers)) {
				return fault.InvalidProofLayer
			}
			layer := proof.Layers[index]
			if err := layer.Side.Validate(); nil != err {
				return fault.InvalidProofSide
			}
			combined := merkle.CombineOn(current, layer.OtherHash, layer.Side)
			if combined != layer.CombinedHash {
				return fault.InvalidProofLayer
			}
			current = combined
		}
		if current != proof.RootHash {
			return fault.InvalidProofLayer
		}
	}
	return nil
}

// VerifyProof - full verification plus whether the proven root is
// still the store's current root
func VerifyProof(proof *Proof) (bool, error) {
	if err := proof.Verify(nil); nil != err {
		return false, err
	}
	current, err := ledger.CurrentRoot(proof.StoreID)
	if nil != err {
		return false, err
	}
	return current.NodeHash == proof.RootHash, nil
}
