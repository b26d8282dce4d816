// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Chia-Network/chia-blockchain-sub006/fault"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
)

// file kinds
const (
	kindDelta = "delta"
	kindFull  = "full"
)

const fileVersion = "v1.0"

// <storeID>-<rootHash>-<kind>-<generation>-v1.0.dat
var fileNameRegexp = regexp.MustCompile(`^([0-9a-f]{64})-([0-9a-f]{64})-(delta|full)-([0-9]+)-v1\.0\.dat$`)

// parsed snapshot file name
type fileName struct {
	storeID    merkle.StoreID
	rootHash   merkle.Digest
	kind       string
	generation uint64
}

func (f fileName) String() string {
	return fmt.Sprintf("%s-%s-%s-%d-%s.dat", f.storeID, f.rootHash, f.kind, f.generation, fileVersion)
}

// internal: parse a file name, false for foreign files
func parseFileName(name string) (fileName, bool) {
	m := fileNameRegexp.FindStringSubmatch(name)
	if nil == m {
		return fileName{}, false
	}
	f := fileName{kind: m[3]}
	if err := f.storeID.UnmarshalText([]byte(m[1])); nil != err {
		return fileName{}, false
	}
	if err := f.rootHash.UnmarshalText([]byte(m[2])); nil != err {
		return fileName{}, false
	}
	generation, err := strconv.ParseUint(m[4], 10, 64)
	if nil != err {
		return fileName{}, false
	}
	f.generation = generation
	return f, true
}

// internal: directory one store's files live in
func storeDirectory(storeID merkle.StoreID) string {
	globalData.RLock()
	directory := globalData.directory
	groupByStore := globalData.groupByStore
	globalData.RUnlock()

	if groupByStore {
		return filepath.Join(directory, storeID.String())
	}
	return directory
}

// payload layout: 8 byte BE record count, then per record a 4 byte BE
// length and the packed node bytes

// internal: write one snapshot file
func writeFile(f fileName, records [][]byte) error {
	directory := storeDirectory(f.storeID)
	if err := os.MkdirAll(directory, 0o755); nil != err {
		return err
	}

	size := 8
	for _, record := range records {
		size += 4 + len(record)
	}
	buffer := make([]byte, 0, size)

	count := make([]byte, 8)
	binary.BigEndian.PutUint64(count, uint64(len(records)))
	buffer = append(buffer, count...)

	length := make([]byte, 4)
	for _, record := range records {
		binary.BigEndian.PutUint32(length, uint32(len(record)))
		buffer = append(buffer, length...)
		buffer = append(buffer, record...)
	}

	return os.WriteFile(filepath.Join(directory, f.String()), buffer, 0o644)
}

// ReadFile - decode one snapshot file back into packed node records
func ReadFile(path string) ([][]byte, error) {
	buffer, err := os.ReadFile(path)
	if nil != err {
		return nil, err
	}
	if len(buffer) < 8 {
		return nil, fault.WrongNodeEncoding
	}
	count := binary.BigEndian.Uint64(buffer)
	buffer = buffer[8:]

	records := make([][]byte, 0, count)
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < 4 {
			return nil, fault.WrongNodeEncoding
		}
		length := binary.BigEndian.Uint32(buffer)
		buffer = buffer[4:]
		if uint32(len(buffer)) < length {
			return nil, fault.WrongNodeEncoding
		}
		records = append(records, buffer[:length])
		buffer = buffer[length:]
	}
	if 0 != len(buffer) {
		return nil, fault.WrongNodeEncoding
	}
	return records, nil
}

// internal: list a store's snapshot files
func listFiles(storeID merkle.StoreID) ([]fileName, error) {
	directory := storeDirectory(storeID)
	entries, err := os.ReadDir(directory)
	if nil != err {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	files := []fileName{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, ok := parseFileName(entry.Name())
		if !ok || f.storeID != storeID {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}
