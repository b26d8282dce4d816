// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"time"
)

// one schema migration step
//
// migrations run in the order listed; each identifier is recorded in
// the migrations pool when applied, so a rerun is a no-op
type migration struct {
	identifier string
	run        func(trx Transaction) error
}

// the ordered migration sequence - append only, never reorder
var migrationSequence = []migration{
	{
		identifier: "2019-11-initial-schema",
		run: func(trx Transaction) error {
			// pools are created implicitly by their prefixes; this
			// entry exists so an empty database records a baseline
			return nil
		},
	},
	{
		identifier: "2020-02-root-status-byte",
		run: func(trx Transaction) error {
			// validate every stored root record status byte; the
			// earlier layout allowed free-form status values
			cursor := Pool.Roots.NewFetchCursor(nil)
			return cursor.Map(func(key []byte, value []byte) error {
				if 0 == len(value) {
					return fmt.Errorf("empty root record for key: %x", key)
				}
				status := value[len(value)-9] // status byte precedes 8 byte timestamp
				if status > 2 {
					return fmt.Errorf("root record: %x has illegal status: %d", key, status)
				}
				return nil
			})
		},
	},
}

// internal: apply all outstanding migrations
//
// pools must be initialised; the pool lock must not be held
func runMigrations(readOnly bool) error {

	for _, m := range migrationSequence {
		key := []byte(m.identifier)

		if applied := Pool.Migrations.Get(key); nil != applied {
			poolData.log.Debugf("migration already applied: %s at %s", m.identifier, applied)
			continue
		}

		if readOnly {
			return fmt.Errorf("outstanding migration: %s on read-only database", m.identifier)
		}

		poolData.log.Infof("applying migration: %s", m.identifier)

		trx := NewTransaction()
		if err := trx.Begin(); nil != err {
			return err
		}
		if err := m.run(trx); nil != err {
			trx.Abort()
			return err
		}
		trx.Put(Pool.Migrations, key, []byte(time.Now().UTC().Format(time.RFC3339)))
		if err := trx.Commit(); nil != err {
			return err
		}
	}
	return nil
}
