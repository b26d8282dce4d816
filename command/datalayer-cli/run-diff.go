// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/diff"
	"github.com/Chia-Network/chia-blockchain-sub006/pagination"
)

func runDiff(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	hashA, err := digestFlag(c, "hash-a")
	if nil != err {
		return err
	}
	hashB, err := digestFlag(c, "hash-b")
	if nil != err {
		return err
	}
	entries, err := diff.KVDiff(storeID, hashA, hashB)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}

	start, end := 0, len(entries)
	if c.IsSet("max-page-size") {
		page, err := pagination.Paginate(len(entries), func(i int) int {
			return len(entries[i].Key) + len(entries[i].Value)
		}, c.Int("page"), c.Int("max-page-size"))
		if nil != err {
			return cli.NewExitError(err.Error(), 1)
		}
		start, end = page.Start, page.End
	}
	return printJSON(c, entries[start:end])
}
