// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/pagination"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

func runCreateStore(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := ledger.CreateStore()
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "%s\n", storeID)
	return nil
}

func runStores(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	stores, err := ledger.StoreList()
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, storeID := range stores {
		fmt.Fprintf(c.App.Writer, "%s\n", storeID)
	}
	return nil
}

func runGetValue(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	key, err := hexFlag(c, "key")
	if nil != err {
		return err
	}
	value, err := tree.GetValue(storeID, key, generationArg(c))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	printHex(c, value)
	return nil
}

func runKeys(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	keys, err := tree.GetKeys(storeID, generationArg(c))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}

	if !c.IsSet("max-page-size") {
		for _, key := range keys {
			printHex(c, key)
		}
		return nil
	}

	page, err := pagination.Paginate(len(keys), func(i int) int {
		return len(keys[i])
	}, c.Int("page"), c.Int("max-page-size"))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, key := range keys[page.Start:page.End] {
		printHex(c, key)
	}
	if c.GlobalBool("verbose") {
		fmt.Fprintf(c.App.Writer, "total pages: %d  total bytes: %d\n", page.TotalPages, page.TotalBytes)
	}
	return nil
}

func runKeysValues(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	items, err := tree.GetKeysValues(storeID, generationArg(c))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}

	start, end := 0, len(items)
	if c.IsSet("max-page-size") {
		page, err := pagination.Paginate(len(items), func(i int) int {
			return len(items[i].Key) + len(items[i].Value)
		}, c.Int("page"), c.Int("max-page-size"))
		if nil != err {
			return cli.NewExitError(err.Error(), 1)
		}
		start, end = page.Start, page.End
	}
	return printJSON(c, items[start:end])
}

func runHistory(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	history, err := ledger.History(storeID)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, history)
}

func runSyncStatus(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	status, err := ledger.SyncStatus(storeID)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, status)
}

func runAncestors(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	node, err := digestFlag(c, "node")
	if nil != err {
		return err
	}
	ancestors, err := tree.Ancestors(storeID, node, generationArg(c))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, ancestors)
}
