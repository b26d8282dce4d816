// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

func runInsert(c *cli.Context) error {
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
	value, err := hexFlag(c, "value")
	if nil != err {
		return err
	}

	var reference *merkle.Digest
	side := merkle.Left
	if c.IsSet("reference") {
		digest, err := digestFlag(c, "reference")
		if nil != err {
			return err
		}
		reference = &digest
		switch c.String("side") {
		case "left":
			side = merkle.Left
		case "right":
			side = merkle.Right
		default:
			return cli.NewExitError("side must be left or right", 1)
		}
	}

	root, err := tree.Insert(storeID, key, value, reference, side, c.Bool("submit"))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, root)
}

func runDelete(c *cli.Context) error {
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
	root, err := tree.Delete(storeID, key, c.Bool("submit"))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, root)
}

func runUpsert(c *cli.Context) error {
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
	value, err := hexFlag(c, "value")
	if nil != err {
		return err
	}
	root, err := tree.Upsert(storeID, key, value, c.Bool("submit"))
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, root)
}

func runPublish(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	payload, err := ledger.Publish(storeID)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, payload)
}

func runSubmitAll(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	payloads, err := tree.SubmitAllPendingRoots()
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, payloads)
}

func runConfirm(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	if !c.IsSet("generation") {
		return cli.NewExitError("generation flag is required", 1)
	}
	if err := ledger.Confirm(storeID, c.Uint64("generation")); nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func runClearPending(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	if err := tree.ClearPending(storeID); nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func runRollback(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}
	if !c.IsSet("generation") {
		return cli.NewExitError("generation flag is required", 1)
	}
	if err := tree.RollbackToGeneration(storeID, c.Uint64("generation")); nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
