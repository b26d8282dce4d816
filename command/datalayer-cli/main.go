// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "datalayer-cli"
	app.Usage = "query and update a datalayer database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: "*path to the leveldb `DATABASE`",
		},
		cli.StringFlag{
			Name:  "log-directory, l",
			Value: "",
			Usage: " directory for the `LOG` file [temporary directory]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "create-store",
			Usage:  "create a new store and print its id",
			Action: runCreateStore,
		},
		{
			Name:   "stores",
			Usage:  "list all store ids",
			Action: runStores,
		},
		{
			Name:      "get-value",
			Usage:     "print the value of one key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag,
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*hex `KEY`",
				},
				generationFlag,
			},
			Action: runGetValue,
		},
		{
			Name:      "keys",
			Usage:     "list the keys under a root",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{storeFlag, generationFlag}, paginationFlags...),
			Action:    runKeys,
		},
		{
			Name:      "keys-values",
			Usage:     "list the keys and values under a root",
			ArgsUsage: "\n   (* = required)",
			Flags:     append([]cli.Flag{storeFlag, generationFlag}, paginationFlags...),
			Action:    runKeysValues,
		},
		{
			Name:      "history",
			Usage:     "print the root history of a store",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag},
			Action:    runHistory,
		},
		{
			Name:      "sync-status",
			Usage:     "print current and target roots",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag},
			Action:    runSyncStatus,
		},
		{
			Name:      "ancestors",
			Usage:     "print the internal nodes above a node",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag,
				cli.StringFlag{
					Name:  "node, n",
					Value: "",
					Usage: "*hex node `HASH`",
				},
				generationFlag,
			},
			Action: runAncestors,
		},
		{
			Name:      "insert",
			Usage:     "insert one key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag, keyFlag, valueFlag, submitFlag,
				cli.StringFlag{
					Name:  "reference, r",
					Value: "",
					Usage: " graft beside this hex node `HASH`",
				},
				cli.StringFlag{
					Name:  "side",
					Value: "",
					Usage: " graft side [left|right]",
				},
			},
			Action: runInsert,
		},
		{
			Name:      "delete",
			Usage:     "delete one key",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag, keyFlag, submitFlag},
			Action:    runDelete,
		},
		{
			Name:      "upsert",
			Usage:     "insert or replace one key",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag, keyFlag, valueFlag, submitFlag},
			Action:    runUpsert,
		},
		{
			Name:      "diff",
			Usage:     "print the key/value difference between two roots",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				storeFlag,
				cli.StringFlag{
					Name:  "hash-a, a",
					Value: "",
					Usage: "*hex root `HASH` of the older side",
				},
				cli.StringFlag{
					Name:  "hash-b, b",
					Value: "",
					Usage: "*hex root `HASH` of the newer side",
				},
			}, paginationFlags...),
			Action: runDiff,
		},
		{
			Name:      "proof",
			Usage:     "build an inclusion proof for one or more keys",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag,
				cli.StringSliceFlag{
					Name:  "key, k",
					Usage: "*hex `KEY`, repeatable",
				},
				generationFlag,
			},
			Action: runProof,
		},
		{
			Name:      "verify-proof",
			Usage:     "verify an inclusion proof read from a JSON file",
			ArgsUsage: "FILE\n   (FILE = proof JSON, \"-\" for stdin)",
			Action:    runVerifyProof,
		},
		{
			Name:      "publish",
			Usage:     "publish the pending batch root of a store",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag},
			Action:    runPublish,
		},
		{
			Name:   "submit-all",
			Usage:  "publish every pending batch root",
			Action: runSubmitAll,
		},
		{
			Name:      "confirm",
			Usage:     "record the external confirmation of a generation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag,
				cli.Uint64Flag{
					Name:  "generation, g",
					Usage: "*confirmed `GENERATION`",
				},
			},
			Action: runConfirm,
		},
		{
			Name:      "clear-pending",
			Usage:     "discard the pending root of a store",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{storeFlag},
			Action:    runClearPending,
		},
		{
			Name:      "rollback",
			Usage:     "drop all roots after a generation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				storeFlag,
				cli.Uint64Flag{
					Name:  "generation, g",
					Usage: "*target `GENERATION`",
				},
			},
			Action: runRollback,
		},
	}

	app.Before = openDatabase
	app.After = closeDatabase

	if err := app.Run(os.Args); nil != err {
		cli.HandleExitCoder(err)
	}
}

// internal: shared storage startup for every command
//
// help output must still work without a database, so a missing flag is
// not an error until a command actually runs
func openDatabase(c *cli.Context) error {
	database := c.GlobalString("database")
	if "" == database {
		return nil
	}

	logDirectory := c.GlobalString("log-directory")
	if "" == logDirectory {
		logDirectory = os.TempDir()
	}
	err := logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "datalayer-cli.log",
		Size:      1024 * 1024,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err {
		return cli.NewExitError("logger: "+err.Error(), 1)
	}

	if err := storage.Initialise(database, storage.ReadWrite); nil != err {
		return cli.NewExitError("storage: "+err.Error(), 1)
	}
	if err := ledger.Initialise(); nil != err {
		return cli.NewExitError("ledger: "+err.Error(), 1)
	}
	if err := tree.Initialise(); nil != err {
		return cli.NewExitError("tree: "+err.Error(), 1)
	}
	return nil
}

func closeDatabase(c *cli.Context) error {
	if storage.IsInitialised() {
		_ = tree.Finalise()
		_ = ledger.Finalise()
		_ = storage.Finalise()
		logger.Finalise()
	}
	return nil
}
