// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/Chia-Network/chia-blockchain-sub006/ledger"
	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/snapshot"
	"github.com/Chia-Network/chia-blockchain-sub006/tree"
)

// data command handler
//
// commands that run with the database open but before any background
// services are started; returns true when a command was processed and
// the daemon must exit
func processDataCommand(log *logger.L, arguments []string) bool {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "create-store":
		storeID, err := ledger.CreateStore()
		if nil != err {
			exitwithstatus.Message("create-store error: %s", err)
		}
		fmt.Printf("%s\n", storeID)

	case "stores":
		stores, err := ledger.StoreList()
		if nil != err {
			exitwithstatus.Message("stores error: %s", err)
		}
		for _, storeID := range stores {
			fmt.Printf("%s\n", storeID)
		}

	case "history":
		storeID := storeIDArgument(arguments, "history")
		history, err := ledger.History(storeID)
		if nil != err {
			exitwithstatus.Message("history error: %s", err)
		}
		printJSON(history)

	case "sync-status":
		storeID := storeIDArgument(arguments, "sync-status")
		status, err := ledger.SyncStatus(storeID)
		if nil != err {
			exitwithstatus.Message("sync-status error: %s", err)
		}
		printJSON(status)

	case "subscribe":
		storeID := storeIDArgument(arguments, "subscribe")
		if err := snapshot.Subscribe(storeID); nil != err {
			exitwithstatus.Message("subscribe error: %s", err)
		}
		log.Infof("subscribed store: %s", storeID)

	case "unsubscribe":
		if len(arguments) > 2 || (2 == len(arguments) && "retain" != arguments[1]) {
			exitwithstatus.Message("unsubscribe requires: <store-id> [retain]")
		}
		storeID := storeIDArgument(arguments, "unsubscribe")
		retain := 2 == len(arguments)
		if err := snapshot.Unsubscribe(storeID, retain); nil != err {
			exitwithstatus.Message("unsubscribe error: %s", err)
		}
		log.Infof("unsubscribed store: %s retain: %t", storeID, retain)

	case "submit-all":
		payloads, err := tree.SubmitAllPendingRoots()
		if nil != err {
			exitwithstatus.Message("submit-all error: %s", err)
		}
		printJSON(payloads)

	case "rollback":
		if 2 != len(arguments) {
			exitwithstatus.Message("rollback requires: <store-id> <generation>")
		}
		storeID := storeIDArgument(arguments, "rollback")
		generation, err := strconv.ParseUint(arguments[1], 10, 64)
		if nil != err {
			exitwithstatus.Message("rollback generation error: %s", err)
		}
		if err := tree.RollbackToGeneration(storeID, generation); nil != err {
			exitwithstatus.Message("rollback error: %s", err)
		}
		log.Warnf("rolled back store: %s to generation: %d", storeID, generation)

	default:
		return false
	}

	return true
}

func storeIDArgument(arguments []string, command string) merkle.StoreID {
	if len(arguments) < 1 {
		exitwithstatus.Message("%s requires a store id argument", command)
	}
	var storeID merkle.StoreID
	if err := storeID.UnmarshalText([]byte(arguments[0])); nil != err {
		exitwithstatus.Message("%s store id error: %s", command, err)
	}
	return storeID
}

func printJSON(value interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); nil != err {
		exitwithstatus.Message("json encode error: %s", err)
	}
}

func printHelp(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [command]\n", program)
	fmt.Printf("\n")
	fmt.Printf("commands:\n")
	fmt.Printf("  create-store                      create a new store and print its id\n")
	fmt.Printf("  stores                            list all store ids\n")
	fmt.Printf("  history <store-id>                print the root history of a store\n")
	fmt.Printf("  sync-status <store-id>            print current and target roots\n")
	fmt.Printf("  subscribe <store-id>              export snapshots and backfill history\n")
	fmt.Printf("  unsubscribe <store-id> [retain]   stop exporting, optionally keep files\n")
	fmt.Printf("  submit-all                        publish every pending batch root\n")
	fmt.Printf("  rollback <store-id> <generation>  drop all roots after a generation\n")
	fmt.Printf("\n")
	fmt.Printf("without a command the daemon runs until SIGINT or SIGTERM\n")
}
