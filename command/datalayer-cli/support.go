// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/merkle"
	"github.com/Chia-Network/chia-blockchain-sub006/storage"
)

// shared flags
var (
	storeFlag = cli.StringFlag{
		Name:  "store, s",
		Value: "",
		Usage: "*hex store `ID`",
	}
	keyFlag = cli.StringFlag{
		Name:  "key, k",
		Value: "",
		Usage: "*hex `KEY`",
	}
	valueFlag = cli.StringFlag{
		Name:  "value",
		Value: "",
		Usage: "*hex `VALUE`",
	}
	submitFlag = cli.BoolFlag{
		Name:  "submit",
		Usage: " publish the new root immediately",
	}
	generationFlag = cli.Uint64Flag{
		Name:  "generation, g",
		Usage: " read at this `GENERATION` [current committed root]",
	}
	paginationFlags = []cli.Flag{
		cli.IntFlag{
			Name:  "page, p",
			Usage: " page number from zero",
		},
		cli.IntFlag{
			Name:  "max-page-size, m",
			Usage: " page byte budget [unpaginated]",
		},
	}
)

// internal: fail commands that need the database when the global flag
// was not given
func requireDatabase() error {
	if !storage.IsInitialised() {
		return cli.NewExitError("database flag is required", 1)
	}
	return nil
}

func storeIDFlag(c *cli.Context) (merkle.StoreID, error) {
	var storeID merkle.StoreID
	text := c.String("store")
	if "" == text {
		return storeID, cli.NewExitError("store flag is required", 1)
	}
	if err := storeID.UnmarshalText([]byte(text)); nil != err {
		return storeID, cli.NewExitError("store: "+err.Error(), 1)
	}
	return storeID, nil
}

func digestFlag(c *cli.Context, name string) (merkle.Digest, error) {
	var digest merkle.Digest
	text := c.String(name)
	if "" == text {
		return digest, cli.NewExitError(name+" flag is required", 1)
	}
	if err := digest.UnmarshalText([]byte(text)); nil != err {
		return digest, cli.NewExitError(name+": "+err.Error(), 1)
	}
	return digest, nil
}

func hexFlag(c *cli.Context, name string) ([]byte, error) {
	text := c.String(name)
	if "" == text {
		return nil, cli.NewExitError(name+" flag is required", 1)
	}
	buffer, err := hex.DecodeString(text)
	if nil != err {
		return nil, cli.NewExitError(name+": "+err.Error(), 1)
	}
	return buffer, nil
}

// nil when the generation flag is absent, so reads default to the
// current committed root
func generationArg(c *cli.Context) *uint64 {
	if !c.IsSet("generation") {
		return nil
	}
	generation := c.Uint64("generation")
	return &generation
}

func printJSON(c *cli.Context, value interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); nil != err {
		return cli.NewExitError("json encode: "+err.Error(), 1)
	}
	return nil
}

func printHex(c *cli.Context, buffer []byte) {
	fmt.Fprintf(c.App.Writer, "%x\n", buffer)
}
