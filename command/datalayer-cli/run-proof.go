// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/Chia-Network/chia-blockchain-sub006/proof"
)

func runProof(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}
	storeID, err := storeIDFlag(c)
	if nil != err {
		return err
	}

	texts := c.StringSlice("key")
	if 0 == len(texts) {
		return cli.NewExitError("at least one key flag is required", 1)
	}
	keys := make([][]byte, len(texts))
	for i, text := range texts {
		key, err := hex.DecodeString(text)
		if nil != err {
			return cli.NewExitError("key: "+err.Error(), 1)
		}
		keys[i] = key
	}

	p, err := proof.Generate(storeID, generationArg(c), keys)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	return printJSON(c, p)
}

func runVerifyProof(c *cli.Context) error {
	if err := requireDatabase(); nil != err {
		return err
	}

	name := c.Args().First()
	if "" == name {
		return cli.NewExitError("proof file argument is required", 1)
	}

	var buffer []byte
	var err error
	if "-" == name {
		buffer, err = io.ReadAll(os.Stdin)
	} else {
		buffer, err = os.ReadFile(name)
	}
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}

	p := &proof.Proof{}
	if err := json.Unmarshal(buffer, p); nil != err {
		return cli.NewExitError("proof decode: "+err.Error(), 1)
	}

	current, err := proof.VerifyProof(p)
	if nil != err {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "valid, current root: %t\n", current)
	return nil
}
