// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "philosophers-cli" signs and submits philosophersvm transactions and runs
// its read-only scripts.
package main

import (
	"context"
	"os"

	"github.com/ava-labs/philosophersvm/cmd/philosophers-cli/cmd"
	"github.com/ava-labs/philosophersvm/utils"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		utils.Outf("{{red}}philosophers-cli exited with error:{{/}} %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
