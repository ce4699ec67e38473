// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jithinraj/coinstack/common/diagnostics"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// Info prints the contents of a checkpoint database: every checkpointed root
// together with its ring bookkeeping.
var Info = cli.Command{
	Action:    diagnostics.AddPerformanceDiagnosticsAction(info, &diagnosticsFlag, &cpuProfileFlag, &traceFlag),
	Name:      "info",
	Usage:     "lists the checkpoints of a database",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&dbFlag,
		&backendFlag,
	},
}

func info(context *cli.Context) error {
	store, err := openStore(context)
	if err != nil {
		return err
	}
	defer store.Close()

	roots, err := store.Roots()
	if err != nil {
		return err
	}
	fmt.Printf("%d checkpoint(s), capacity %d, tree depth %d\n", len(roots), pending.Capacity, pending.Depth)
	var issues []error
	for _, root := range roots {
		state, err := store.Get(root)
		if err != nil {
			issues = append(issues, fmt.Errorf("checkpoint %s: %w", root, err))
			continue
		}
		fmt.Printf("root %s\n", root)
		fmt.Printf("  active slots (newest first): %v\n", state.IndexList())
		fmt.Printf("  next slot to open:           %d\n", state.NewIndex())
	}
	return errors.Join(issues...)
}
