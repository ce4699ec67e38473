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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jithinraj/coinstack/common/diagnostics"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// Verify checks every checkpoint of a database: the state must decode, its
// recomputed root must equal the root it is stored under, and every slot must
// be consistent with its authentication path.
var Verify = cli.Command{
	Action:    diagnostics.AddPerformanceDiagnosticsAction(verify, &diagnosticsFlag, &cpuProfileFlag, &traceFlag),
	Name:      "verify",
	Usage:     "verifies the integrity of a checkpoint database",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&dbFlag,
		&backendFlag,
	},
}

func verify(context *cli.Context) error {
	store, err := openStore(context)
	if err != nil {
		return err
	}
	defer store.Close()

	roots, err := store.Roots()
	if err != nil {
		return err
	}
	for _, root := range roots {
		state, err := store.Get(root)
		if err != nil {
			return fmt.Errorf("checkpoint %s is not decodable: %w", root, err)
		}
		if got := state.MerkleRoot(); got != root {
			return fmt.Errorf("checkpoint %s decodes to a state with root %s", root, got)
		}
		for index := pending.Index(0); index < pending.Capacity; index++ {
			value, err := state.Get(index)
			if err != nil {
				return err
			}
			path, err := state.Path(index)
			if err != nil {
				return err
			}
			if got := path.RootOf(value.Hash()); got != root {
				return fmt.Errorf("checkpoint %s: slot %d fails path consistency", root, index)
			}
		}
		fmt.Printf("checkpoint %s: OK\n", root)
	}
	fmt.Printf("all %d checkpoint(s) verified\n", len(roots))
	return nil
}
