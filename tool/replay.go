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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/common/amount"
	"github.com/jithinraj/coinstack/common/diagnostics"
	"github.com/jithinraj/coinstack/ledger/pending"
	"github.com/jithinraj/coinstack/ledger/stack"
	"github.com/jithinraj/coinstack/ledger/tracked"
)

var (
	numCoinbasesFlag = cli.IntFlag{
		Name:  "num-coinbases",
		Usage: "the number of synthetic coinbases to apply",
		Value: 10_000,
	}
	slotSizeFlag = cli.IntFlag{
		Name:  "slot-size",
		Usage: "the number of coinbases accumulated per slot",
		Value: 10,
	}
)

// Replay applies a synthetic coinbase workload to a fresh ledger backed by
// the selected checkpoint store, reporting the final root and throughput.
// Slots are opened every slot-size coinbases and retired FIFO whenever the
// ring is full.
var Replay = cli.Command{
	Action:    diagnostics.AddPerformanceDiagnosticsAction(replay, &diagnosticsFlag, &cpuProfileFlag, &traceFlag),
	Name:      "replay",
	Usage:     "applies a synthetic coinbase workload to a fresh ledger",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&dbFlag,
		&backendFlag,
		&numCoinbasesFlag,
		&slotSizeFlag,
	},
}

func replay(context *cli.Context) error {
	store, err := openStore(context)
	if err != nil {
		return err
	}

	num := context.Int(numCoinbasesFlag.Name)
	slotSize := context.Int(slotSizeFlag.Name)
	if slotSize < 1 {
		return fmt.Errorf("--%s must be positive", slotSizeFlag.Name)
	}

	ledger := tracked.NewLedger(store)
	start := time.Now()
	for i := 0; i < num; i++ {
		opensNewSlot := i%slotSize == 0
		if opensNewSlot && len(ledger.Current().IndexList()) == pending.Capacity {
			if _, err := ledger.RetireOldest(); err != nil {
				return fmt.Errorf("retiring slot before coinbase %d: %w", i, err)
			}
		}
		if _, err := ledger.AddCoinbase(syntheticCoinbase(i), opensNewSlot); err != nil {
			return fmt.Errorf("applying coinbase %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	root := ledger.MerkleRoot()
	if err := ledger.Close(); err != nil {
		return err
	}
	fmt.Printf("applied %d coinbases in %v (%.0f/s)\n", num, elapsed, float64(num)/elapsed.Seconds())
	fmt.Printf("final root: %s\n", root)
	return nil
}

// syntheticCoinbase derives a deterministic coinbase from a sequence number.
// Every third entry carries a fee transfer.
func syntheticCoinbase(i int) stack.Coinbase {
	var proposer common.PublicKey
	binary.BigEndian.PutUint64(proposer[:8], uint64(i))
	coinbase := stack.Coinbase{
		Proposer: proposer,
		Amount:   amount.New(1_000),
	}
	if i%3 == 0 {
		var receiver common.PublicKey
		binary.BigEndian.PutUint64(receiver[:8], uint64(i)+1)
		coinbase.FeeTransfer = &stack.FeeTransfer{
			Receiver: receiver,
			Fee:      amount.New(uint64(i % 1_000)),
		}
	}
	return coinbase
}
