// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stack

import (
	"fmt"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/common/amount"
)

// Coinbase is a value-minting entry as supplied by the surrounding ledger. If
// a fee transfer is attached, its fee is paid out of the coinbase amount and
// only the remainder is credited to the proposer.
type Coinbase struct {
	Proposer    common.PublicKey
	Amount      amount.Amount
	FeeTransfer *FeeTransfer // nil if no fee is deducted
}

// FeeTransfer names the receiver of a fee carved out of a coinbase amount.
type FeeTransfer struct {
	Receiver common.PublicKey
	Fee      amount.Amount
}

// canonicalPayload converts the coinbase into the byte sequence folded into
// the stack hash: the proposer key followed by the net amount after deducting
// any fee transfer. Deducting a fee larger than the amount fails with
// amount.ErrUnderflow.
func (c Coinbase) canonicalPayload() ([]byte, error) {
	net := c.Amount
	if c.FeeTransfer != nil {
		reduced, err := amount.Sub(c.Amount, c.FeeTransfer.Fee)
		if err != nil {
			return nil, fmt.Errorf("canonicalizing coinbase: %w", err)
		}
		net = reduced
	}
	payload := make([]byte, 0, len(c.Proposer)+common.HashSize)
	payload = append(payload, c.Proposer[:]...)
	netBytes := net.Bytes32()
	payload = append(payload, netBytes[:]...)
	return payload, nil
}
