// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pending

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// stateRLP is the canonical serialized form of a State: the accumulator of
// every slot in slot order, the active list newest first, and the next slot
// to open. RLP gives a deterministic byte encoding, which matters because
// serialized states are checkpointed and compared by content.
type stateRLP struct {
	Leaves   []common.Hash
	Active   []Index
	NewIndex Index
}

// MarshalBinary serializes the state deterministically.
func (s *State) MarshalBinary() ([]byte, error) {
	leaves := make([]common.Hash, Capacity)
	for i := Index(0); i < Capacity; i++ {
		value, err := s.tree.Get(i)
		if err != nil {
			return nil, err
		}
		leaves[i] = value.Hash()
	}
	return rlp.EncodeToBytes(stateRLP{
		Leaves:   leaves,
		Active:   s.indexList,
		NewIndex: s.newIndex,
	})
}

// UnmarshalState reconstructs a state from its serialized form. The encoded
// ring bookkeeping is validated against the leaves: active slots must hold
// non-empty stacks, inactive slots empty ones, and indices must be unique and
// within capacity.
func UnmarshalState(data []byte) (*State, error) {
	var encoded stateRLP
	if err := rlp.DecodeBytes(data, &encoded); err != nil {
		return nil, fmt.Errorf("decoding pending coinbase state: %w", err)
	}
	if len(encoded.Leaves) != Capacity {
		return nil, fmt.Errorf("encoded state has %d slots, expected %d", len(encoded.Leaves), Capacity)
	}
	if encoded.NewIndex >= Capacity {
		return nil, fmt.Errorf("encoded newIndex %d exceeds capacity %d", encoded.NewIndex, Capacity)
	}
	if len(encoded.Active) > Capacity {
		return nil, fmt.Errorf("encoded active list has %d entries, capacity is %d", len(encoded.Active), Capacity)
	}

	var active slotSet
	for _, index := range encoded.Active {
		if index >= Capacity {
			return nil, fmt.Errorf("encoded active slot %d exceeds capacity %d", index, Capacity)
		}
		if active.get(index) {
			return nil, fmt.Errorf("encoded active list mentions slot %d twice", index)
		}
		active.set(index)
	}

	tree, err := smt.New[Index](Depth)
	if err != nil {
		return nil, err
	}
	for i, leafHash := range encoded.Leaves {
		index := Index(i)
		value := stack.Stack(leafHash)
		if value.IsEmpty() != !active.get(index) {
			return nil, fmt.Errorf("slot %d: emptiness does not match active list", index)
		}
		if value.IsEmpty() {
			continue
		}
		tree, err = tree.Set(index, value)
		if err != nil {
			return nil, err
		}
	}

	list := make([]Index, len(encoded.Active))
	copy(list, encoded.Active)
	return &State{
		tree:      tree,
		indexList: list,
		active:    active,
		newIndex:  encoded.NewIndex,
	}, nil
}
