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
	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// StateWitness is a Witness backed by a fully materialized state. It answers
// index and path requests from the state's tree and bookkeeping, and applies
// slot writes to a private working copy of the tree so that a sequence of
// protocol steps observes its own updates.
//
// A StateWitness serves one protocol operation; the intent whether the
// operation opens a new slot is fixed at construction, mirroring how witness
// handlers are built per transaction.
type StateWitness struct {
	state        *State
	tree         *smt.Tree[Index]
	opensNewSlot bool
}

var _ Witness = (*StateWitness)(nil)

// NewStateWitness creates a witness for one protocol operation against the
// given state version.
func NewStateWitness(state *State, opensNewSlot bool) *StateWitness {
	return &StateWitness{
		state:        state,
		tree:         state.tree,
		opensNewSlot: opensNewSlot,
	}
}

// NewestIndex resolves the slot an addition targets.
func (w *StateWitness) NewestIndex() (Index, error) {
	return w.state.LatestStackIndex(w.opensNewSlot)
}

// OldestIndex resolves the slot a retirement targets.
func (w *StateWitness) OldestIndex() (Index, error) {
	return w.state.OldestStackIndex()
}

// ReadSlot reads a slot and its authentication path from the working tree.
func (w *StateWitness) ReadSlot(index Index) (stack.Stack, smt.Path, error) {
	value, err := w.tree.Get(index)
	if err != nil {
		return stack.Stack{}, nil, err
	}
	path, err := w.tree.Path(index)
	if err != nil {
		return stack.Stack{}, nil, err
	}
	return value, path, nil
}

// WriteSlot applies a slot update to the working tree. The state the witness
// was created from is not modified.
func (w *StateWitness) WriteSlot(index Index, value stack.Stack) error {
	tree, err := w.tree.Set(index, value)
	if err != nil {
		return err
	}
	w.tree = tree
	return nil
}

// PathFor returns the authentication path of a slot in the working tree.
func (w *StateWitness) PathFor(index Index) (smt.Path, error) {
	return w.tree.Path(index)
}

// Root returns the root of the working tree, reflecting all writes served so
// far.
func (w *StateWitness) Root() common.Hash {
	return w.tree.Root()
}
