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

//go:generate mockgen -source update.go -destination witness_mocks.go -package pending

import (
	"fmt"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// Witness is the oracle through which an untrusted party supplies the slot
// index, leaf value and authentication path consumed by the constrained
// update protocol. Implementations are typically backed by whatever holds the
// full tree storage; inside a proof they are resolved non-deterministically.
//
// Nothing a Witness returns is trusted. The protocol checks every claim
// against the committed root, so a lying witness can only make an operation
// fail, never produce a wrong root.
type Witness interface {
	// NewestIndex returns the claimed target slot for an addition.
	NewestIndex() (Index, error)
	// OldestIndex returns the claimed target slot for a retirement.
	OldestIndex() (Index, error)
	// ReadSlot returns the claimed stack at the given slot together with its
	// authentication path.
	ReadSlot(index Index) (stack.Stack, smt.Path, error)
	// WriteSlot informs the storage about the slot's new value after a
	// successful update.
	WriteSlot(index Index, value stack.Stack) error
	// PathFor returns the authentication path of the given slot.
	PathFor(index Index) (smt.Path, error)
}

// ApplyCoinbase performs the constrained addition: it asks the witness for
// the newest slot, checks the supplied leaf and path against the committed
// root, asserts the emptiness filter, folds the coinbase into the slot's
// stack and returns the recomputed root. The root is the operation's sole
// observable output; index and path never leave the protocol.
//
// The filter admits exactly two cases: an empty leaf while a new slot is
// being opened, or a non-empty leaf continuing an existing slot. Everything
// else fails with ErrInvariantViolation and the committed root stays as it
// was.
func ApplyCoinbase(root common.Hash, witness Witness, coinbase stack.Coinbase, opensNewSlot bool) (common.Hash, error) {
	index, err := witness.NewestIndex()
	if err != nil {
		return common.Hash{}, fmt.Errorf("resolving newest slot: %w", err)
	}
	current, path, err := readChecked(root, witness, index)
	if err != nil {
		return common.Hash{}, err
	}
	if opensNewSlot != current.IsEmpty() {
		return common.Hash{}, fmt.Errorf("%w: slot %d empty=%t, opensNewSlot=%t",
			ErrInvariantViolation, index, current.IsEmpty(), opensNewSlot)
	}
	updated, err := stack.Push(current, coinbase)
	if err != nil {
		return common.Hash{}, err
	}
	if err := witness.WriteSlot(index, updated); err != nil {
		return common.Hash{}, fmt.Errorf("writing slot %d: %w", index, err)
	}
	return path.RootOf(updated.Hash()), nil
}

// RetireStack performs the constrained deletion: it asks the witness for the
// oldest slot, checks leaf and path against the committed root, asserts that
// the slot is non-empty, resets it to the empty stack and returns the
// recomputed root.
func RetireStack(root common.Hash, witness Witness) (common.Hash, error) {
	index, err := witness.OldestIndex()
	if err != nil {
		return common.Hash{}, fmt.Errorf("resolving oldest slot: %w", err)
	}
	current, path, err := readChecked(root, witness, index)
	if err != nil {
		return common.Hash{}, err
	}
	if current.IsEmpty() {
		return common.Hash{}, fmt.Errorf("%w: retiring slot %d which is already empty",
			ErrInvariantViolation, index)
	}
	updated := stack.Empty()
	if err := witness.WriteSlot(index, updated); err != nil {
		return common.Hash{}, fmt.Errorf("writing slot %d: %w", index, err)
	}
	return path.RootOf(updated.Hash()), nil
}

// readChecked fetches leaf and path for a claimed slot and verifies both
// against the committed root: the path must lead to the claimed index, and
// refolding the leaf through the path must reproduce the root. Either
// mismatch means the witness lied and is an ErrInvariantViolation.
func readChecked(root common.Hash, witness Witness, index Index) (stack.Stack, smt.Path, error) {
	current, path, err := witness.ReadSlot(index)
	if err != nil {
		return stack.Stack{}, nil, fmt.Errorf("reading slot %d: %w", index, err)
	}
	if got, want := len(path), Depth; got != want {
		return stack.Stack{}, nil, fmt.Errorf("%w: path of length %d, tree depth is %d",
			ErrInvariantViolation, got, want)
	}
	if got, want := path.Index(), uint64(index); got != want {
		return stack.Stack{}, nil, fmt.Errorf("%w: path leads to slot %d, claimed slot %d",
			ErrInvariantViolation, got, want)
	}
	if got := path.RootOf(current.Hash()); got != root {
		return stack.Stack{}, nil, fmt.Errorf("%w: slot %d contents do not match committed root",
			ErrInvariantViolation, index)
	}
	return current, path, nil
}
