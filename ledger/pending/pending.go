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
	"errors"
	"fmt"
	"math/bits"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// Capacity is the number of coinbase slots that may be open at the same time.
// It bounds the number of blocks whose coinbases are still awaiting
// finalization.
const Capacity = 9

// Depth is the depth of the Merkle tree committing to the slots, the
// smallest depth whose leaf count covers the capacity.
var Depth = bits.Len(uint(Capacity - 1))

// Index identifies one coinbase slot, a leaf position of the tree.
type Index uint8

var (
	// ErrNoActiveSlot is returned when a coinbase is added while no slot is
	// open and none is being opened.
	ErrNoActiveSlot = errors.New("no active coinbase slot")
	// ErrEmptyRing is returned when a retirement is attempted while no slot
	// is open.
	ErrEmptyRing = errors.New("no coinbase slot to retire")
	// ErrInvariantViolation is returned when a slot fails the emptiness check
	// guarding an update. It indicates either a lying witness or corrupted
	// bookkeeping; the operation is rejected and must not be retried.
	ErrInvariantViolation = errors.New("slot emptiness invariant violated")
)

// State is the pending-coinbase ledger state: a Merkle tree of coinbase
// stacks together with the ring bookkeeping deciding which slot receives the
// next coinbase and which slot retires next.
//
// State is a persistent value type. Every mutating operation returns a new
// version and leaves the receiver unchanged; versions share tree structure.
// A single version must not receive concurrent mutations, but any produced
// version may be read freely.
type State struct {
	tree      *smt.Tree[Index]
	indexList []Index // active slots, newest first
	active    slotSet // mirrors indexList membership
	newIndex  Index   // next slot to open, wraps at Capacity
}

// New creates the initial state: all slots empty, no slot open, slot 0 to be
// opened first.
func New() *State {
	tree, err := smt.New[Index](Depth)
	if err != nil {
		panic(fmt.Sprintf("invalid compile-time tree depth: %v", err))
	}
	return &State{tree: tree}
}

// MerkleRoot returns the commitment to all coinbase slots. This is the only
// value consumers embed into outer commitments.
func (s *State) MerkleRoot() common.Hash {
	return s.tree.Root()
}

// Path returns the authentication path of the given slot for external proof
// assembly.
func (s *State) Path(index Index) (smt.Path, error) {
	return s.tree.Path(index)
}

// Get reads the stack currently held by the given slot.
func (s *State) Get(index Index) (stack.Stack, error) {
	return s.tree.Get(index)
}

// FindIndex locates the slot holding the given stack value.
func (s *State) FindIndex(value stack.Stack) (Index, error) {
	return s.tree.FindIndex(value)
}

// IndexList returns the active slots, newest first.
func (s *State) IndexList() []Index {
	result := make([]Index, len(s.indexList))
	copy(result, s.indexList)
	return result
}

// NewIndex returns the slot that will be opened next.
func (s *State) NewIndex() Index {
	return s.newIndex
}

// IsActive returns true if the given slot is currently open.
func (s *State) IsActive(index Index) bool {
	return s.active.get(index)
}

// LatestStackIndex resolves the slot an incoming coinbase targets: the slot
// about to be opened if opensNewSlot is set, otherwise the most recently
// opened slot. ErrNoActiveSlot is returned if no slot is open and none is
// being opened.
func (s *State) LatestStackIndex(opensNewSlot bool) (Index, error) {
	if opensNewSlot {
		return s.newIndex, nil
	}
	if len(s.indexList) == 0 {
		return 0, ErrNoActiveSlot
	}
	return s.indexList[0], nil
}

// OldestStackIndex resolves the slot that retires next, the least recently
// opened one. ErrEmptyRing is returned if no slot is open.
func (s *State) OldestStackIndex() (Index, error) {
	if len(s.indexList) == 0 {
		return 0, ErrEmptyRing
	}
	return s.indexList[len(s.indexList)-1], nil
}

// nextNewIndex advances the ring bookkeeping after a coinbase landed in a
// slot. Opening a slot prepends it to the active list and moves newIndex one
// position further, wrapping at Capacity. Without a new slot the bookkeeping
// is unchanged.
func (s *State) nextNewIndex(opensNewSlot bool) (list []Index, active slotSet, newIndex Index) {
	if !opensNewSlot {
		return s.indexList, s.active, s.newIndex
	}
	list = make([]Index, 0, len(s.indexList)+1)
	list = append(list, s.newIndex)
	list = append(list, s.indexList...)
	active = s.active
	active.set(s.newIndex)
	return list, active, (s.newIndex + 1) % Capacity
}

// AddCoinbase folds a coinbase entry into the targeted slot and returns the
// new state version. Exactly one leaf changes. With opensNewSlot set the
// target is a fresh slot, which must still be empty; otherwise the entry
// continues the newest open slot, which must be non-empty. A mismatch fails
// with ErrInvariantViolation, leaving the state unchanged.
func (s *State) AddCoinbase(coinbase stack.Coinbase, opensNewSlot bool) (*State, error) {
	index, err := s.LatestStackIndex(opensNewSlot)
	if err != nil {
		return nil, err
	}
	current, err := s.tree.Get(index)
	if err != nil {
		return nil, err
	}
	if opensNewSlot != current.IsEmpty() {
		return nil, fmt.Errorf("%w: slot %d empty=%t, opensNewSlot=%t",
			ErrInvariantViolation, index, current.IsEmpty(), opensNewSlot)
	}
	pushed, err := stack.Push(current, coinbase)
	if err != nil {
		return nil, err
	}
	tree, err := s.tree.Set(index, pushed)
	if err != nil {
		return nil, err
	}
	list, active, newIndex := s.nextNewIndex(opensNewSlot)
	return &State{
		tree:      tree,
		indexList: list,
		active:    active,
		newIndex:  newIndex,
	}, nil
}

// RetireOldest closes the least recently opened slot, resetting its stack to
// empty, and returns the new state version. Retirement is strictly FIFO:
// coinbases become spendable in the order their blocks were created.
func (s *State) RetireOldest() (*State, error) {
	index, err := s.OldestStackIndex()
	if err != nil {
		return nil, err
	}
	current, err := s.tree.Get(index)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, fmt.Errorf("%w: retiring slot %d which is already empty",
			ErrInvariantViolation, index)
	}
	tree, err := s.tree.Set(index, stack.Empty())
	if err != nil {
		return nil, err
	}
	list := make([]Index, len(s.indexList)-1)
	copy(list, s.indexList[:len(s.indexList)-1])
	active := s.active
	active.unset(index)
	return &State{
		tree:      tree,
		indexList: list,
		active:    active,
		newIndex:  s.newIndex,
	}, nil
}
