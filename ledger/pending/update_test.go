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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/common/amount"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

func TestApplyCoinbase_MatchesTheStateLevelOperation(t *testing.T) {
	require := require.New(t)

	state := New()
	var err error
	for step := 0; step < 20; step++ {
		opensNewSlot := step%4 == 0
		coinbase := testCoinbase(byte(step))

		witness := NewStateWitness(state, opensNewSlot)
		protocolRoot, err2 := ApplyCoinbase(state.MerkleRoot(), witness, coinbase, opensNewSlot)
		require.NoError(err2)

		state, err = state.AddCoinbase(coinbase, opensNewSlot)
		require.NoError(err)
		require.Equal(state.MerkleRoot(), protocolRoot)
		require.Equal(state.MerkleRoot(), witness.Root())
	}
}

func TestRetireStack_MatchesTheStateLevelOperation(t *testing.T) {
	require := require.New(t)

	state := New()
	var err error
	for i := 0; i < 3; i++ {
		state, err = state.AddCoinbase(testCoinbase(byte(i)), true)
		require.NoError(err)
	}

	for i := 0; i < 3; i++ {
		witness := NewStateWitness(state, false)
		protocolRoot, err2 := RetireStack(state.MerkleRoot(), witness)
		require.NoError(err2)

		state, err = state.RetireOldest()
		require.NoError(err)
		require.Equal(state.MerkleRoot(), protocolRoot)
	}
	require.Equal(smt.EmptyRoot(Depth), state.MerkleRoot())
}

func TestApplyCoinbase_RejectsOpeningANonEmptySlot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	// The witness claims slot 0 as the target of a fresh slot, but slot 0 is
	// already in use.
	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	occupied, err := state.Get(0)
	require.NoError(err)
	path, err := state.Path(0)
	require.NoError(err)
	witness.EXPECT().NewestIndex().Return(Index(0), nil)
	witness.EXPECT().ReadSlot(Index(0)).Return(occupied, path, nil)

	_, err = ApplyCoinbase(state.MerkleRoot(), witness, testCoinbase(2), true)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestApplyCoinbase_RejectsContinuingAnEmptySlot(t *testing.T) {
	require := require.New(t)

	state := New()
	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	value, err := state.Get(3)
	require.NoError(err)
	path, err := state.Path(3)
	require.NoError(err)
	witness.EXPECT().NewestIndex().Return(Index(3), nil)
	witness.EXPECT().ReadSlot(Index(3)).Return(value, path, nil)

	_, err = ApplyCoinbase(state.MerkleRoot(), witness, testCoinbase(1), false)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestApplyCoinbase_RejectsALeafInconsistentWithTheRoot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	// The witness lies about the slot's contents.
	forged, err := stack.Push(stack.Empty(), testCoinbase(9))
	require.NoError(err)
	path, err := state.Path(0)
	require.NoError(err)

	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	witness.EXPECT().NewestIndex().Return(Index(0), nil)
	witness.EXPECT().ReadSlot(Index(0)).Return(forged, path, nil)

	_, err = ApplyCoinbase(state.MerkleRoot(), witness, testCoinbase(2), false)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestApplyCoinbase_RejectsAPathForADifferentSlot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	// Slot 0 is claimed, but the supplied path leads to slot 1.
	value, err := state.Get(0)
	require.NoError(err)
	path, err := state.Path(1)
	require.NoError(err)

	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	witness.EXPECT().NewestIndex().Return(Index(0), nil)
	witness.EXPECT().ReadSlot(Index(0)).Return(value, path, nil)

	_, err = ApplyCoinbase(state.MerkleRoot(), witness, testCoinbase(2), false)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestApplyCoinbase_RejectsATruncatedPath(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)
	value, err := state.Get(0)
	require.NoError(err)
	path, err := state.Path(0)
	require.NoError(err)

	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	witness.EXPECT().NewestIndex().Return(Index(0), nil)
	witness.EXPECT().ReadSlot(Index(0)).Return(value, path[:Depth-1], nil)

	_, err = ApplyCoinbase(state.MerkleRoot(), witness, testCoinbase(2), false)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestApplyCoinbase_PropagatesUnderflow(t *testing.T) {
	require := require.New(t)

	state := New()
	coinbase := stack.Coinbase{
		Proposer: common.PublicKey{1},
		Amount:   amount.New(1),
		FeeTransfer: &stack.FeeTransfer{
			Receiver: common.PublicKey{2},
			Fee:      amount.New(2),
		},
	}
	witness := NewStateWitness(state, true)
	_, err := ApplyCoinbase(state.MerkleRoot(), witness, coinbase, true)
	require.ErrorIs(err, amount.ErrUnderflow)
}

func TestRetireStack_RejectsRetiringAnEmptySlot(t *testing.T) {
	require := require.New(t)

	state := New()
	value, err := state.Get(0)
	require.NoError(err)
	path, err := state.Path(0)
	require.NoError(err)

	ctrl := gomock.NewController(t)
	witness := NewMockWitness(ctrl)
	witness.EXPECT().OldestIndex().Return(Index(0), nil)
	witness.EXPECT().ReadSlot(Index(0)).Return(value, path, nil)

	_, err = RetireStack(state.MerkleRoot(), witness)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestStateWitness_DoesNotModifyTheUnderlyingState(t *testing.T) {
	require := require.New(t)

	state := New()
	root := state.MerkleRoot()
	witness := NewStateWitness(state, true)

	_, err := ApplyCoinbase(root, witness, testCoinbase(1), true)
	require.NoError(err)

	require.Equal(root, state.MerkleRoot())
	require.NotEqual(root, witness.Root())
}
