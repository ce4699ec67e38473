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

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/common/amount"
	"github.com/jithinraj/coinstack/ledger/smt"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// testCoinbase produces a distinct coinbase per seed.
func testCoinbase(seed byte) stack.Coinbase {
	return stack.Coinbase{
		Proposer: common.PublicKey{seed},
		Amount:   amount.New(100),
	}
}

func TestState_InitialStateIsEmpty(t *testing.T) {
	require := require.New(t)

	state := New()
	require.Equal(smt.EmptyRoot(Depth), state.MerkleRoot())
	require.Empty(state.IndexList())
	require.Equal(Index(0), state.NewIndex())

	_, err := state.OldestStackIndex()
	require.ErrorIs(err, ErrEmptyRing)
	_, err = state.LatestStackIndex(false)
	require.ErrorIs(err, ErrNoActiveSlot)
}

func TestState_AddCoinbaseOpensASlot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	require.Equal([]Index{0}, state.IndexList())
	require.Equal(Index(1), state.NewIndex())
	require.True(state.IsActive(0))

	value, err := state.Get(0)
	require.NoError(err)
	require.False(value.IsEmpty())
}

func TestState_AddCoinbaseContinuesTheNewestSlot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)
	state, err = state.AddCoinbase(testCoinbase(2), true)
	require.NoError(err)

	// The continuation lands in slot 1, the newest, not slot 0.
	before0, err := state.Get(0)
	require.NoError(err)
	before1, err := state.Get(1)
	require.NoError(err)

	state, err = state.AddCoinbase(testCoinbase(3), false)
	require.NoError(err)

	after0, err := state.Get(0)
	require.NoError(err)
	after1, err := state.Get(1)
	require.NoError(err)

	require.Equal(before0, after0)
	require.NotEqual(before1, after1)
	require.Equal([]Index{1, 0}, state.IndexList())
}

func TestState_MutationsLeaveTheReceiverUnchanged(t *testing.T) {
	require := require.New(t)

	before := New()
	root := before.MerkleRoot()

	_, err := before.AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	require.Equal(root, before.MerkleRoot())
	require.Empty(before.IndexList())
	require.Equal(Index(0), before.NewIndex())
}

func TestState_RoundTripRestoresTheEmptyRoot(t *testing.T) {
	require := require.New(t)

	state := New()
	initial := state.MerkleRoot()

	// 100 coinbases into a single slot, opened by the first one.
	var err error
	for i := 0; i < 100; i++ {
		state, err = state.AddCoinbase(testCoinbase(byte(i)), i == 0)
		require.NoError(err)
	}
	require.NotEqual(initial, state.MerkleRoot())
	require.Equal([]Index{0}, state.IndexList())

	state, err = state.RetireOldest()
	require.NoError(err)
	require.Equal(initial, state.MerkleRoot())
	require.Empty(state.IndexList())
}

func TestState_NewIndexWrapsAtCapacity(t *testing.T) {
	require := require.New(t)

	state := New()
	var err error
	for i := 0; i < Capacity; i++ {
		require.Equal(Index(i), state.NewIndex())
		state, err = state.AddCoinbase(testCoinbase(byte(i)), true)
		require.NoError(err)
	}
	require.Equal(Index(0), state.NewIndex())
	require.Len(state.IndexList(), Capacity)
	for index := Index(0); index < Capacity; index++ {
		require.True(state.IsActive(index))
	}
}

func TestState_OpeningASlotThatIsStillInUseFails(t *testing.T) {
	require := require.New(t)

	state := New()
	var err error
	for i := 0; i < Capacity; i++ {
		state, err = state.AddCoinbase(testCoinbase(byte(i)), true)
		require.NoError(err)
	}

	// All slots are occupied; newIndex wrapped back to slot 0.
	_, err = state.AddCoinbase(testCoinbase(99), true)
	require.ErrorIs(err, ErrInvariantViolation)
}

func TestState_SlotsRetireInCreationOrder(t *testing.T) {
	require := require.New(t)

	state := New()
	var err error
	for i := 0; i < 3; i++ {
		state, err = state.AddCoinbase(testCoinbase(byte(i)), true)
		require.NoError(err)
	}
	require.Equal([]Index{2, 1, 0}, state.IndexList())

	for expected := Index(0); expected < 3; expected++ {
		oldest, err := state.OldestStackIndex()
		require.NoError(err)
		require.Equal(expected, oldest)
		state, err = state.RetireOldest()
		require.NoError(err)
		require.False(state.IsActive(expected))
	}
	require.Empty(state.IndexList())
	require.Equal(smt.EmptyRoot(Depth), state.MerkleRoot())
}

func TestState_RetiringWithoutOpenSlotsFails(t *testing.T) {
	require := require.New(t)

	_, err := New().RetireOldest()
	require.ErrorIs(err, ErrEmptyRing)
}

func TestState_AddingWithoutOpenSlotsFails(t *testing.T) {
	require := require.New(t)

	_, err := New().AddCoinbase(testCoinbase(1), false)
	require.ErrorIs(err, ErrNoActiveSlot)
}

func TestState_UnderflowingCoinbaseIsRejected(t *testing.T) {
	require := require.New(t)

	coinbase := stack.Coinbase{
		Proposer: common.PublicKey{1},
		Amount:   amount.New(10),
		FeeTransfer: &stack.FeeTransfer{
			Receiver: common.PublicKey{2},
			Fee:      amount.New(20),
		},
	}
	before := New()
	_, err := before.AddCoinbase(coinbase, true)
	require.ErrorIs(err, amount.ErrUnderflow)

	// The failed operation left no trace.
	require.Equal(smt.EmptyRoot(Depth), before.MerkleRoot())
	require.Empty(before.IndexList())
}

func TestState_LatestStackIndexPrefersTheSlotBeingOpened(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)

	index, err := state.LatestStackIndex(false)
	require.NoError(err)
	require.Equal(Index(0), index)

	index, err = state.LatestStackIndex(true)
	require.NoError(err)
	require.Equal(Index(1), index)
}

func TestState_FindIndexLocatesAnOpenSlot(t *testing.T) {
	require := require.New(t)

	state, err := New().AddCoinbase(testCoinbase(1), true)
	require.NoError(err)
	value, err := state.Get(0)
	require.NoError(err)

	index, err := state.FindIndex(value)
	require.NoError(err)
	require.Equal(Index(0), index)
}

func TestSlotSet_TracksMembership(t *testing.T) {
	require := require.New(t)

	var set slotSet
	require.False(set.any())
	require.Zero(set.popCount())

	set.set(3)
	set.set(8)
	require.True(set.get(3))
	require.True(set.get(8))
	require.False(set.get(0))
	require.Equal(2, set.popCount())

	set.unset(3)
	require.False(set.get(3))
	require.True(set.any())
	require.Equal(1, set.popCount())
}
