// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package amount

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestAmount_NewAcceptsUpToFourWords(t *testing.T) {
	require := require.New(t)

	require.True(New().IsZero())
	require.Equal(uint64(42), New(42).Uint64())
	require.Equal(New(1, 0), NewFromUint256(uint256.NewInt(0).Lsh(uint256.NewInt(1), 64)))
	require.Panics(func() { New(1, 2, 3, 4, 5) })
}

func TestAmount_NewFromBytesIsBigEndian(t *testing.T) {
	require := require.New(t)

	require.Equal(New(0x0102), NewFromBytes(1, 2))
	require.True(NewFromBytes().IsZero())
	require.Panics(func() { NewFromBytes(make([]byte, 33)...) })
}

func TestAmount_Bytes32RoundTrip(t *testing.T) {
	require := require.New(t)

	amount := New(4, 3, 2, 1)
	bytes := amount.Bytes32()
	require.Equal(amount, NewFromBytes(bytes[:]...))
}

func TestAmount_Add(t *testing.T) {
	require := require.New(t)
	require.Equal(New(5), Add(New(2), New(3)))
	require.Equal(New(7), Add(New(7), New()))
}

func TestAmount_Sub(t *testing.T) {
	require := require.New(t)

	res, err := Sub(New(5), New(3))
	require.NoError(err)
	require.Equal(New(2), res)

	res, err = Sub(New(3), New(3))
	require.NoError(err)
	require.True(res.IsZero())
}

func TestAmount_SubReportsUnderflow(t *testing.T) {
	require := require.New(t)
	_, err := Sub(New(3), New(5))
	require.ErrorIs(err, ErrUnderflow)
}

func TestAmount_String(t *testing.T) {
	require := require.New(t)
	require.Equal("100", New(100).String())
}
