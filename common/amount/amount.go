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
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrUnderflow is returned when a subtraction of amounts would produce a
// negative result. Since amounts are unsigned there is no representation for
// such a value, and callers must treat the input as permanently invalid.
var ErrUnderflow = errors.New("amount underflow")

// Amount is a non-negative currency value. It is an immutable value type;
// arithmetic operations return new instances.
type Amount struct {
	internal uint256.Int
}

// New creates a new amount from a sequence of up to 4 uint64 arguments given
// in big-endian order. If no argument is given, the amount is zero.
func New(args ...uint64) Amount {
	if len(args) > 4 {
		panic("too many arguments")
	}
	res := Amount{}
	for i, arg := range args {
		res.internal[len(args)-1-i] = arg
	}
	return res
}

// NewFromUint256 creates an amount from an uint256 value.
func NewFromUint256(value *uint256.Int) Amount {
	return Amount{internal: *value}
}

// NewFromBytes creates a new amount from a sequence of up to 32 bytes given
// in big-endian order.
func NewFromBytes(bytes ...byte) Amount {
	if len(bytes) > 32 {
		panic("too many bytes")
	}
	res := Amount{}
	res.internal.SetBytes(bytes)
	return res
}

// Uint64 returns the amount as a uint64, assuming it fits.
func (a Amount) Uint64() uint64 {
	return a.internal.Uint64()
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.internal.IsZero()
}

// Bytes32 returns the amount as a fixed-size 32-byte array in big-endian
// order, suitable for deterministic encodings.
func (a Amount) Bytes32() [32]byte {
	return a.internal.Bytes32()
}

// ToUint256 returns the amount as an uint256 value.
func (a Amount) ToUint256() *uint256.Int {
	res := a.internal
	return &res
}

// Add returns the sum of the two amounts. Overflow wraps around, which is
// acceptable since real currency supplies never approach 2^256.
func Add(a, b Amount) Amount {
	res := Amount{}
	res.internal.Add(&a.internal, &b.internal)
	return res
}

// Sub returns a - b, or ErrUnderflow if b exceeds a.
func Sub(a, b Amount) (Amount, error) {
	if a.internal.Lt(&b.internal) {
		return Amount{}, fmt.Errorf("%w: %v < %v", ErrUnderflow, a, b)
	}
	res := Amount{}
	res.internal.Sub(&a.internal, &b.internal)
	return res, nil
}

func (a Amount) String() string {
	return a.internal.String()
}
