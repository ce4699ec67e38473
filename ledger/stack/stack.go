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
	"golang.org/x/crypto/blake2b"

	"github.com/jithinraj/coinstack/common"
)

// Stack is a coinbase accumulator: a single chained BLAKE2b-256 hash
// representing an ordered sequence of coinbase entries. Pushing an entry
// produces a new stack value; there is no way to inspect or remove entries.
// Two stacks are equal exactly if their hash values are equal.
type Stack common.Hash

// Domain separation tags. Each hashing context starts with a distinct,
// fixed-width tag so that values produced in one context can never be
// reinterpreted as values of another.
var (
	tagEmpty = common.DomainTag("coinbase-stack-empty-v1")
	tagPush  = common.DomainTag("coinbase-stack-push-v1")
)

// empty is the fixed, publicly known value of a stack with no entries. It is
// the hash of a domain salt and independent of any tree geometry.
var empty = Stack(blake2b.Sum256(tagEmpty[:]))

// Empty returns the stack holding no entries.
func Empty() Stack {
	return empty
}

// IsEmpty returns true if the stack holds no entries.
func (s Stack) IsEmpty() bool {
	return s == empty
}

// Hash returns the stack's accumulator value. This is the value committed to
// by the Merkle tree of coinbase slots.
func (s Stack) Hash() common.Hash {
	return common.Hash(s)
}

func (s Stack) String() string {
	return common.Hash(s).String()
}

// Push folds a coinbase entry into the stack and returns the new accumulator
// value. The entry is first canonicalized; an entry whose fee transfer
// exceeds its amount is rejected with amount.ErrUnderflow. Push is strictly
// order sensitive: folding the same entries in a different order yields a
// different stack.
func Push(s Stack, coinbase Coinbase) (Stack, error) {
	payload, err := coinbase.canonicalPayload()
	if err != nil {
		return Stack{}, err
	}
	hasher, _ := blake2b.New256(nil)
	hasher.Write(tagPush[:])
	hasher.Write(s[:])
	hasher.Write(payload)
	return Stack(common.HashFromBytes(hasher.Sum(nil))), nil
}
