// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/hex"

	"golang.org/x/exp/constraints"
)

// HashSize is the byte length of all hash values used in this project.
const HashSize = 32

// Hash is a 32-byte hash value. It is used both for Merkle tree nodes and for
// coinbase stack accumulators, which are themselves chained hashes.
type Hash [HashSize]byte

// HashFromBytes converts a byte slice into a Hash. Slices longer than HashSize
// are truncated, shorter slices are zero-padded at the end.
func HashFromBytes(data []byte) Hash {
	var h Hash
	copy(h[:], data)
	return h
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// PublicKey is a compressed public key of a block proposer. Only its byte
// identity matters to this project; signature verification happens elsewhere.
type PublicKey [32]byte

// DomainTag maps a short name to a fixed-width hashing tag. Each hashing
// context in this project starts with a distinct tag so that a hash produced
// in one context can never be reinterpreted as a hash of another. Names
// longer than the tag width would be ambiguous and are rejected.
func DomainTag(name string) (tag [32]byte) {
	if len(name) > len(tag) {
		panic("domain tag name too long: " + name)
	}
	copy(tag[:], name)
	return tag
}

// Identifier is a type used to address values in stores and trees.
type Identifier interface {
	constraints.Integer
}

// Serializer allows to convert a type to/from a fixed-length byte slice.
type Serializer[T any] interface {
	// ToBytes serializes the value into a new byte slice.
	ToBytes(T) []byte
	// CopyBytes serializes the value into an existing byte slice.
	CopyBytes(T, []byte)
	// FromBytes deserializes the value from the given byte slice.
	FromBytes([]byte) T
	// Size provides the length of the serialized form in bytes.
	Size() int
}

// HashSerializer is a Serializer of the Hash type, used to key checkpoint
// stores by Merkle roots.
type HashSerializer struct{}

var _ Serializer[Hash] = HashSerializer{}

func (a HashSerializer) ToBytes(value Hash) []byte {
	return value[:]
}
func (a HashSerializer) CopyBytes(value Hash, out []byte) {
	copy(out, value[:])
}
func (a HashSerializer) FromBytes(bytes []byte) Hash {
	return HashFromBytes(bytes)
}
func (a HashSerializer) Size() int {
	return HashSize
}
