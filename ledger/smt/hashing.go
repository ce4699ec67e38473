// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package smt

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// MaxDepth is the largest supported tree depth. The trees handled by this
// package are tiny (the depth is derived from the number of concurrently open
// coinbase slots), so a generous fixed bound keeps the prefix table small and
// static.
const MaxDepth = 32

// levelPrefixes holds one hashing tag per tree level. Hashing internal nodes
// with a per-height prefix prevents a node hash from one level being passed
// off as a node hash of another level (a cross-height second-preimage
// defense). The table is computed once and read-only afterwards.
var levelPrefixes = func() (prefixes [MaxDepth][32]byte) {
	for height := range prefixes {
		prefixes[height] = common.DomainTag(fmt.Sprintf("merkle-node-height-%03d", height))
	}
	return prefixes
}()

// Merge computes the hash of an internal node at the given height from its
// two child hashes. Height 0 merges two leaves. Heights outside the supported
// range indicate a logic error and panic.
func Merge(height int, left, right common.Hash) common.Hash {
	if height < 0 || height >= MaxDepth {
		panic(fmt.Sprintf("merge height %d out of range", height))
	}
	hasher, _ := blake2b.New256(nil)
	hasher.Write(levelPrefixes[height][:])
	hasher.Write(left[:])
	hasher.Write(right[:])
	return common.HashFromBytes(hasher.Sum(nil))
}

// emptySubtreeHashes[h] is the root hash of a depth-h subtree whose leaves
// are all empty stacks. Since such a subtree has identical children at every
// level, its hashes follow the doubling recurrence
// h_k = Merge(k-1, h_{k-1}, h_{k-1}) and never need the 2^h leaves to be
// materialized.
var emptySubtreeHashes = func() (hashes [MaxDepth + 1]common.Hash) {
	hashes[0] = stack.Empty().Hash()
	for height := 1; height <= MaxDepth; height++ {
		hashes[height] = Merge(height-1, hashes[height-1], hashes[height-1])
	}
	return hashes
}()

// EmptyRoot returns the root hash of a tree of the given depth whose leaves
// all hold the empty stack.
func EmptyRoot(depth int) common.Hash {
	if depth < 0 || depth > MaxDepth {
		panic(fmt.Sprintf("depth %d out of range", depth))
	}
	return emptySubtreeHashes[depth]
}
