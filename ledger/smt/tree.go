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
	"errors"
	"fmt"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/stack"
)

var (
	// ErrNotFound is returned when a leaf value is not present in the tree.
	ErrNotFound = errors.New("value not found in tree")
	// ErrNotMaterialized is returned when a content operation is invoked on a
	// tree of which only the root commitment is known.
	ErrNotMaterialized = errors.New("tree contents not materialized")
	// ErrIndexOutOfRange is returned when a leaf index exceeds the tree size.
	ErrIndexOutOfRange = errors.New("leaf index out of range")
)

// Tree is a fixed-depth sparse Merkle tree mapping slot indices to coinbase
// stacks. It is a persistent value type: Set returns a new tree sharing all
// unmodified nodes with its predecessor, so previously produced versions stay
// valid and may be read concurrently.
//
// A Tree may alternatively wrap only a root commitment (see OfRoot), in which
// case content operations fail with ErrNotMaterialized.
type Tree[I common.Identifier] struct {
	depth    int
	root     node        // nil for an all-empty (or commitment-only) tree
	rootHash common.Hash // the commitment; for materialized trees derived from root
}

// New creates a materialized tree of the given depth with every leaf holding
// the empty stack.
func New[I common.Identifier](depth int) (*Tree[I], error) {
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("tree depth must be in [1, %d], got %d", MaxDepth, depth)
	}
	return &Tree[I]{
		depth:    depth,
		rootHash: EmptyRoot(depth),
	}, nil
}

// OfRoot wraps an existing root commitment of a tree whose contents are not
// locally available. Only Root is usable on the result; it exists so that
// protocol code can carry tree commitments through updates without holding
// the leaves.
func OfRoot[I common.Identifier](root common.Hash, depth int) *Tree[I] {
	return &Tree[I]{
		depth:    depth,
		rootHash: root,
	}
}

// Depth returns the depth of the tree.
func (t *Tree[I]) Depth() int {
	return t.depth
}

// Size returns the number of leaves of the tree.
func (t *Tree[I]) Size() uint64 {
	return 1 << t.depth
}

// Materialized returns false if only the root commitment of this tree is
// known.
func (t *Tree[I]) Materialized() bool {
	return t.root != nil || t.rootHash == EmptyRoot(t.depth)
}

// Root returns the Merkle root committing to all leaves.
func (t *Tree[I]) Root() common.Hash {
	return t.rootHash
}

// Get reads the stack stored at the given index.
func (t *Tree[I]) Get(index I) (stack.Stack, error) {
	if err := t.check(index); err != nil {
		return stack.Stack{}, err
	}
	return getLeaf(t.root, t.depth, uint64(index)), nil
}

// Set returns a new tree version with the leaf at the given index replaced.
// The receiver is left unchanged.
func (t *Tree[I]) Set(index I, value stack.Stack) (*Tree[I], error) {
	if err := t.check(index); err != nil {
		return nil, err
	}
	root := setLeaf(t.root, t.depth, uint64(index), value)
	return &Tree[I]{
		depth:    t.depth,
		root:     root,
		rootHash: nodeHash(root, t.depth),
	}, nil
}

// FindIndex returns the index of the first leaf, in index order, holding the
// given stack. If distinct slots ever hold equal accumulator values the first
// match wins; callers relying on uniqueness must guarantee it themselves. A
// missing value is reported with ErrNotFound.
func (t *Tree[I]) FindIndex(value stack.Stack) (I, error) {
	if !t.Materialized() {
		return 0, ErrNotMaterialized
	}
	for index := uint64(0); index < t.Size(); index++ {
		if getLeaf(t.root, t.depth, index) == value {
			return I(index), nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrNotFound, value)
}

// Path returns the authentication path of the leaf at the given index,
// ordered leaf to root.
func (t *Tree[I]) Path(index I) (Path, error) {
	if err := t.check(index); err != nil {
		return nil, err
	}
	return pathTo(t.root, t.depth, uint64(index)), nil
}

// check validates that the index addresses a leaf and that the contents are
// available.
func (t *Tree[I]) check(index I) error {
	if !t.Materialized() {
		return ErrNotMaterialized
	}
	if index < 0 || uint64(index) >= t.Size() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, t.Size())
	}
	return nil
}
