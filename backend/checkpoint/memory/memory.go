// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"fmt"
	"unsafe"

	"github.com/jithinraj/coinstack/backend/checkpoint"
	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// Store is an in-memory checkpoint.Store implementation - it maps Merkle
// roots to serialized states.
type Store struct {
	data map[common.Hash][]byte
}

// NewStore constructs a new instance of Store.
func NewStore() *Store {
	return &Store{
		data: make(map[common.Hash][]byte),
	}
}

// Put checkpoints a state under its Merkle root.
func (m *Store) Put(state *pending.State) error {
	data, err := state.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	m.data[state.MerkleRoot()] = data
	return nil
}

// Get restores the state checkpointed under the given root.
func (m *Store) Get(root common.Hash) (*pending.State, error) {
	data, exists := m.data[root]
	if !exists {
		return nil, fmt.Errorf("%w: %s", checkpoint.ErrNotFound, root)
	}
	return pending.UnmarshalState(data)
}

// Has returns true if a checkpoint exists for the given root.
func (m *Store) Has(root common.Hash) (bool, error) {
	_, exists := m.data[root]
	return exists, nil
}

// Roots lists the roots of all checkpoints.
func (m *Store) Roots() ([]common.Hash, error) {
	roots := make([]common.Hash, 0, len(m.data))
	for root := range m.data {
		roots = append(roots, root)
	}
	return roots, nil
}

// Flush the store
func (m *Store) Flush() error {
	return nil // no-op for in-memory database
}

// Close the store
func (m *Store) Close() error {
	return nil // no-op for in-memory database
}

// GetMemoryFootprint provides the size of the store in memory in bytes
func (m *Store) GetMemoryFootprint() *common.MemoryFootprint {
	size := unsafe.Sizeof(*m)
	for _, data := range m.data {
		size += unsafe.Sizeof(common.Hash{}) + uintptr(len(data))
	}
	return common.NewMemoryFootprint(size)
}
