// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package checkpoint

import (
	"errors"

	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// ErrNotFound is returned when no checkpoint exists for a requested root.
var ErrNotFound = errors.New("no checkpoint for root")

// Store persists pending-coinbase states between operations, keyed by their
// Merkle root. Since the serialized form is deterministic, storing the same
// state version twice is idempotent.
//
// Implementations exist for in-memory maps, LevelDB and SQLite; they are
// interchangeable.
type Store interface {
	// Put checkpoints the given state under its Merkle root.
	Put(state *pending.State) error

	// Get restores the state checkpointed under the given root. If no such
	// checkpoint exists, ErrNotFound is reported.
	Get(root common.Hash) (*pending.State, error)

	// Has returns true if a checkpoint exists for the given root.
	Has(root common.Hash) (bool, error)

	// Roots lists the roots of all checkpoints, in unspecified order.
	Roots() ([]common.Hash, error)

	// Flush writes all buffered data to disk.
	Flush() error

	// Close flushes and releases the store.
	Close() error

	// GetMemoryFootprint provides the size of the store in memory in bytes.
	GetMemoryFootprint() *common.MemoryFootprint
}
