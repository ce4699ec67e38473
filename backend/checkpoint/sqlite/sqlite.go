// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sqlite

import (
	"database/sql"
	"fmt"
	"unsafe"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jithinraj/coinstack/backend/checkpoint"
	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// Store is a SQLite backed checkpoint.Store implementation. It keeps all
// checkpoints in a single two-column table keyed by the serialized Merkle
// root.
type Store struct {
	db            *sql.DB
	keySerializer common.Serializer[common.Hash]
}

// NewStore opens (and initializes, if necessary) a SQLite backed checkpoint
// store in the given database file.
func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint database %s: %w", file, err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS checkpoint (
		root  BLOB PRIMARY KEY,
		state BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing checkpoint schema: %w", err)
	}
	return &Store{
		db:            db,
		keySerializer: common.HashSerializer{},
	}, nil
}

// Put checkpoints a state under its Merkle root.
func (s *Store) Put(state *pending.State) error {
	data, err := state.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	root := state.MerkleRoot()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO checkpoint (root, state) VALUES (?, ?)",
		s.keySerializer.ToBytes(root), data)
	return err
}

// Get restores the state checkpointed under the given root.
func (s *Store) Get(root common.Hash) (*pending.State, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT state FROM checkpoint WHERE root = ?", s.keySerializer.ToBytes(root)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", checkpoint.ErrNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", root, err)
	}
	return pending.UnmarshalState(data)
}

// Has returns true if a checkpoint exists for the given root.
func (s *Store) Has(root common.Hash) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM checkpoint WHERE root = ?", s.keySerializer.ToBytes(root)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Roots lists the roots of all checkpoints.
func (s *Store) Roots() ([]common.Hash, error) {
	rows, err := s.db.Query("SELECT root FROM checkpoint")
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	defer rows.Close()
	var roots []common.Hash
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		roots = append(roots, s.keySerializer.FromBytes(raw))
	}
	return roots, rows.Err()
}

// Flush writes all buffered data to disk.
func (s *Store) Flush() error {
	// Every Exec commits its own transaction; nothing is buffered here.
	return nil
}

// Close the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetMemoryFootprint provides the size of the store in memory in bytes.
func (s *Store) GetMemoryFootprint() *common.MemoryFootprint {
	return common.NewMemoryFootprint(unsafe.Sizeof(*s))
}
