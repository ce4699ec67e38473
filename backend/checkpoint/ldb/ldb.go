// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"fmt"
	"unsafe"

	"github.com/golang/snappy"
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/jithinraj/coinstack/backend/checkpoint"
	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/ledger/pending"
)

// tableSpace is the key prefix separating checkpoint entries from any other
// data sharing the database.
const tableSpace = byte('C')

// dbKey is the LevelDB key of a checkpoint: one table-space byte followed by
// the serialized Merkle root.
type dbKey [1 + common.HashSize]byte

// Store is a LevelDB backed checkpoint.Store implementation. Serialized
// states are snappy-compressed before they are written; LevelDB's own
// compression is disabled to avoid compressing twice.
type Store struct {
	db            *leveldb.DB
	keySerializer common.Serializer[common.Hash]
}

// NewStore opens (and creates, if necessary) a LevelDB backed checkpoint
// store in the given directory. The cache size controls LevelDB's block
// cache in bytes; zero selects the LevelDB default.
func NewStore(path string, cacheSize int) (*Store, error) {
	options := &opt.Options{
		Compression:        opt.NoCompression,
		BlockCacheCapacity: cacheSize,
	}
	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint database %s: %w", path, err)
	}
	return &Store{
		db:            db,
		keySerializer: common.HashSerializer{},
	}, nil
}

// makeDbKey converts a Merkle root into the database key of its checkpoint.
func (s *Store) makeDbKey(root common.Hash) (k dbKey) {
	k[0] = tableSpace
	s.keySerializer.CopyBytes(root, k[1:])
	return k
}

// Put checkpoints a state under its Merkle root.
func (s *Store) Put(state *pending.State) error {
	data, err := state.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	key := s.makeDbKey(state.MerkleRoot())
	return s.db.Put(key[:], snappy.Encode(nil, data), nil)
}

// Get restores the state checkpointed under the given root.
func (s *Store) Get(root common.Hash) (*pending.State, error) {
	key := s.makeDbKey(root)
	compressed, err := s.db.Get(key[:], nil)
	if err == ldberrors.ErrNotFound {
		return nil, fmt.Errorf("%w: %s", checkpoint.ErrNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", root, err)
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing checkpoint %s: %w", root, err)
	}
	return pending.UnmarshalState(data)
}

// Has returns true if a checkpoint exists for the given root.
func (s *Store) Has(root common.Hash) (bool, error) {
	key := s.makeDbKey(root)
	return s.db.Has(key[:], nil)
}

// Roots lists the roots of all checkpoints.
func (s *Store) Roots() ([]common.Hash, error) {
	var roots []common.Hash
	iter := s.db.NewIterator(util.BytesPrefix([]byte{tableSpace}), nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		roots = append(roots, s.keySerializer.FromBytes(key[1:]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterating checkpoints: %w", err)
	}
	return roots, nil
}

// Flush writes all buffered data to disk.
func (s *Store) Flush() error {
	// LevelDB writes go through its journal; there is nothing extra to sync
	// between operations.
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
