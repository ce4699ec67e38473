// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tracked

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/jithinraj/coinstack/backend/checkpoint"
	"github.com/jithinraj/coinstack/common"
	"github.com/jithinraj/coinstack/common/future"
	"github.com/jithinraj/coinstack/common/result"
	"github.com/jithinraj/coinstack/ledger/pending"
	"github.com/jithinraj/coinstack/ledger/stack"
)

// Ledger wraps a pending-coinbase state and checkpoints every produced
// version to a backing store. Checkpoint writes happen asynchronously in a
// background goroutine, so mutations do not block on storage; this is safe
// because state versions are immutable once produced.
//
// Mutations on a Ledger are serialized internally. Readers of state versions
// obtained from Current are never blocked.
type Ledger struct {
	mutex   sync.Mutex
	current *pending.State

	// Backing storage for checkpoints. May be nil, in which case no
	// checkpoints are produced.
	store checkpoint.Store

	// Controls for interacting with the background worker persisting
	// produced state versions.
	commands chan<- command  // < commands to background worker
	syncs    <-chan struct{} // < signalled when syncing with background worker
	done     <-chan struct{} // < when background work is done

	issues issueCollector // < issues identified by background worker
}

// command represents an operation to be performed by the background worker.
// There are three kinds:
//  1. Save: persist the given state version.
//  2. Ack: persist the given state version and fulfill the promise with its
//     root once written.
//  3. Sync: flush all pending commands and report collected issues; encoded
//     as a command with no state attached.
type command struct {
	save *pending.State
	ack  *future.Promise[result.Result[common.Hash]]
}

// NewLedger creates a ledger starting from the initial empty state. The given
// store receives one checkpoint per produced state version; a nil store
// disables persistence.
func NewLedger(store checkpoint.Store) *Ledger {
	return newLedger(pending.New(), store)
}

// OpenLedger creates a ledger resuming from the state checkpointed under the
// given root.
func OpenLedger(store checkpoint.Store, root common.Hash) (*Ledger, error) {
	state, err := store.Get(root)
	if err != nil {
		return nil, fmt.Errorf("restoring ledger from checkpoint: %w", err)
	}
	return newLedger(state, store), nil
}

func newLedger(state *pending.State, store checkpoint.Store) *Ledger {
	res := &Ledger{
		current: state,
		store:   store,
	}
	if store == nil {
		return res
	}
	commands := make(chan command, 1024)
	syncs := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		processCommands(store, commands, syncs, &res.issues)
	}()
	res.commands = commands
	res.syncs = syncs
	res.done = done
	return res
}

// Current returns the latest produced state version. The result is immutable
// and safe to read concurrently with further ledger mutations.
func (l *Ledger) Current() *pending.State {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.current
}

// MerkleRoot returns the root commitment of the latest state version.
func (l *Ledger) MerkleRoot() common.Hash {
	return l.Current().MerkleRoot()
}

// AddCoinbase applies a coinbase to the ledger and returns the new root. The
// produced version is checkpointed in the background.
func (l *Ledger) AddCoinbase(coinbase stack.Coinbase, opensNewSlot bool) (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	next, err := l.current.AddCoinbase(coinbase, opensNewSlot)
	if err != nil {
		return common.Hash{}, err
	}
	l.current = next
	l.enqueueSave(next)
	return next.MerkleRoot(), nil
}

// RetireOldest retires the oldest open slot and returns the new root. The
// produced version is checkpointed in the background.
func (l *Ledger) RetireOldest() (common.Hash, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	next, err := l.current.RetireOldest()
	if err != nil {
		return common.Hash{}, err
	}
	l.current = next
	l.enqueueSave(next)
	return next.MerkleRoot(), nil
}

func (l *Ledger) enqueueSave(state *pending.State) {
	if l.commands == nil {
		return
	}
	l.commands <- command{save: state}
}

// Checkpoint persists the current state version and returns a future that is
// fulfilled with its root once the write completed.
func (l *Ledger) Checkpoint() future.Future[result.Result[common.Hash]] {
	l.mutex.Lock()
	state := l.current
	l.mutex.Unlock()
	if l.commands == nil {
		return future.Immediate(result.Ok(state.MerkleRoot()))
	}
	promise, res := future.Create[result.Result[common.Hash]]()
	l.commands <- command{save: state, ack: &promise}
	return res
}

func processCommands(
	store checkpoint.Store,
	commands <-chan command,
	syncs chan<- struct{},
	issues *issueCollector,
) {
	for command := range commands {
		switch {
		case command.save != nil:
			err := store.Put(command.save)
			issues.HandleIssue(err)
			if command.ack != nil {
				if err != nil {
					command.ack.Fulfill(result.Err[common.Hash](err))
				} else {
					command.ack.Fulfill(result.Ok(command.save.MerkleRoot()))
				}
			}
		default: // sync command
			syncs <- struct{}{}
		}
	}
}

// Sync blocks until all enqueued checkpoint writes completed and reports any
// issues they encountered.
func (l *Ledger) Sync() error {
	if l.commands == nil {
		return nil
	}
	l.commands <- command{}
	<-l.syncs
	return l.issues.Collect()
}

// Flush completes all pending checkpoint writes and flushes the store.
func (l *Ledger) Flush() error {
	if err := l.Sync(); err != nil {
		return err
	}
	if l.store == nil {
		return nil
	}
	return l.store.Flush()
}

// Close flushes and shuts down the background worker and the store.
func (l *Ledger) Close() error {
	if err := l.Flush(); err != nil {
		return err
	}
	if l.commands == nil {
		return nil
	}
	close(l.commands)
	<-l.done
	return l.store.Close()
}

// GetMemoryFootprint provides the size of the ledger in memory in bytes.
func (l *Ledger) GetMemoryFootprint() *common.MemoryFootprint {
	res := common.NewMemoryFootprint(unsafe.Sizeof(*l))
	if l.store != nil {
		res.AddChild("store", l.store.GetMemoryFootprint())
	}
	return res
}

// issueCollector collects issues encountered during background processing.
// Only the first 10 issues are stored; any additional issues are counted but
// not stored in detail.
type issueCollector struct {
	issues      []error // < collected issues
	extraIssues int     // < count of additional issues beyond stored ones
	mutex       sync.Mutex
}

func (c *issueCollector) HandleIssue(err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.issues) < 10 {
		c.issues = append(c.issues, err)
	} else {
		c.extraIssues++
	}
}

func (c *issueCollector) Collect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.extraIssues > 0 {
		c.issues = append(c.issues, fmt.Errorf("%d additional errors truncated", c.extraIssues))
	}
	res := errors.Join(c.issues...)
	c.issues = c.issues[:0]
	c.extraIssues = 0
	return res
}
