// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package result

// Result bundles a value with an error into a single type, for places where
// only one type can be passed along -- channels, futures, containers. A
// Result is either successful and carries a value, or failed and carries an
// error.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a successful Result holding the given value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a failed Result holding the given error.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of creates a Result from a conventional (value, error) pair.
func Of[T any](value T, err error) Result[T] {
	return Result[T]{value: value, err: err}
}

// Get returns the value and error contained in the Result. Using this
// function forces the caller to handle potential errors.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// IsErr returns true if the Result carries an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}
