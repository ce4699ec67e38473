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
	"github.com/jithinraj/coinstack/common"
)

// PathElement is one step of an authentication path: the hash of the sibling
// subtree and the side it sits on. Left is true if the sibling is the left
// child, i.e. the authenticated node is the right child at that level.
type PathElement struct {
	Sibling common.Hash
	Left    bool
}

// Path is an authentication path from a leaf up to the root. Element i holds
// the sibling at height i, so folding a leaf hash through the path bottom-up
// reproduces the root commitment.
type Path []PathElement

// RootOf folds the given leaf hash through the path and returns the implied
// root. Combined with a known root commitment this authenticates both the
// leaf value and its position.
func (p Path) RootOf(leafHash common.Hash) common.Hash {
	current := leafHash
	for height, elem := range p {
		if elem.Left {
			current = Merge(height, elem.Sibling, current)
		} else {
			current = Merge(height, current, elem.Sibling)
		}
	}
	return current
}

// Index reconstructs the leaf index the path leads to. A right-side step at
// height h contributes bit h of the index.
func (p Path) Index() uint64 {
	var index uint64
	for height, elem := range p {
		if elem.Left {
			index |= 1 << height
		}
	}
	return index
}
