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
	"github.com/jithinraj/coinstack/ledger/stack"
)

// ---- Nodes ----

// node is a tree node. Nodes are immutable once created; updates copy the
// nodes along the modified path and share everything else with the previous
// tree version. A nil node stands for a fully empty subtree of whatever
// height its position implies.
type node interface {
	hash() common.Hash
}

// ---- Inner nodes ----

// inner is an internal node. Its hash is computed once at construction since
// nodes never change afterwards.
type inner struct {
	left, right node
	hashValue   common.Hash
}

// newInner creates an internal node at the given height above its children.
// Two empty children collapse into the shared empty-subtree representation.
func newInner(height int, left, right node) node {
	if left == nil && right == nil {
		return nil
	}
	return &inner{
		left:      left,
		right:     right,
		hashValue: Merge(height, nodeHash(left, height), nodeHash(right, height)),
	}
}

func (n *inner) hash() common.Hash {
	return n.hashValue
}

// children returns the children of a node, treating empty subtrees as pairs
// of empty subtrees.
func children(n node) (left, right node) {
	if in, ok := n.(*inner); ok {
		return in.left, in.right
	}
	return nil, nil
}

// ---- Leaf nodes ----

// leaf holds the accumulator stored at one slot.
type leaf struct {
	value stack.Stack
}

func (n *leaf) hash() common.Hash {
	return n.value.Hash()
}

// nodeHash returns the hash of a node of the given height, resolving empty
// subtrees through the precomputed table.
func nodeHash(n node, height int) common.Hash {
	if n == nil {
		return emptySubtreeHashes[height]
	}
	return n.hash()
}

// setLeaf returns the root of a copy of the subtree rooted at n with the leaf
// at the given index replaced. Only the nodes along the path to the leaf are
// reallocated. Writing the empty stack returns the slot to the shared empty
// representation.
func setLeaf(n node, height int, index uint64, value stack.Stack) node {
	if height == 0 {
		if value.IsEmpty() {
			return nil
		}
		return &leaf{value: value}
	}
	left, right := children(n)
	if (index>>(height-1))&1 == 0 {
		left = setLeaf(left, height-1, index, value)
	} else {
		right = setLeaf(right, height-1, index, value)
	}
	return newInner(height-1, left, right)
}

// getLeaf reads the leaf at the given index of the subtree rooted at n.
func getLeaf(n node, height int, index uint64) stack.Stack {
	for height > 0 {
		if n == nil {
			return stack.Empty()
		}
		left, right := children(n)
		if (index>>(height-1))&1 == 0 {
			n = left
		} else {
			n = right
		}
		height--
	}
	if n == nil {
		return stack.Empty()
	}
	return n.(*leaf).value
}

// pathTo collects the authentication path for the leaf at the given index,
// ordered from the leaf's sibling up to the root's children.
func pathTo(n node, height int, index uint64) Path {
	if height == 0 {
		return Path{}
	}
	left, right := children(n)
	if (index>>(height-1))&1 == 0 {
		path := pathTo(left, height-1, index)
		return append(path, PathElement{Sibling: nodeHash(right, height-1), Left: false})
	}
	path := pathTo(right, height-1, index)
	return append(path, PathElement{Sibling: nodeHash(left, height-1), Left: true})
}
