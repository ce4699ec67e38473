// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pending

import "math/bits"

// slotSet is a simple bitmap over the coinbase slots, one bit per slot. It is
// a value type; the zero value is the empty set.
type slotSet uint16

// get returns true if the bit for the given slot is set.
func (s slotSet) get(index Index) bool {
	return s&(1<<index) != 0
}

// set sets the bit for the given slot.
func (s *slotSet) set(index Index) {
	*s |= 1 << index
}

// unset clears the bit for the given slot.
func (s *slotSet) unset(index Index) {
	*s &^= 1 << index
}

// any returns true if any bit is set.
func (s slotSet) any() bool {
	return s != 0
}

// popCount returns the number of set bits.
func (s slotSet) popCount() int {
	return bits.OnesCount16(uint16(s))
}
