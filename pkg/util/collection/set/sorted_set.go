// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package set

import (
	"cmp"
	"slices"
	"sort"
)

// SortedSet is an array of unique sorted values.  This makes membership
// checks logarithmic, and gives a deterministic order of iteration regardless
// of the order of insertion.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns an empty sorted set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{}
}

// Contains returns true if a given element is in the set.
//
//nolint:revive
func (p *SortedSet[T]) Contains(element T) bool {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(*p), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	return i < len(data) && data[i] == element
}

// Insert an element into this sorted set, returning true if it was not
// already present.
//
//nolint:revive
func (p *SortedSet[T]) Insert(element T) bool {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(*p), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	if i < len(data) && data[i] == element {
		return false
	}
	// No, item was not found
	ndata := make([]T, len(data)+1)
	copy(ndata, data[0:i])
	ndata[i] = element
	copy(ndata[i+1:], data[i:])
	*p = ndata
	//
	return true
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() uint {
	return uint(len(*p))
}

// ToArray returns a copy of the elements of this set, in sorted order.
func (p *SortedSet[T]) ToArray() []T {
	return slices.Clone(*p)
}
