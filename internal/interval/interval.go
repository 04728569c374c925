// Copyright 2024-2026 The Syntree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package interval provides a map from disjoint closed intervals to values.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Map maps disjoint closed intervals with endpoints in K to values of type
// V.
//
// A zero value is ready to use.
type Map[K Endpoint, V any] struct {
	// Keys in this map are the (inclusive) ends of the stored intervals.
	tree btree.Map[K, *entry[K, V]]
}

// Interval is an entry returned by [Map.Get] and [Map.Insert].
type Interval[K Endpoint, V any] struct {
	// The range for this interval. Both endpoints are inclusive.
	Start, End K

	// The value associated with it. Nil means "no interval".
	Value *V
}

type entry[K Endpoint, V any] struct {
	start K
	value V
}

// Get looks up the interval which contains point, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] is nil.
func (m *Map[K, V]) Get(point K) Interval[K, V] {
	it := m.tree.Iter()
	// The sought interval, if any, is the one with the least end >= point.
	if !it.Seek(point) || point < it.Value().start {
		return Interval[K, V]{}
	}
	return Interval[K, V]{
		Start: it.Value().start,
		End:   it.Key(),
		Value: &it.Value().value,
	}
}

// Insert inserts a new interval with the given associated value. Both
// endpoints are inclusive.
//
// If [start, end] overlaps an interval already present, nothing is inserted
// and the overlapping interval is returned; this case is distinguished by
// overlap.Value != nil.
func (m *Map[K, V]) Insert(start, end K, value V) (overlap Interval[K, V]) {
	if start > end {
		panic(fmt.Sprintf("syntree/interval: start (%v) > end (%v)", start, end))
	}

	// Stored intervals are disjoint, so the only candidate for overlap is
	// the one with the least end >= start: every later interval begins
	// after it ends.
	it := m.tree.Iter()
	if it.Seek(start) && it.Value().start <= end {
		return Interval[K, V]{
			Start: it.Value().start,
			End:   it.Key(),
			Value: &it.Value().value,
		}
	}

	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	return Interval[K, V]{}
}

// Len returns the number of stored intervals.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// All returns an iterator over the intervals in this map, in ascending
// order.
func (m *Map[K, V]) All() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		it := m.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(Interval[K, V]{
				Start: it.Value().start,
				End:   it.Key(),
				Value: &it.Value().value,
			}) {
				return
			}
		}
	}
}
