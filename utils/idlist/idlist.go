/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package idlist implements an id-keyed association list kept sorted by id.
//
// Lookups are a binary search. Inserts binary-search the position and shift
// the tail, which is O(n); the list is meant for data that is written rarely
// (load time) and read often (steady state).
//
// A List is not safe for concurrent mutation. Concurrent reads are safe as
// long as no write is in flight.
package idlist

import (
	"cmp"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

// Entry is a single (id, value) pair.
type Entry[K constraints.Integer, V any] struct {
	// ID is the sort key.
	ID K
	// Value is the associated value.
	Value V
}

// Compare orders two entries by id.
func Compare[K constraints.Integer, V any](a, b Entry[K, V]) int {
	return cmp.Compare(a.ID, b.ID)
}

// CompareID orders an entry against a bare id.
func CompareID[K constraints.Integer, V any](e Entry[K, V], id K) int {
	return cmp.Compare(e.ID, id)
}

// List is a sequence of entries sorted ascending by ID. Several entries may
// share an ID; they form a contiguous run in insertion order.
type List[K constraints.Integer, V any] struct {
	entries []Entry[K, V]
}

// New returns an empty List with room for capacity entries.
func New[K constraints.Integer, V any](capacity int) *List[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &List[K, V]{entries: make([]Entry[K, V], 0, capacity)}
}

// Len returns the number of entries.
func (l *List[K, V]) Len() int {
	return len(l.entries)
}

// lowerBound returns the index of the first entry with ID >= id.
func (l *List[K, V]) lowerBound(id K) int {
	i, _ := slices.BinarySearchFunc(l.entries, id, CompareID[K, V])
	return i
}

// upperBound returns the index of the first entry with ID > id.
func (l *List[K, V]) upperBound(id K) int {
	i, _ := slices.BinarySearchFunc(l.entries, id, func(e Entry[K, V], id K) int {
		if e.ID <= id {
			return -1
		}
		return 1
	})
	return i
}

// Insert adds (id, v) after any entries already holding id and returns the
// index it was stored at.
func (l *List[K, V]) Insert(id K, v V) int {
	i := l.upperBound(id)
	l.entries = slices.Insert(l.entries, i, Entry[K, V]{ID: id, Value: v})
	return i
}

// Index returns the index of the first entry holding id.
func (l *List[K, V]) Index(id K) (int, bool) {
	i := l.lowerBound(id)
	if i < len(l.entries) && l.entries[i].ID == id {
		return i, true
	}
	return -1, false
}

// Find returns the value of the first entry holding id.
func (l *List[K, V]) Find(id K) (V, bool) {
	if i, ok := l.Index(id); ok {
		return l.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Run returns the contiguous run of entries holding id, or nil. The returned
// slice aliases the list and must not be modified or retained across writes.
func (l *List[K, V]) Run(id K) []Entry[K, V] {
	lo := l.lowerBound(id)
	if lo == len(l.entries) || l.entries[lo].ID != id {
		return nil
	}
	hi := lo + 1
	for hi < len(l.entries) && l.entries[hi].ID == id {
		hi++
	}
	return l.entries[lo:hi:hi]
}

// At returns the entry at index i. It panics if i is out of range.
func (l *List[K, V]) At(i int) Entry[K, V] {
	return l.entries[i]
}

// Set replaces the value at index i, keeping its id. It panics if i is out
// of range.
func (l *List[K, V]) Set(i int, v V) {
	l.entries[i].Value = v
}

// Entries returns a copy of all entries in id order.
func (l *List[K, V]) Entries() []Entry[K, V] {
	return slices.Clone(l.entries)
}

// All iterates entries in id order.
func (l *List[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range l.entries {
			if !yield(e.ID, e.Value) {
				return
			}
		}
	}
}

// Reset removes all entries, keeping the allocated capacity.
func (l *List[K, V]) Reset() {
	clear(l.entries)
	l.entries = l.entries[:0]
}
