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

package apis

// Registry associates type ids with optional facets: converters, comparators,
// enumerations and metadata.
//
// Registration is expected during program start-up and lookups during steady
// state. Implementations must make lookups safe for concurrent use once no
// registration is in flight.
type Registry interface {
	// RegisterConverter stores c under its source type id. Several converters
	// may share a source as long as their targets differ.
	RegisterConverter(source TypeID, c Converter) error
	// RegisterComparator records a reference to c for t.
	RegisterComparator(t TypeID, c Comparator) error
	// RegisterEnumeration stores e for t.
	RegisterEnumeration(t TypeID, e Enumeration) error
	// RegisterMetadata appends entries to the metadata list of t. Keys are
	// not deduplicated.
	RegisterMetadata(t TypeID, entries ...Metadata) error

	// Converter returns the converter from source to target.
	Converter(source, target TypeID) (Converter, bool)
	// Comparator returns the comparator registered for t.
	Comparator(t TypeID) (Comparator, bool)
	// Metadata returns the value of the first metadata entry of t whose key
	// equals key.
	Metadata(t TypeID, key any) (any, bool)
	// Enumeration returns a view over the enumeration of t. The view is
	// invalid when none is registered.
	Enumeration(t TypeID) EnumerationView

	// Snapshot returns copies of all facet lists, each sorted by type id.
	Snapshot() Snapshot
	// Count returns the total number of stored facet entries.
	Count() int
	// Seal ends the registration phase.
	Seal()
	// Sealed reports whether Seal was called.
	Sealed() bool
	// Reset drops all facets without closing them and reopens registration.
	Reset()
	// Close releases owned facets and empties the registry.
	Close() error
}

// Entry is a single (type id, facet) association in a Snapshot.
type Entry[V any] struct {
	// Type is the type id the facet is registered for.
	Type TypeID
	// Value is the facet.
	Value V
}

// Snapshot is a point-in-time copy of a Registry.
type Snapshot struct {
	Converters   []Entry[Converter]
	Comparators  []Entry[Comparator]
	Enumerations []Entry[Enumeration]
	Metadata     []Entry[[]Metadata]
}
