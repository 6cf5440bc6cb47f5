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

// Package typedb is a runtime type database: it gives every Go type a dense
// numeric id and stores optional facets per id.
//
// Four facet kinds exist:
//
//   - Converters turn a value of a source type into a value of a target
//     type. Several converters may share a source as long as their targets
//     differ.
//   - Comparators test two values of one type for equality (and optionally
//     order them).
//   - Enumerations map the names of an integer enum type to its values.
//   - Metadata is an ordered list of key/value pairs attached to a type.
//
// # Design
//
// The core is a read-mostly global snapshot (state) holding:
//
//   - Config: conflict policy, capacity hints and the naming rules used to
//     derive canonical type names.
//
//   - Registry: the facet store (package registry). Each facet kind lives
//     in its own list kept sorted by type id, so lookups are binary
//     searches.
//
//   - Resolver: turns a reflect.Type into a canonical name. Types may
//     declare their own name via apis.TypeNamer; everything else gets a
//     structural name with full import paths.
//
//   - Identity: fingerprints canonical names with FNV-1a and maps each
//     fingerprint to a dense apis.TypeID. Ids outlive registry rebuilds.
//
//   - Builder: constructs Registry and Resolver instances for a Config and
//     migrates facets from the previous registry.
//
// Readers load the current state atomically and never take the build lock.
// Writers copy the state, rebuild what is needed and publish the copy.
//
// # Registration phase
//
// Facets are usually registered from init functions:
//
//	func init() {
//		_ = typedb.RegisterComparator[Point](facets.Equal[Point]())
//		_ = typedb.RegisterConverter(func(p Point) (string, bool) {
//			return p.String(), true
//		})
//	}
//
// and the program seals the registry once start-up is done:
//
//	typedb.Registry().Seal()
//
// Registrations after Seal fail with registry.ErrSealed, and lookups stop
// taking the registry lock.
//
// # Pinning
//
// SetRegistry and SetResolver install a specific instance and pin it:
// SetConfig and SetBuilder then leave that layer alone until it is
// unpinned again with UnpinRegistry or UnpinResolver.
//
// # Explicit registries
//
// The global state is a convenience. Libraries that need isolation build
// their own registry with registry.New and their own ids with identity.New.
package typedb
