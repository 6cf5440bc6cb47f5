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

// Config carries the knobs shared by registries, resolvers and allocators.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// ConflictPolicy applies to comparator, enumeration and same-target
	// converter re-registration.
	ConflictPolicy ConflictPolicy `yaml:"conflict_policy" toml:"conflict_policy"`

	// InitialCapacity is the capacity hint for each facet list.
	InitialCapacity int `yaml:"initial_capacity" toml:"initial_capacity"`

	// MaxTypeCount caps the number of ids an allocator hands out.
	MaxTypeCount int `yaml:"max_type_count" toml:"max_type_count"`

	// IncludeBuiltins controls whether builtin/no-package named types
	// (e.g., "int", "string") get a canonical name. If false they resolve to "".
	IncludeBuiltins bool `yaml:"include_builtins" toml:"include_builtins"`

	// MaxUnwrap limits how deeply composite types (ptr/slice/array/chan/map)
	// are descended when building a canonical name. Deeper types get no name.
	MaxUnwrap int `yaml:"max_unwrap" toml:"max_unwrap"`
}
