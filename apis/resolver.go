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

import (
	"reflect"
)

// Resolver produces the canonical name of a type. The allocator fingerprints
// that name, so two modules that resolve the same name share a type id.
// Typical chain: NamerStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns the canonical name of v's type, or "" if none can be determined.
	Resolve(v any, cfg Config) string

	// ResolveType returns the canonical name of t, or "" if none can be determined.
	ResolveType(t reflect.Type, cfg Config) string
}

// Strategy is a pluggable resolution step.
type Strategy interface {
	// TryResolve attempts to name the type of v according to cfg.
	// It returns (name, true) if handled; otherwise ("", false) to fall through.
	TryResolve(v any, cfg Config) (name string, handled bool)

	// TryResolveType attempts to name t.
	TryResolveType(t reflect.Type, cfg Config) (name string, handled bool)
}

// TypeNamer is implemented by types that declare their own canonical name.
// The name must not depend on instance state.
type TypeNamer interface {
	TypeName() string
}
