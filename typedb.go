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

package typedb

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/builder"
	"dirpx.dev/typedb/config"
	"dirpx.dev/typedb/facets"
	"dirpx.dev/typedb/identity"
	"dirpx.dev/typedb/strategy"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.ids = identity.New(s.cfg)
	s.types = newTypeTable()
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typedb: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("typedb: builder returned nil resolver")
	// ErrUnnamedType is returned when the resolver cannot name a type.
	ErrUnnamedType = errors.New("typedb: type has no canonical name")
	// ErrTypeCollision is returned when two distinct types resolve to the
	// same canonical name, e.g. equally named types declared in different
	// functions of one package.
	ErrTypeCollision = errors.New("typedb: distinct types share a canonical name")
)

// TypeName returns the canonical name of v's type.
func TypeName(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeNameOf returns the canonical name of t.
func TypeNameOf(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// TypeIDOf returns the id of t, assigning one on first use. A second,
// different type resolving to the name of t fails with ErrTypeCollision
// unless both declare that name through apis.TypeNamer.
func TypeIDOf(t reflect.Type) (apis.TypeID, error) {
	s := st.Load()
	name := s.res.ResolveType(t, s.cfg)
	if name == "" {
		return apis.InvalidTypeID, errors.Wrapf(ErrUnnamedType, "%v", t)
	}
	// Claim the name before minting, so a colliding type never gets an id.
	if err := s.types.claim(name, t); err != nil {
		return apis.InvalidTypeID, err
	}
	return s.ids.Assign(name)
}

// TypeIDFor returns the id of T, assigning one on first use.
func TypeIDFor[T any]() (apis.TypeID, error) {
	return TypeIDOf(reflect.TypeFor[T]())
}

// MustTypeIDFor is like TypeIDFor but panics on error. It is meant for
// package-level variables and init functions.
func MustTypeIDFor[T any]() apis.TypeID {
	id, err := TypeIDFor[T]()
	if err != nil {
		panic(err)
	}
	return id
}

// lookupID returns the id of t without assigning one.
func lookupID(s *state, t reflect.Type) (apis.TypeID, bool) {
	name := s.res.ResolveType(t, s.cfg)
	if name == "" || !s.types.owns(name, t) {
		return apis.InvalidTypeID, false
	}
	return s.ids.Lookup(name)
}

// typeTable remembers which reflect.Type first claimed each canonical name.
type typeTable struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
}

func newTypeTable() *typeTable {
	return &typeTable{byName: make(map[string]reflect.Type)}
}

// claim binds name to t. Names declared through apis.TypeNamer are shared
// freely and never bound.
func (tt *typeTable) claim(name string, t reflect.Type) error {
	if strategy.DeclaresName(t) {
		return nil
	}

	// Fast read path for already claimed names.
	tt.mu.RLock()
	prev, ok := tt.byName[name]
	tt.mu.RUnlock()
	if !ok {
		tt.mu.Lock()
		// Re-check under lock in case another goroutine claimed meanwhile.
		if prev, ok = tt.byName[name]; !ok {
			tt.byName[name] = t
			prev = t
		}
		tt.mu.Unlock()
	}
	if prev != t {
		return errors.Wrapf(ErrTypeCollision, "%q is already bound to another type", name)
	}
	return nil
}

// owns reports whether name is unclaimed or claimed by t.
func (tt *typeTable) owns(name string, t reflect.Type) bool {
	if strategy.DeclaresName(t) {
		return true
	}
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	prev, ok := tt.byName[name]
	return !ok || prev == t
}

// RegisterConverter registers fn as the converter from S to T in the global
// registry.
func RegisterConverter[S, T any](fn func(S) (T, bool)) error {
	src, err := TypeIDFor[S]()
	if err != nil {
		return err
	}
	dst, err := TypeIDFor[T]()
	if err != nil {
		return err
	}
	return Registry().RegisterConverter(src, facets.NewConverter(dst, fn))
}

// RegisterComparator registers c as the comparator of T in the global registry.
func RegisterComparator[T any](c apis.Comparator) error {
	id, err := TypeIDFor[T]()
	if err != nil {
		return err
	}
	return Registry().RegisterComparator(id, c)
}

// RegisterEnumeration registers e as the enumeration of T in the global registry.
func RegisterEnumeration[T any](e apis.Enumeration) error {
	id, err := TypeIDFor[T]()
	if err != nil {
		return err
	}
	return Registry().RegisterEnumeration(id, e)
}

// RegisterMetadata appends entries to the metadata of T in the global registry.
func RegisterMetadata[T any](entries ...apis.Metadata) error {
	id, err := TypeIDFor[T]()
	if err != nil {
		return err
	}
	return Registry().RegisterMetadata(id, entries...)
}

// Convert converts v to T with the converter registered for v's type.
func Convert[T any](v any) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	s := st.Load()
	src, ok := lookupID(s, reflect.TypeOf(v))
	if !ok {
		return zero, false
	}
	dst, ok := lookupID(s, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	c, ok := s.reg.Converter(src, dst)
	if !ok {
		return zero, false
	}
	out, ok := c.Convert(v)
	if !ok {
		return zero, false
	}
	res, ok := out.(T)
	return res, ok
}

// Equal compares lhs and rhs with the comparator registered for lhs's type.
// ok is false when the operands have different types or no comparator is
// registered.
func Equal(lhs, rhs any) (equal, ok bool) {
	if lhs == nil || rhs == nil || reflect.TypeOf(lhs) != reflect.TypeOf(rhs) {
		return false, false
	}
	s := st.Load()
	id, found := lookupID(s, reflect.TypeOf(lhs))
	if !found {
		return false, false
	}
	c, found := s.reg.Comparator(id)
	if !found {
		return false, false
	}
	return c.Equal(lhs, rhs), true
}

// EnumerationOf returns the enumeration view of T. The view is invalid when
// none is registered.
func EnumerationOf[T any]() apis.EnumerationView {
	s := st.Load()
	id, ok := lookupID(s, reflect.TypeFor[T]())
	if !ok {
		return apis.EnumerationView{}
	}
	return s.reg.Enumeration(id)
}

// MetadataOf returns the metadata value of T stored under key.
func MetadataOf[T any](key any) (any, bool) {
	s := st.Load()
	id, ok := lookupID(s, reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	return s.reg.Metadata(id, key)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged. A nil reg or
// res is rebuilt by the resulting builder and unpinned; a non-nil one is
// pinned. The identity allocator is kept, so ids stay valid.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	next := *old

	// Configuration
	if cfg != nil {
		next.cfg = *cfg
	}

	// Builder
	if bld != nil {
		next.bld = bld
	}

	// Registry and resolver: explicit ones are pinned, nil ones rebuilt.
	next.reg, next.preg = reg, reg != nil
	next.res, next.pres = res, res != nil

	// Rebuild and store the new state atomically.
	publish(&next, old)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the unpinned
// registry and resolver. Facets of the old registry are migrated.
//
// The identity allocator keeps the ceiling it was created with.
func SetConfig(cfg apis.Config) {
	update(func(s *state) { s.cfg = cfg })
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(s *state) { s.reg, s.preg = reg, true })
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(s *state) { s.res, s.pres = res, true })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the unpinned layers
// with it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) { s.bld = b })
}

// Identity returns the global identity allocator.
func Identity() *identity.Allocator {
	return st.Load().ids
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops rebuilds of the global registry.
func PinRegistry() {
	swap(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the next reconfiguration rebuild the global registry.
func UnpinRegistry() {
	swap(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops rebuilds of the global resolver.
func PinResolver() {
	swap(func(s *state) { s.pres = true })
}

// UnpinResolver lets the next reconfiguration rebuild the global resolver.
func UnpinResolver() {
	swap(func(s *state) { s.pres = false })
}

// update applies fn to a copy of the current state, rebuilds the unpinned
// layers and publishes the result.
func update(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Derive the new state from a copy; the published one stays untouched.
	next := *old
	fn(&next)

	// Rebuild and store the new state atomically.
	publish(&next, old)
}

// swap applies fn to a copy of the current state and publishes it without
// rebuilding.
func swap(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state and derive the new one from a copy.
	next := *st.Load()
	fn(&next)

	// Store the new state atomically.
	st.Store(&next)
}

// publish rebuilds the unpinned layers of next from old and stores next.
// Callers hold buildMu.
func publish(next, old *state) {
	// Build a new registry unless pinned; facets of the old one migrate.
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}

	// Build a new resolver unless pinned.
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, old.res)
	}

	// Ensure non-nil reg and res.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers copy it and swap the copy in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// ids assigns type ids. It outlives registry rebuilds.
	ids *identity.Allocator
	// types binds canonical names to the types that claimed them. It lives
	// as long as ids.
	types *typeTable
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the reg is pinned.
	preg bool
	// pres indicates whether the res is pinned.
	pres bool
}
