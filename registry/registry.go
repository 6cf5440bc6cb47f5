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

package registry

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/config"
	"dirpx.dev/typedb/utils/idlist"
)

var (
	// ErrNilFacet is returned when a nil converter, comparator or enumeration is provided.
	ErrNilFacet = errors.New("typedb(registry): nil facet provided")
	// ErrConflictingRegistration indicates an attempt to register a second,
	// different facet where only one is allowed.
	ErrConflictingRegistration = errors.New("typedb(registry): conflicting facet registration")
	// ErrSealed is returned for registrations after Seal.
	ErrSealed = errors.New("typedb(registry): registry is sealed")
)

// Option configures a registry.
type Option func(*registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l *slog.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs a Registry configured by cfg.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	if cfg.InitialCapacity < 0 {
		cfg.InitialCapacity = config.DefaultInitialCapacity
	}
	r := &registry{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.init()
	return r
}

// registry stores each facet kind in its own id-sorted list.
//
// Until Seal, every operation takes mu. After Seal the lists are immutable
// and lookups skip the lock.
type registry struct {
	// cfg holds the conflict policy and capacity hint.
	cfg apis.Config
	// log receives registration events.
	log *slog.Logger
	// mu guards the lists while registration is open.
	mu sync.RWMutex
	// sealed is set once registration is closed.
	sealed atomic.Bool

	converters   *idlist.List[apis.TypeID, apis.Converter]
	comparators  *idlist.List[apis.TypeID, apis.Comparator]
	enumerations *idlist.List[apis.TypeID, apis.Enumeration]
	metadata     *idlist.List[apis.TypeID, []apis.Metadata]
}

func (r *registry) init() {
	n := r.cfg.InitialCapacity
	r.converters = idlist.New[apis.TypeID, apis.Converter](n)
	r.comparators = idlist.New[apis.TypeID, apis.Comparator](n)
	r.enumerations = idlist.New[apis.TypeID, apis.Enumeration](n)
	r.metadata = idlist.New[apis.TypeID, []apis.Metadata](n)
}

// RegisterConverter stores c keyed by source. A second converter for the same
// (source, target) pair is handled according to the conflict policy.
func (r *registry) RegisterConverter(source apis.TypeID, c apis.Converter) error {
	if isNil(c) {
		return ErrNilFacet
	}
	target := c.Target()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return errors.Wrapf(ErrSealed, "converter %s -> %s", source, target)
	}

	if i, ok := r.converters.Index(source); ok {
		for ; i < r.converters.Len() && r.converters.At(i).ID == source; i++ {
			old := r.converters.At(i).Value
			if old.Target() != target {
				continue
			}
			if sameFacet(old, c) {
				return nil
			}
			if r.cfg.ConflictPolicy != apis.Replace {
				r.log.Warn("rejected converter registration", "type_id", source, "target", target)
				return errors.Wrapf(ErrConflictingRegistration, "converter %s -> %s", source, target)
			}
			r.converters.Set(i, c)
			r.release("converter", source, old)
			r.log.Debug("replaced facet", "facet", "converter", "type_id", source, "target", target)
			return nil
		}
	}

	r.converters.Insert(source, c)
	r.log.Debug("registered facet", "facet", "converter", "type_id", source, "target", target)
	return nil
}

// RegisterComparator records a non-owning reference to c for t.
func (r *registry) RegisterComparator(t apis.TypeID, c apis.Comparator) error {
	if isNil(c) {
		return ErrNilFacet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return registerUnique(r, r.comparators, "comparator", t, c, false)
}

// RegisterEnumeration stores e for t and takes ownership of it.
func (r *registry) RegisterEnumeration(t apis.TypeID, e apis.Enumeration) error {
	if isNil(e) {
		return ErrNilFacet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return registerUnique(r, r.enumerations, "enumeration", t, e, true)
}

// registerUnique inserts v for t into a list that holds at most one entry per
// id. Callers hold r.mu.
func registerUnique[V any](r *registry, l *idlist.List[apis.TypeID, V], facet string, t apis.TypeID, v V, owned bool) error {
	if r.sealed.Load() {
		return errors.Wrapf(ErrSealed, "%s for %s", facet, t)
	}

	i, ok := l.Index(t)
	if !ok {
		l.Insert(t, v)
		r.log.Debug("registered facet", "facet", facet, "type_id", t)
		return nil
	}

	old := l.At(i).Value
	if sameFacet(old, v) {
		return nil
	}
	if r.cfg.ConflictPolicy != apis.Replace {
		r.log.Warn("rejected "+facet+" registration", "type_id", t)
		return errors.Wrapf(ErrConflictingRegistration, "%s for %s", facet, t)
	}

	l.Set(i, v)
	if owned {
		r.release(facet, t, old)
	}
	r.log.Debug("replaced facet", "facet", facet, "type_id", t)
	return nil
}

// RegisterMetadata appends entries to the metadata list of t, creating it if
// absent. Keys are not deduplicated; lookups return the first match.
func (r *registry) RegisterMetadata(t apis.TypeID, entries ...apis.Metadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return errors.Wrapf(ErrSealed, "metadata for %s", t)
	}

	if i, ok := r.metadata.Index(t); ok {
		cur := r.metadata.At(i).Value
		next := make([]apis.Metadata, 0, len(cur)+len(entries))
		next = append(append(next, cur...), entries...)
		r.metadata.Set(i, next)
	} else {
		r.metadata.Insert(t, slices.Clone(entries))
	}
	r.log.Debug("registered facet", "facet", "metadata", "type_id", t, "entries", len(entries))
	return nil
}

// Converter binary-searches the run of converters for source and scans it
// for target.
func (r *registry) Converter(source, target apis.TypeID) (apis.Converter, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	for _, e := range r.converters.Run(source) {
		if e.Value.Target() == target {
			return e.Value, true
		}
	}
	return nil, false
}

// Comparator returns the comparator registered for t.
func (r *registry) Comparator(t apis.TypeID) (apis.Comparator, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return r.comparators.Find(t)
}

// Metadata returns the value of the first entry of t whose key equals key.
func (r *registry) Metadata(t apis.TypeID, key any) (any, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	list, ok := r.metadata.Find(t)
	if !ok {
		return nil, false
	}
	for _, m := range list {
		if keysEqual(m.Key, key) {
			return m.Value, true
		}
	}
	return nil, false
}

// Enumeration returns a view over the enumeration of t, invalid if absent.
func (r *registry) Enumeration(t apis.TypeID) apis.EnumerationView {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	e, ok := r.enumerations.Find(t)
	if !ok {
		return apis.EnumerationView{}
	}
	return apis.NewEnumerationView(t, e)
}

// Snapshot returns copies of all lists in id order.
func (r *registry) Snapshot() apis.Snapshot {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	s := apis.Snapshot{
		Converters:   entries(r.converters),
		Comparators:  entries(r.comparators),
		Enumerations: entries(r.enumerations),
		Metadata:     entries(r.metadata),
	}
	for i := range s.Metadata {
		s.Metadata[i].Value = slices.Clone(s.Metadata[i].Value)
	}
	return s
}

func entries[V any](l *idlist.List[apis.TypeID, V]) []apis.Entry[V] {
	out := make([]apis.Entry[V], 0, l.Len())
	for id, v := range l.All() {
		out = append(out, apis.Entry[V]{Type: id, Value: v})
	}
	return out
}

// Count returns the number of converters, comparators and enumerations plus
// the number of metadata pairs.
func (r *registry) Count() int {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	n := r.converters.Len() + r.comparators.Len() + r.enumerations.Len()
	for _, list := range r.metadata.All() {
		n += len(list)
	}
	return n
}

// Seal closes registration. Lookups after Seal do not lock.
func (r *registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Swap(true) {
		return
	}
	r.log.Info("registry sealed",
		"converters", r.converters.Len(),
		"comparators", r.comparators.Len(),
		"enumerations", r.enumerations.Len(),
		"metadata_types", r.metadata.Len(),
	)
}

// Sealed reports whether Seal was called.
func (r *registry) Sealed() bool {
	return r.sealed.Load()
}

// Reset drops all facets without releasing them and reopens registration.
// It must not run concurrently with lookups on a sealed registry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

func (r *registry) reset() {
	r.converters.Reset()
	r.comparators.Reset()
	r.enumerations.Reset()
	r.metadata.Reset()
	r.sealed.Store(false)
}

// Close releases every owned facet (converters and enumerations that
// implement io.Closer) and then resets the registry. Comparators are never
// released. It must not run concurrently with lookups on a sealed registry.
func (r *registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		err    error
		failed int
	)
	// Collect every close error; each stays reachable through errors.Is.
	collect := func(cerr error) {
		failed++
		if err == nil {
			err = cerr
			return
		}
		err = fmt.Errorf("%w; %w", err, cerr)
	}
	for id, c := range r.converters.All() {
		if cerr := closeOwned(c); cerr != nil {
			collect(errors.Wrapf(cerr, "close converter %s -> %s", id, c.Target()))
		}
	}
	for id, e := range r.enumerations.All() {
		if cerr := closeOwned(e); cerr != nil {
			collect(errors.Wrapf(cerr, "close enumeration %s", id))
		}
	}
	r.reset()
	r.log.Info("registry closed", "errors", failed)
	return err
}

// release closes a replaced owned facet, logging instead of failing the
// registration that replaced it.
func (r *registry) release(facet string, t apis.TypeID, old any) {
	if err := closeOwned(old); err != nil {
		r.log.Warn("failed to release replaced facet", "facet", facet, "type_id", t, "error", err)
	}
}

func closeOwned(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
