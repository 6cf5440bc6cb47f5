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

// Package identity mints dense type ids from canonical type names.
//
// Two names map to the same id exactly when their FNV-1a fingerprints match,
// which makes ids agree across independently built modules that resolve the
// same canonical name. A fingerprint shared by two different names is
// reported as a collision instead of silently merging the types.
package identity

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/config"
	"dirpx.dev/typedb/utils/hash"
)

var (
	// ErrEmptyName is returned when an empty type name is provided.
	ErrEmptyName = errors.New("typedb(identity): empty type name")
	// ErrTypeCountExceeded is returned once the allocator is full.
	ErrTypeCountExceeded = errors.New("typedb(identity): maximum type count exceeded")
	// ErrFingerprintCollision is returned when two names share a fingerprint.
	ErrFingerprintCollision = errors.New("typedb(identity): fingerprint collision")
	// ErrUnknownType is returned for ids the allocator never assigned.
	ErrUnknownType = errors.New("typedb(identity): unknown type id")
	// ErrTooManyBases is returned when a type lists more direct bases than
	// apis.MaxInheritTypesCount.
	ErrTooManyBases = errors.New("typedb(identity): too many base types")
)

// Option configures an Allocator.
type Option func(*Allocator)

// WithLogger sets the logger used for assignment events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.log = l
		}
	}
}

// Allocator hands out type ids 1..MaxTypeCount in assignment order.
// It is safe for concurrent use.
type Allocator struct {
	log *slog.Logger
	max int

	mu sync.RWMutex
	// byFingerprint maps a name fingerprint to its id.
	byFingerprint map[uint64]apis.TypeID
	// names and fingerprints are indexed by id; index 0 is the invalid id.
	names        []string
	fingerprints []uint64
	// bases holds the direct bases of a type.
	bases map[apis.TypeID][]apis.TypeID
}

// New returns an empty Allocator capped at cfg.MaxTypeCount.
func New(cfg apis.Config, opts ...Option) *Allocator {
	max := cfg.MaxTypeCount
	if max <= 0 || max > apis.MaxTypeCount {
		max = config.DefaultMaxTypeCount
	}
	a := &Allocator{
		log:           slog.New(slog.DiscardHandler),
		max:           max,
		byFingerprint: make(map[uint64]apis.TypeID),
		names:         []string{""},
		fingerprints:  []uint64{0},
		bases:         make(map[apis.TypeID][]apis.TypeID),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign returns the id of name, minting a new one on first sight.
func (a *Allocator) Assign(name string) (apis.TypeID, error) {
	if name == "" {
		return apis.InvalidTypeID, ErrEmptyName
	}
	fp := hash.Sum(name)

	// Fast read path for already assigned names.
	a.mu.RLock()
	id, err, ok := a.lookup(name, fp)
	a.mu.RUnlock()
	if ok {
		return id, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Re-check under lock in case another goroutine assigned meanwhile.
	if id, err, ok := a.lookup(name, fp); ok {
		return id, err
	}
	if len(a.names)-1 >= a.max {
		return apis.InvalidTypeID, errors.Wrapf(ErrTypeCountExceeded, "%q (max %d)", name, a.max)
	}

	id = apis.TypeID(len(a.names))
	a.names = append(a.names, name)
	a.fingerprints = append(a.fingerprints, fp)
	a.byFingerprint[fp] = id
	a.log.Debug("assigned type id", "type_id", id, "name", name, "fingerprint", fp)
	return id, nil
}

// lookup resolves a fingerprint. ok reports whether the fingerprint is known;
// err is set if it belongs to a different name. Callers hold a.mu.
func (a *Allocator) lookup(name string, fp uint64) (apis.TypeID, error, bool) {
	id, ok := a.byFingerprint[fp]
	if !ok {
		return apis.InvalidTypeID, nil, false
	}
	if a.names[id] != name {
		return apis.InvalidTypeID, errors.Wrapf(ErrFingerprintCollision, "%q and %q", name, a.names[id]), true
	}
	return id, nil, true
}

// Lookup returns the id of name without assigning one.
func (a *Allocator) Lookup(name string) (apis.TypeID, bool) {
	if name == "" {
		return apis.InvalidTypeID, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, err, ok := a.lookup(name, hash.Sum(name))
	return id, ok && err == nil
}

// Name returns the canonical name id was assigned for.
func (a *Allocator) Name(id apis.TypeID) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.known(id) {
		return "", false
	}
	return a.names[id], true
}

// Fingerprint returns the fingerprint of the name id was assigned for.
func (a *Allocator) Fingerprint(id apis.TypeID) (uint64, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.known(id) {
		return 0, false
	}
	return a.fingerprints[id], true
}

// Count returns the number of assigned ids.
func (a *Allocator) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.names) - 1
}

// known reports whether id was assigned. Callers hold a.mu.
func (a *Allocator) known(id apis.TypeID) bool {
	return id.IsValid() && int(id) < len(a.names)
}

// SetBases records the direct bases of id, replacing earlier ones. Every id
// must be assigned, a type cannot be its own base, and at most
// apis.MaxInheritTypesCount bases are allowed.
func (a *Allocator) SetBases(id apis.TypeID, bases ...apis.TypeID) error {
	if len(bases) > apis.MaxInheritTypesCount {
		return errors.Wrapf(ErrTooManyBases, "%s has %d (max %d)", id, len(bases), apis.MaxInheritTypesCount)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.known(id) {
		return errors.Wrapf(ErrUnknownType, "%s", id)
	}
	for _, b := range bases {
		if !a.known(b) {
			return errors.Wrapf(ErrUnknownType, "base %s of %s", b, id)
		}
		if b == id {
			return errors.Errorf("typedb(identity): %s cannot be its own base", id)
		}
	}
	a.bases[id] = slices.Compact(slices.Sorted(slices.Values(bases)))
	return nil
}

// Bases returns the direct bases of id in ascending order.
func (a *Allocator) Bases(id apis.TypeID) []apis.TypeID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.bases[id])
}
