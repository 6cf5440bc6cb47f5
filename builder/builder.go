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

package builder

import (
	"log/slog"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/registry"
	"dirpx.dev/typedb/resolver"
	"dirpx.dev/typedb/strategy"
)

// Option configures the builder.
type Option func(*builder)

// WithLogger sets the logger handed to the registries the builder creates.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder is the default apis.Builder.
type builder struct {
	log *slog.Logger
}

// BuildRegistry builds and returns a new apis.Registry for cfg. If prev is
// non-nil, its facets are registered into the new registry under cfg's
// conflict policy, and the new registry is sealed if prev was.
//
// The migrated converters and enumerations are shared with prev. Callers
// must drop prev afterwards instead of closing it.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg, registry.WithLogger(b.log))
	if prev == nil {
		return nreg
	}

	snap := prev.Snapshot()
	for _, e := range snap.Converters {
		b.migrate(nreg.RegisterConverter(e.Type, e.Value), "converter", e.Type)
	}
	for _, e := range snap.Comparators {
		b.migrate(nreg.RegisterComparator(e.Type, e.Value), "comparator", e.Type)
	}
	for _, e := range snap.Enumerations {
		b.migrate(nreg.RegisterEnumeration(e.Type, e.Value), "enumeration", e.Type)
	}
	for _, e := range snap.Metadata {
		b.migrate(nreg.RegisterMetadata(e.Type, e.Value...), "metadata", e.Type)
	}
	if prev.Sealed() {
		nreg.Seal()
	}
	b.log.Debug("migrated registry", "facets", nreg.Count())
	return nreg
}

func (b *builder) migrate(err error, facet string, t apis.TypeID) {
	if err != nil {
		b.log.Warn("dropped facet during migration", "facet", facet, "type_id", t, "error", err)
	}
}

// BuildResolver builds and returns a new apis.Resolver. The chain consults
// apis.TypeNamer first and falls back to the structural reflection name.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewReflectStrategy(),
	)
}
