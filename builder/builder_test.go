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

package builder_test

import (
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/builder"
	"dirpx.dev/typedb/config"
	"dirpx.dev/typedb/facets"
	"dirpx.dev/typedb/registry"
)

// userType is a plain named type with no special behavior.
// It is used to test fallback via reflection.
type userType struct{}

// hotType implements apis.TypeNamer and is used to verify that the
// namer strategy takes priority over reflection.
type hotType struct{}

func (hotType) TypeName() string { return "hot-name" }

const (
	tInt apis.TypeID = iota + 1
	tString
	tLevel
)

type level int

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working, empty Registry.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(config.DefaultConfig(), nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}
	if c := reg.Count(); c != 0 {
		t.Fatalf("fresh registry Count = %d, want 0", c)
	}
	if err := reg.RegisterComparator(tInt, facets.Equal[int]()); err != nil {
		t.Fatalf("RegisterComparator failed: %v", err)
	}
	if _, ok := reg.Comparator(tInt); !ok {
		t.Fatal("Comparator not found after registration")
	}
}

// TestBuildRegistry_Migrates asserts that every facet of prev is carried
// into the new registry.
func TestBuildRegistry_Migrates(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := b.BuildRegistry(cfg, nil)
	conv := facets.NewConverter(tString, func(i int) (string, bool) { return "x", true })
	enum := facets.MustEnum(facets.EnumValue[level]{Name: "low", Value: 0})
	mustNoErr(t, prev.RegisterConverter(tInt, conv))
	mustNoErr(t, prev.RegisterComparator(tInt, facets.Equal[int]()))
	mustNoErr(t, prev.RegisterEnumeration(tLevel, enum))
	mustNoErr(t, prev.RegisterMetadata(tLevel, apis.NewMetadata("k", 1), apis.NewMetadata("k", 2)))

	next := b.BuildRegistry(config.NewConfig(config.WithInitialCapacity(4)), prev)
	if next == prev {
		t.Fatal("BuildRegistry returned prev")
	}
	if got, want := next.Count(), prev.Count(); got != want {
		t.Fatalf("Count = %d, want %d", got, want)
	}
	if c, ok := next.Converter(tInt, tString); !ok || c != conv {
		t.Fatalf("converter not migrated: %v %v", c, ok)
	}
	if _, ok := next.Comparator(tInt); !ok {
		t.Fatal("comparator not migrated")
	}
	if v := next.Enumeration(tLevel); !v.IsValid() || v.Enumeration() != apis.Enumeration(enum) {
		t.Fatal("enumeration not migrated")
	}
	if v, ok := next.Metadata(tLevel, "k"); !ok || v != 1 {
		t.Fatalf("metadata not migrated in order: %v %v", v, ok)
	}
	if next.Sealed() {
		t.Fatal("new registry sealed although prev was not")
	}
}

// TestBuildRegistry_KeepsSeal asserts that sealing survives a rebuild.
func TestBuildRegistry_KeepsSeal(t *testing.T) {
	b := builder.New()
	prev := b.BuildRegistry(config.DefaultConfig(), nil)
	mustNoErr(t, prev.RegisterComparator(tInt, facets.Equal[int]()))
	prev.Seal()

	next := b.BuildRegistry(config.DefaultConfig(), prev)
	if !next.Sealed() {
		t.Fatal("new registry not sealed")
	}
	if _, ok := next.Comparator(tInt); !ok {
		t.Fatal("comparator not migrated before seal")
	}
}

// TestBuildRegistry_ExternalPrev asserts that any apis.Registry can be
// migrated, not only one created by this builder.
func TestBuildRegistry_ExternalPrev(t *testing.T) {
	prev := registry.New(config.DefaultConfig())
	mustNoErr(t, prev.RegisterMetadata(tString, apis.NewMetadata("doc", "text")))

	next := builder.New().BuildRegistry(config.DefaultConfig(), prev)
	if v, ok := next.Metadata(tString, "doc"); !ok || v != "text" {
		t.Fatalf("metadata not migrated: %v %v", v, ok)
	}
}

// TestBuildResolver_Order_NamerThenReflect verifies resolution priority:
// 1. If the type implements apis.TypeNamer, use TypeName().
// 2. Otherwise, fall back to the reflect-based strategy ("pkgpath.Type").
func TestBuildResolver_Order_NamerThenReflect(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	res := b.BuildResolver(cfg, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	// (1) Namer should win.
	if got := res.Resolve(hotType{}, cfg); got != "hot-name" {
		t.Fatalf("Namer priority broken: got %q want %q", got, "hot-name")
	}

	// (2) Reflect strategy is the fallback.
	got := res.ResolveType(reflect.TypeOf(userType{}), cfg)
	if got != "dirpx.dev/typedb/builder_test.userType" {
		t.Fatalf("Reflect strategy name: got %q", got)
	}
	if !strings.HasPrefix(res.ResolveType(reflect.TypeOf([]hotType{}), cfg), "[]") {
		t.Fatal("slice of a named type should keep its structure")
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Resolve/ResolveType concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	res := b.BuildResolver(cfg, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	types := []reflect.Type{
		reflect.TypeOf(userType{}),
		reflect.TypeOf(hotType{}),
		reflect.TypeOf(&userType{}),
		reflect.TypeOf([]userType{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[(i+id)%len(types)]
				_ = res.ResolveType(tt, cfg)
				_ = res.Resolve(hotType{}, cfg)
			}
		}(w)
	}

	wg.Wait()
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
