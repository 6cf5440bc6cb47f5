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

package strategy

import (
	htmltemplate "html/template"
	"reflect"
	"runtime"
	"sync"
	"testing"
	texttemplate "text/template"

	"github.com/pkg/errors"

	"dirpx.dev/typedb/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}

const pkg = "dirpx.dev/typedb/strategy"

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		IncludeBuiltins: true,
		MaxUnwrap:       8,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()
	hideBuiltins := func(c *apis.Config) { c.IncludeBuiltins = false }

	cases := []struct {
		name     string
		val      any
		cfg      apis.Config
		expected string
	}{
		{"plain struct", A{}, cfg(), pkg + ".A"},
		{"ptr", &A{}, cfg(), "*" + pkg + ".A"},
		{"slice", []A{}, cfg(), "[]" + pkg + ".A"},
		{"array", [2]A{}, cfg(), "[2]" + pkg + ".A"},
		{"chan", make(chan A), cfg(), "chan " + pkg + ".A"},
		{"recv chan", make(<-chan A), cfg(), "<-chan " + pkg + ".A"},
		{"send chan", make(chan<- A), cfg(), "chan<- " + pkg + ".A"},
		{"map", map[string]A{}, cfg(), "map[string]" + pkg + ".A"},
		{"builtin visible", 42, cfg(), "int"},
		{"builtin hidden", 42, cfg(hideBuiltins), ""},
		{"builtin elem with builtins hidden", []int{}, cfg(hideBuiltins), "[]int"},
		{"generic keeps params", G[int]{}, cfg(), pkg + ".G[int]"},
		{"generic args differ", G[string]{}, cfg(), pkg + ".G[string]"},
		{"anonymous struct", struct{ X int }{}, cfg(), "struct { X int }"},
		{"empty struct", struct{}{}, cfg(), "struct {}"},
		{"struct field text template", struct{ T *texttemplate.Template }{}, cfg(), "struct { T *text/template.Template }"},
		{"struct field html template", struct{ T *htmltemplate.Template }{}, cfg(), "struct { T *html/template.Template }"},
		{"struct embedding unexported tag", struct {
			A
			n int `json:"n"`
		}{}, cfg(), "struct { " + pkg + ".A; " + pkg + `.n int "json:\"n\"" }`},
		{"func text template", (func(*texttemplate.Template, ...int) (A, error))(nil), cfg(), "func(*text/template.Template, ...int) (" + pkg + ".A, error)"},
		{"func html template", (func(*htmltemplate.Template))(nil), cfg(), "func(*html/template.Template)"},
		{"func single result", (func() A)(nil), cfg(), "func() " + pkg + ".A"},
		{"empty interface elem", map[string]any{}, cfg(), "map[string]interface {}"},
		{"interface methods", (*interface {
			Name() string
			m(int)
		})(nil), cfg(), "*interface { Name() string; " + pkg + ".m(int) }"},
		{"struct field too deep", struct{ P **A }{}, cfg(func(c *apis.Config) { c.MaxUnwrap = 2 }), ""},
		{"nested too deep", [][]*A{}, cfg(func(c *apis.Config) { c.MaxUnwrap = 2 }), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, tc.cfg)
			if ok != (tc.expected != "") {
				t.Fatalf("ok = %v for %T, want %v", ok, tc.val, tc.expected != "")
			}
			if got != tc.expected {
				t.Fatalf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestReflectStrategy_Nil(t *testing.T) {
	s := NewReflectStrategy()
	if got, ok := s.TryResolve(nil, cfg()); ok || got != "" {
		t.Fatalf("TryResolve(nil) = (%q,%v), want ('',false)", got, ok)
	}
	if got, ok := s.TryResolveType(nil, cfg()); ok || got != "" {
		t.Fatalf("TryResolveType(nil) = (%q,%v), want ('',false)", got, ok)
	}
}

func TestCanonicalName_Errors(t *testing.T) {
	if _, err := CanonicalName(nil, cfg()); !errors.Is(err, ErrNilType) {
		t.Fatalf("nil: got %v, want ErrNilType", err)
	}
	if _, err := CanonicalName(reflect.TypeOf(0), cfg(func(c *apis.Config) { c.IncludeBuiltins = false })); !errors.Is(err, ErrBuiltinHidden) {
		t.Fatalf("builtin: got %v, want ErrBuiltinHidden", err)
	}
	if _, err := CanonicalName(reflect.TypeOf((**A)(nil)), cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("deep: got %v, want ErrTooDeep", err)
	}
	// MaxUnwrap <= 0 falls back to the default depth.
	if got, err := CanonicalName(reflect.TypeOf((**A)(nil)), cfg(func(c *apis.Config) { c.MaxUnwrap = 0 })); err != nil || got != "**"+pkg+".A" {
		t.Fatalf("default depth: got (%q,%v)", got, err)
	}
}

func TestReflectStrategy_ConfigAffectsCache(t *testing.T) {
	s := NewReflectStrategy()
	if got, _ := s.TryResolve(7, cfg()); got != "int" {
		t.Fatalf("visible: got %q, want int", got)
	}
	if got, ok := s.TryResolve(7, cfg(func(c *apis.Config) { c.IncludeBuiltins = false })); ok || got != "" {
		t.Fatalf("hidden: got (%q,%v), want ('',false)", got, ok)
	}
}

func TestReflectStrategy_Concurrent(t *testing.T) {
	s := NewReflectStrategy()
	vals := []any{A{}, &A{}, []A{}, G[int]{}, map[int]A{}}
	want := make([]string, len(vals))
	for i, v := range vals {
		want[i], _ = s.TryResolve(v, cfg())
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := i % len(vals)
				if got, _ := s.TryResolve(vals[j], cfg()); got != want[j] {
					t.Errorf("unstable name for %T: %q vs %q", vals[j], got, want[j])
					return
				}
			}
		}()
	}
	wg.Wait()
}
