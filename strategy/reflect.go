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
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("typedb(strategy): nil reflect.Type provided")
	// ErrTooDeep is returned when a composite type nests deeper than MaxUnwrap.
	ErrTooDeep = errors.New("typedb(strategy): type nests deeper than MaxUnwrap")
	// ErrBuiltinHidden is returned for a builtin type when IncludeBuiltins is off.
	ErrBuiltinHidden = errors.New("typedb(strategy): builtin types are not named")
)

// NewReflectStrategy creates an apis.Strategy that derives canonical names
// via reflection, with memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. Names are structural and use
// full import paths, so they are identical in every module that sees the
// same type and distinct for distinct types.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect naming.
type cacheKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int
}

// typeNameCache caches canonical names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolve names v's dynamic type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg)
}

// TryResolveType names t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg)
}

// byType resolves the canonical name of t with memoization. Unnameable types
// are cached as "".
func byType(t reflect.Type, cfg apis.Config) (string, bool) {
	key := cacheKey{t: t, includeBuiltin: cfg.IncludeBuiltins, maxUnwrap: cfg.MaxUnwrap}
	if v, ok := typeNameCache.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}
	name, err := CanonicalName(t, cfg)
	if err != nil {
		name = ""
	}
	typeNameCache.Store(key, name)
	return name, name != ""
}

// CanonicalName returns the structural name of t:
//
//   - named types:    "import/path.Name" (type arguments kept, e.g. "p.Box[int]")
//   - builtins:       "int", "string", ... (ErrBuiltinHidden unless IncludeBuiltins)
//   - pointers:       "*" + elem
//   - slices/arrays:  "[]" + elem, "[N]" + elem
//   - maps:           "map[" + key + "]" + elem
//   - channels:       "chan " / "<-chan " / "chan<- " + elem
//   - structs:        "struct { Name T "tag"; Embedded }", unexported field
//     names qualified as "import/path.name"
//   - funcs:          "func(A, ...B) R" or "func(A) (R1, R2)"
//   - interfaces:     "interface { M(A) R; import/path.m() }"
//
// Every type name inside the result carries its full import path, so two
// distinct package-level types never share a name. Types declared inside
// functions are the exception: they share the name of their package scope.
//
// The builtin rule applies to t itself only; "[]int" is always nameable.
// Every level of nesting (element, key, field, parameter, result) costs one
// unit of MaxUnwrap.
// If MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func CanonicalName(t reflect.Type, cfg apis.Config) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	if t.Name() != "" && t.PkgPath() == "" && !cfg.IncludeBuiltins {
		return "", ErrBuiltinHidden
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	return structural(t, maxUnwrap)
}

func structural(t reflect.Type, budget int) (string, error) {
	if t.Name() != "" {
		if p := t.PkgPath(); p != "" {
			return p + "." + t.Name(), nil
		}
		return t.Name(), nil
	}

	var prefix string
	switch t.Kind() {
	case reflect.Pointer:
		prefix = "*"
	case reflect.Slice:
		prefix = "[]"
	case reflect.Array:
		prefix = "[" + strconv.Itoa(t.Len()) + "]"
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			prefix = "<-chan "
		case reflect.SendDir:
			prefix = "chan<- "
		default:
			prefix = "chan "
		}
	case reflect.Map:
		if budget == 0 {
			return "", ErrTooDeep
		}
		k, err := structural(t.Key(), budget-1)
		if err != nil {
			return "", err
		}
		prefix = "map[" + k + "]"
	case reflect.Struct:
		return structName(t, budget)
	case reflect.Func:
		sig, err := signature(t, budget)
		if err != nil {
			return "", err
		}
		return "func" + sig, nil
	case reflect.Interface:
		return interfaceName(t, budget)
	default:
		return t.String(), nil
	}

	if budget == 0 {
		return "", ErrTooDeep
	}
	elem, err := structural(t.Elem(), budget-1)
	if err != nil {
		return "", err
	}
	return prefix + elem, nil
}

// member names a field, parameter or result type one level below its parent.
func member(t reflect.Type, budget int) (string, error) {
	if budget == 0 {
		return "", ErrTooDeep
	}
	return structural(t, budget-1)
}

// qualified prefixes unexported identifiers with their package path.
func qualified(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}
	return pkgPath + "." + name
}

func structName(t reflect.Type, budget int) (string, error) {
	if t.NumField() == 0 {
		return "struct {}", nil
	}
	var b strings.Builder
	b.WriteString("struct { ")
	for i := range t.NumField() {
		f := t.Field(i)
		ft, err := member(f.Type, budget)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("; ")
		}
		if !f.Anonymous {
			b.WriteString(qualified(f.PkgPath, f.Name))
			b.WriteByte(' ')
		}
		b.WriteString(ft)
		if f.Tag != "" {
			b.WriteByte(' ')
			b.WriteString(strconv.Quote(string(f.Tag)))
		}
	}
	b.WriteString(" }")
	return b.String(), nil
}

// signature renders "(params) results" of the func type t.
func signature(t reflect.Type, budget int) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for i := range t.NumIn() {
		in := t.In(i)
		if i > 0 {
			b.WriteString(", ")
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			b.WriteString("...")
			in = in.Elem()
		}
		name, err := member(in, budget)
		if err != nil {
			return "", err
		}
		b.WriteString(name)
	}
	b.WriteByte(')')

	switch t.NumOut() {
	case 0:
	case 1:
		name, err := member(t.Out(0), budget)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + name)
	default:
		b.WriteString(" (")
		for i := range t.NumOut() {
			name, err := member(t.Out(i), budget)
			if err != nil {
				return "", err
			}
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
		}
		b.WriteByte(')')
	}
	return b.String(), nil
}

func interfaceName(t reflect.Type, budget int) (string, error) {
	if t.NumMethod() == 0 {
		return "interface {}", nil
	}
	var b strings.Builder
	b.WriteString("interface { ")
	for i := range t.NumMethod() {
		m := t.Method(i)
		if budget == 0 {
			return "", ErrTooDeep
		}
		sig, err := signature(m.Type, budget-1)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(qualified(m.PkgPath, m.Name))
		b.WriteString(sig)
	}
	b.WriteString(" }")
	return b.String(), nil
}
