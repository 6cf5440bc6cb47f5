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

package facets

import (
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"dirpx.dev/typedb/apis"
)

var (
	// ErrEmptyEnumName is returned for an enum value without a name.
	ErrEmptyEnumName = errors.New("typedb(facets): empty enum name")
	// ErrDuplicateEnumName is returned when two values share a name.
	ErrDuplicateEnumName = errors.New("typedb(facets): duplicate enum name")
	// ErrDuplicateEnumValue is returned when two names share a value.
	ErrDuplicateEnumValue = errors.New("typedb(facets): duplicate enum value")
)

// EnumValue is one declared name/value pair.
type EnumValue[T constraints.Integer] struct {
	Name  string
	Value T
}

// Enum is a bidirectional name/value table for an integer enum type T.
type Enum[T constraints.Integer] struct {
	names  []string
	values []T
}

var _ apis.Enumeration = (*Enum[int])(nil)

// NewEnum builds an Enum from pairs in declaration order. Names and values
// must both be unique.
func NewEnum[T constraints.Integer](pairs ...EnumValue[T]) (*Enum[T], error) {
	e := &Enum[T]{
		names:  make([]string, 0, len(pairs)),
		values: make([]T, 0, len(pairs)),
	}
	for _, p := range pairs {
		switch {
		case p.Name == "":
			return nil, errors.Wrapf(ErrEmptyEnumName, "value %d", p.Value)
		case slices.Contains(e.names, p.Name):
			return nil, errors.Wrapf(ErrDuplicateEnumName, "%q", p.Name)
		case slices.Contains(e.values, p.Value):
			return nil, errors.Wrapf(ErrDuplicateEnumValue, "%d (%q)", p.Value, p.Name)
		}
		e.names = append(e.names, p.Name)
		e.values = append(e.values, p.Value)
	}
	return e, nil
}

// MustEnum is like NewEnum but panics on error. It is meant for
// package-level registration.
func MustEnum[T constraints.Integer](pairs ...EnumValue[T]) *Enum[T] {
	e, err := NewEnum(pairs...)
	if err != nil {
		panic(err)
	}
	return e
}

// Len returns the number of declared values.
func (e *Enum[T]) Len() int {
	return len(e.names)
}

// Names returns the declared names.
func (e *Enum[T]) Names() []string {
	return slices.Clone(e.names)
}

// Values returns the declared values boxed as T.
func (e *Enum[T]) Values() []any {
	out := make([]any, len(e.values))
	for i, v := range e.values {
		out[i] = v
	}
	return out
}

// Name returns the name declared for v.
//
// Enums are small, so a linear scan is as fast as a map here and avoids the
// extra allocation.
func (e *Enum[T]) Name(v T) (string, bool) {
	if i := slices.Index(e.values, v); i >= 0 {
		return e.names[i], true
	}
	return "", false
}

// Value returns the value declared for name.
func (e *Enum[T]) Value(name string) (T, bool) {
	if i := slices.Index(e.names, name); i >= 0 {
		return e.values[i], true
	}
	var zero T
	return zero, false
}

// NameOf returns the name declared for value, which must be a T.
func (e *Enum[T]) NameOf(value any) (string, bool) {
	v, ok := value.(T)
	if !ok {
		return "", false
	}
	return e.Name(v)
}

// ValueOf returns the value declared for name as a T.
func (e *Enum[T]) ValueOf(name string) (any, bool) {
	v, ok := e.Value(name)
	if !ok {
		return nil, false
	}
	return v, true
}
