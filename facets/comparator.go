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
	"cmp"

	"dirpx.dev/typedb/apis"
)

// Equal returns a comparator using == on values of type T. Operands of any
// other dynamic type are never equal.
func Equal[T comparable]() apis.Comparator {
	return equal[T]{}
}

type equal[T comparable] struct{}

func (equal[T]) Equal(lhs, rhs any) bool {
	a, ok := lhs.(T)
	if !ok {
		return false
	}
	b, ok := rhs.(T)
	return ok && a == b
}

// Ordered returns a comparator for ordered types. Equality follows
// cmp.Compare, so NaN equals NaN.
func Ordered[T cmp.Ordered]() apis.Orderer {
	return ordered[T]{}
}

type ordered[T cmp.Ordered] struct{}

func (ordered[T]) Equal(lhs, rhs any) bool {
	a, b, ok := operands[T](lhs, rhs)
	return ok && cmp.Compare(a, b) == 0
}

func (ordered[T]) Less(lhs, rhs any) bool {
	a, b, ok := operands[T](lhs, rhs)
	return ok && cmp.Less(a, b)
}

// ComparatorFunc adapts an equality function on T.
func ComparatorFunc[T any](eq func(lhs, rhs T) bool) apis.Comparator {
	return &funcComparator[T]{eq: eq}
}

type funcComparator[T any] struct {
	eq func(lhs, rhs T) bool
}

func (c *funcComparator[T]) Equal(lhs, rhs any) bool {
	a, b, ok := operands[T](lhs, rhs)
	return ok && c.eq(a, b)
}

func operands[T any](lhs, rhs any) (T, T, bool) {
	a, ok := lhs.(T)
	if !ok {
		var zero T
		return zero, zero, false
	}
	b, ok := rhs.(T)
	return a, b, ok
}
