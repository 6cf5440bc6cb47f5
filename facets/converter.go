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

import "dirpx.dev/typedb/apis"

// NewConverter returns a converter producing target from values of type S.
// fn reports false when a value cannot be represented in T.
func NewConverter[S, T any](target apis.TypeID, fn func(S) (T, bool)) apis.Converter {
	return &converter[S, T]{target: target, fn: fn}
}

type converter[S, T any] struct {
	target apis.TypeID
	fn     func(S) (T, bool)
}

func (c *converter[S, T]) Target() apis.TypeID {
	return c.target
}

func (c *converter[S, T]) CanConvert(target apis.TypeID) bool {
	return target == c.target
}

// Convert fails when src is not an S.
func (c *converter[S, T]) Convert(src any) (any, bool) {
	s, ok := src.(S)
	if !ok {
		return nil, false
	}
	dst, ok := c.fn(s)
	if !ok {
		return nil, false
	}
	return dst, true
}
