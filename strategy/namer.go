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

	"dirpx.dev/typedb/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.TypeNamer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy lets a type declare its own canonical name. Because the name
// must not depend on instance state, it is read from a zero value, so the
// strategy also works on bare types.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

var namerType = reflect.TypeFor[apis.TypeNamer]()

// TryResolve names v's dynamic type.
func (s *namerStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType handles t only if t itself declares TypeName. A pointer *T
// whose element T declares TypeName is not handled, so *T and T never share
// a name.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if !DeclaresName(t) {
		return "", false
	}

	var zero reflect.Value
	if t.Kind() == reflect.Pointer {
		zero = reflect.New(t.Elem())
	} else {
		zero = reflect.New(t).Elem()
	}

	name := zero.Interface().(apis.TypeNamer).TypeName()
	return name, name != ""
}

// DeclaresName reports whether t names itself through apis.TypeNamer. Such
// names are chosen by the type's author, so distinct types may share one on
// purpose.
func DeclaresName(t reflect.Type) bool {
	if t == nil || t.Kind() == reflect.Interface || !t.Implements(namerType) {
		return false
	}
	return t.Kind() != reflect.Pointer || !t.Elem().Implements(namerType)
}
