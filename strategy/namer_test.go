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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/typedb/apis"
	"dirpx.dev/typedb/strategy"
)

type namedType struct{ n int }

func (namedType) TypeName() string { return "custom.Name" }

type ptrNamed struct{}

func (*ptrNamed) TypeName() string { return "custom.Ptr" }

type iface interface{ apis.TypeNamer }

func TestNamerStrategy(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{} // config is irrelevant for the namer strategy

	tests := []struct {
		name   string
		typ    reflect.Type
		want   string
		wantOK bool
	}{
		{"value receiver", reflect.TypeOf(namedType{}), "custom.Name", true},
		{"pointer to value-receiver type falls through", reflect.TypeOf(&namedType{}), "", false},
		{"pointer receiver", reflect.TypeOf(&ptrNamed{}), "custom.Ptr", true},
		{"value of pointer-receiver type", reflect.TypeOf(ptrNamed{}), "", false},
		{"interface", reflect.TypeFor[iface](), "", false},
		{"non-namer", reflect.TypeOf(struct{}{}), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tt.typ, conf)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("TryResolveType = (%q,%v), want (%q,%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	// Instance state is ignored: the name comes from the type.
	got, ok := s.TryResolve(namedType{n: 5}, conf)
	if !ok || got != "custom.Name" {
		t.Fatalf("TryResolve: got (%q,%v), want (custom.Name,true)", got, ok)
	}
	if got, ok := s.TryResolve(nil, conf); ok || got != "" {
		t.Fatalf("TryResolve(nil): got (%q,%v), want ('',false)", got, ok)
	}
}

// Ensure the local types actually satisfy apis.TypeNamer (compile-time).
var (
	_ apis.TypeNamer = namedType{}
	_ apis.TypeNamer = (*ptrNamed)(nil)
)
