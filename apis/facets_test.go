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

package apis_test

import (
	"slices"
	"testing"

	"dirpx.dev/typedb/apis"
)

// stubEnum is a two-value enumeration over int.
type stubEnum struct{}

func (stubEnum) Names() []string { return []string{"off", "on"} }
func (stubEnum) Values() []any   { return []any{0, 1} }
func (stubEnum) NameOf(v any) (string, bool) {
	switch v {
	case 0:
		return "off", true
	case 1:
		return "on", true
	}
	return "", false
}
func (stubEnum) ValueOf(name string) (any, bool) {
	i := slices.Index(stubEnum{}.Names(), name)
	if i < 0 {
		return nil, false
	}
	return i, true
}

func TestEnumerationView_Invalid(t *testing.T) {
	views := map[string]apis.EnumerationView{
		"zero":     {},
		"nil enum": apis.NewEnumerationView(3, nil),
	}
	for name, v := range views {
		if v.IsValid() {
			t.Errorf("%s: IsValid = true", name)
		}
		if v.Type() != apis.InvalidTypeID {
			t.Errorf("%s: Type = %v", name, v.Type())
		}
		if v.Enumeration() != nil || v.Names() != nil || v.Values() != nil {
			t.Errorf("%s: accessors returned data", name)
		}
		if _, ok := v.NameOf(0); ok {
			t.Errorf("%s: NameOf ok", name)
		}
		if _, ok := v.ValueOf("on"); ok {
			t.Errorf("%s: ValueOf ok", name)
		}
	}
}

func TestEnumerationView_Forwards(t *testing.T) {
	v := apis.NewEnumerationView(5, stubEnum{})
	if !v.IsValid() || v.Type() != 5 {
		t.Fatalf("view = valid %v type %v", v.IsValid(), v.Type())
	}
	if got := v.Names(); !slices.Equal(got, []string{"off", "on"}) {
		t.Fatalf("Names = %v", got)
	}
	if got := v.Values(); len(got) != 2 || got[1] != 1 {
		t.Fatalf("Values = %v", got)
	}
	if n, ok := v.NameOf(1); !ok || n != "on" {
		t.Fatalf("NameOf(1) = %q, %v", n, ok)
	}
	if val, ok := v.ValueOf("off"); !ok || val != 0 {
		t.Fatalf("ValueOf(off) = %v, %v", val, ok)
	}
}

func TestTypeID(t *testing.T) {
	if apis.InvalidTypeID.IsValid() {
		t.Fatal("InvalidTypeID is valid")
	}
	if !apis.TypeID(1).IsValid() {
		t.Fatal("TypeID(1) is invalid")
	}
	if got := apis.TypeID(42).String(); got != "TypeID(42)" {
		t.Fatalf("String = %q", got)
	}
	if apis.MaxTypeCount >= 1<<16 {
		t.Fatal("MaxTypeCount does not fit a TypeID")
	}
}
