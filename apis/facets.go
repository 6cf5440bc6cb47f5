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

package apis

// Converter turns an instance of its source type into an instance of its
// target type. A registry stores converters keyed by source id and owns them
// once registered: if a converter implements io.Closer it is closed when the
// registry is closed or the converter is replaced.
type Converter interface {
	// Target returns the id of the type this converter produces.
	Target() TypeID
	// CanConvert reports whether the converter produces target.
	CanConvert(target TypeID) bool
	// Convert converts src. ok is false when src has the wrong dynamic type
	// or the value cannot be represented in the target type.
	Convert(src any) (dst any, ok bool)
}

// Comparator tests two instances of the same type for equality.
//
// A registry only references comparators. The registering code owns them and
// must keep them usable for the remaining lifetime of the registry; the
// registry never closes or releases a comparator.
type Comparator interface {
	Equal(lhs, rhs any) bool
}

// Orderer is implemented by comparators that also support ordering.
type Orderer interface {
	Comparator
	// Less reports whether lhs sorts before rhs.
	Less(lhs, rhs any) bool
}

// Enumeration is a bidirectional name/value table for one enum type. A
// registry owns its enumerations in the same way it owns converters.
type Enumeration interface {
	// Names returns the declared names in declaration order.
	Names() []string
	// Values returns the declared values in declaration order.
	Values() []any
	// NameOf returns the name declared for value.
	NameOf(value any) (string, bool)
	// ValueOf returns the value declared for name.
	ValueOf(name string) (any, bool)
}

// Metadata is a single key/value pair attached to a type. Keys are compared
// by their dynamic value.
type Metadata struct {
	Key   any
	Value any
}

// NewMetadata returns a Metadata pair.
func NewMetadata(key, value any) Metadata {
	return Metadata{Key: key, Value: value}
}

// EnumerationView is the result of an enumeration lookup. The zero value is
// an invalid view; its accessors return empty results.
type EnumerationView struct {
	id   TypeID
	enum Enumeration
}

// NewEnumerationView returns a view over e registered for id.
func NewEnumerationView(id TypeID, e Enumeration) EnumerationView {
	if e == nil {
		return EnumerationView{}
	}
	return EnumerationView{id: id, enum: e}
}

// IsValid reports whether the view refers to a registered enumeration.
func (v EnumerationView) IsValid() bool {
	return v.enum != nil
}

// Type returns the enum type id, or InvalidTypeID for an invalid view.
func (v EnumerationView) Type() TypeID {
	return v.id
}

// Enumeration returns the underlying table, or nil for an invalid view.
func (v EnumerationView) Enumeration() Enumeration {
	return v.enum
}

// Names returns the declared names.
func (v EnumerationView) Names() []string {
	if v.enum == nil {
		return nil
	}
	return v.enum.Names()
}

// Values returns the declared values.
func (v EnumerationView) Values() []any {
	if v.enum == nil {
		return nil
	}
	return v.enum.Values()
}

// NameOf returns the name declared for value.
func (v EnumerationView) NameOf(value any) (string, bool) {
	if v.enum == nil {
		return "", false
	}
	return v.enum.NameOf(value)
}

// ValueOf returns the value declared for name.
func (v EnumerationView) ValueOf(name string) (any, bool) {
	if v.enum == nil {
		return nil, false
	}
	return v.enum.ValueOf(name)
}
