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

// Package facets provides ready-made converters, comparators and
// enumeration tables for registering with a typedb registry.
//
//	reg.RegisterConverter(celsiusID, facets.NewConverter(fahrenheitID,
//		func(c Celsius) (Fahrenheit, bool) { return Fahrenheit(c*9/5 + 32), true }))
//	reg.RegisterComparator(celsiusID, facets.Ordered[Celsius]())
//	reg.RegisterEnumeration(colorID, facets.MustEnum(
//		facets.EnumValue[Color]{Name: "red", Value: Red},
//		facets.EnumValue[Color]{Name: "blue", Value: Blue},
//	))
package facets
