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

import "strconv"

// TypeID is a dense handle for a runtime-known type. Ids are minted by the
// identity allocator; the registry uses them as opaque sort keys.
type TypeID uint16

const (
	// InvalidTypeID is never assigned to a type.
	InvalidTypeID TypeID = 0
	// MaxTypeCount is the ceiling on the number of ids an allocator hands out.
	MaxTypeCount = 32767
	// MaxInheritTypesCount is the ceiling on direct bases per type.
	MaxInheritTypesCount = 50
	// DefaultTypeCount is the capacity hint for per-facet storage.
	DefaultTypeCount = 4096
)

// IsValid reports whether id is not InvalidTypeID.
func (id TypeID) IsValid() bool {
	return id != InvalidTypeID
}

// String returns "TypeID(n)".
func (id TypeID) String() string {
	return "TypeID(" + strconv.Itoa(int(id)) + ")"
}
