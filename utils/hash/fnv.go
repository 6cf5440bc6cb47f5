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

// Package hash derives deterministic fingerprints from type names.
//
// The fingerprint is FNV-1a seeded with the 32-bit offset basis and prime,
// computed in 64-bit wrap-around arithmetic with no finalization step. The
// input is treated as a null-terminated byte string: hashing stops at the
// first NUL byte. Identical input bytes always yield the identical value,
// independent of process, platform or call site, which makes the result
// usable as a cross-module identity for a type name.
package hash

const (
	// OffsetBasis is the initial hash value.
	OffsetBasis uint64 = 0xcbf29ce4
	// Prime is the FNV multiplier.
	Prime uint64 = 0x01000193
)

// Sum returns the fingerprint of s.
func Sum(s string) uint64 {
	h := OffsetBasis
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 {
			break
		}
		h = (h ^ uint64(c)) * Prime
	}
	return h
}

// SumBytes returns the fingerprint of b. It agrees with Sum(string(b)).
func SumBytes(b []byte) uint64 {
	h := OffsetBasis
	for _, c := range b {
		if c == 0 {
			break
		}
		h = (h ^ uint64(c)) * Prime
	}
	return h
}
