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

import (
	"fmt"
	"strings"
)

// ConflictPolicy decides what a registry does when a comparator, an
// enumeration, or a converter for the same (source, target) pair is
// registered for a type id that already has one. Re-registering the
// identical facet value is always accepted as a no-op.
//
// Identity is value equality of the dynamic facet values. Facets whose
// dynamic type is not comparable (func types, structs holding a func, slices)
// are never identical, so registering one twice under Reject is a conflict.
// Register such facets behind a pointer to get idempotent re-registration.
type ConflictPolicy int

const (
	// Reject keeps the existing facet and returns a conflict error.
	Reject ConflictPolicy = iota
	// Replace swaps the existing facet for the new one.
	Replace
)

// String returns the canonical token of p.
func (p ConflictPolicy) String() string {
	switch p {
	case Reject:
		return "Reject"
	case Replace:
		return "Replace"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseConflictPolicy parses a policy token, case-insensitively and ignoring
// surrounding whitespace.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Reject, fmt.Errorf("typedb: empty conflict policy")
	}

	switch strings.ToUpper(trimmed) {
	case "REJECT":
		return Reject, nil
	case "REPLACE":
		return Replace, nil
	default:
		return Reject, fmt.Errorf("typedb: unknown conflict policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p ConflictPolicy) MarshalText() ([]byte, error) {
	switch p {
	case Reject, Replace:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("typedb: cannot marshal unknown conflict policy %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	v, err := ParseConflictPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
