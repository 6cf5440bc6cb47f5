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

package config

import (
	"dirpx.dev/typedb/apis"
)

const (
	// DefaultConflictPolicy rejects conflicting re-registrations.
	DefaultConflictPolicy = apis.Reject
	// DefaultInitialCapacity is the default capacity hint per facet list.
	DefaultInitialCapacity = 64
	// DefaultMaxTypeCount is the default allocator ceiling.
	DefaultMaxTypeCount = apis.MaxTypeCount
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in types get a canonical name.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	normalize(&cfg)
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		ConflictPolicy:  DefaultConflictPolicy,
		InitialCapacity: DefaultInitialCapacity,
		MaxTypeCount:    DefaultMaxTypeCount,
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
	}
}

// normalize resets out-of-range values to their defaults.
func normalize(cfg *apis.Config) {
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.InitialCapacity < 0 {
		cfg.InitialCapacity = DefaultInitialCapacity
	}
	if cfg.MaxTypeCount <= 0 || cfg.MaxTypeCount > apis.MaxTypeCount {
		cfg.MaxTypeCount = DefaultMaxTypeCount
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithConflictPolicy sets the ConflictPolicy option.
func WithConflictPolicy(p apis.ConflictPolicy) Option {
	return func(c *apis.Config) {
		c.ConflictPolicy = p
	}
}

// WithInitialCapacity sets the InitialCapacity option.
// A negative value resets to the default.
func WithInitialCapacity(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.InitialCapacity = DefaultInitialCapacity
			return
		}
		c.InitialCapacity = n
	}
}

// WithMaxTypeCount sets the MaxTypeCount option.
// Values outside (0, apis.MaxTypeCount] reset to the default.
func WithMaxTypeCount(n int) Option {
	return func(c *apis.Config) {
		c.MaxTypeCount = n
	}
}

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
