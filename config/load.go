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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typedb/apis"
)

var (
	// ErrUnknownFormat is returned for a file format Load cannot decode.
	ErrUnknownFormat = errors.New("typedb(config): unknown config format")
	// ErrInvalidConfig is returned when the input has unknown keys, values of
	// the wrong type or out-of-range values.
	ErrInvalidConfig = errors.New("typedb(config): invalid config")
)

// Format names a config file encoding.
type Format string

const (
	// YAML selects gopkg.in/yaml.v3.
	YAML Format = "yaml"
	// TOML selects github.com/BurntSushi/toml.
	TOML Format = "toml"
)

// FormatOf guesses the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension of %q", path)
	}
}

// LoadFile reads a config file, picking the decoder from its extension.
func LoadFile(path string) (apis.Config, error) {
	f, err := FormatOf(path)
	if err != nil {
		return apis.Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, errors.Wrapf(err, "typedb(config): read %s", path)
	}
	return Load(bytes.NewReader(b), f)
}

// Load decodes a config from r on top of DefaultConfig. Keys absent from the
// input keep their defaults; unknown keys are an error.
func Load(r io.Reader, f Format) (apis.Config, error) {
	cfg := DefaultConfig()

	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return apis.Config{}, errors.Wrapf(ErrInvalidConfig, "decode yaml: %v", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return apis.Config{}, errors.Wrapf(ErrInvalidConfig, "decode toml: %v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return apis.Config{}, errors.Wrapf(ErrInvalidConfig, "unknown toml keys %v", undecoded)
		}
	default:
		return apis.Config{}, errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}

	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// Validate reports out-of-range values in cfg.
func Validate(cfg apis.Config) error {
	switch {
	case cfg.ConflictPolicy != apis.Reject && cfg.ConflictPolicy != apis.Replace:
		return errors.Wrapf(ErrInvalidConfig, "conflict_policy %s", cfg.ConflictPolicy)
	case cfg.InitialCapacity < 0:
		return errors.Wrapf(ErrInvalidConfig, "initial_capacity %d < 0", cfg.InitialCapacity)
	case cfg.MaxTypeCount <= 0 || cfg.MaxTypeCount > apis.MaxTypeCount:
		return errors.Wrapf(ErrInvalidConfig, "max_type_count %d not in [1,%d]", cfg.MaxTypeCount, apis.MaxTypeCount)
	case cfg.MaxUnwrap < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_unwrap %d < 0", cfg.MaxUnwrap)
	}
	return nil
}
