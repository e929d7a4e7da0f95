// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that can be kept in a YAML file. Command line
// flags take precedence.
type Config struct {
	Tolerance float64 `yaml:"tolerance"`
	Mode      string  `yaml:"mode"`
	Generator string  `yaml:"generator"`
	LogLevel  string  `yaml:"log-level"`
	Progress  bool    `yaml:"progress"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Tolerance: 5,
		Mode:      "diff",
		Generator: "osmedit",
		LogLevel:  "info",
	}
}

// Settings is the configuration in effect for the running command.
var Settings = DefaultConfig()

// ReadConfig reads YAML settings over the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("tolerance must not be negative: %v", cfg.Tolerance)
	}

	return cfg, nil
}

// LoadConfig reads the settings file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), err
	}

	defer f.Close()

	return ReadConfig(f)
}

// ParseLevel converts a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level

	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))

	return l, err
}
