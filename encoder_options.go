// Copyright 2017-26 the original author or authors.
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

package osmedit

import (
	"log/slog"
)

// Mode selects which elements the encoder writes.
type Mode int

const (
	// ModeDiff writes only created, modified and deleted elements.
	ModeDiff Mode = iota

	// ModeFull writes every live element plus deletions.
	ModeFull
)

func (m Mode) String() string {
	switch m {
	case ModeDiff:
		return "diff"
	case ModeFull:
		return "full"
	}

	return "unknown"
}

// ParseMode converts a mode name as used on the command line.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "diff":
		return ModeDiff, true
	case "full":
		return ModeFull, true
	}

	return 0, false
}

// DefaultGenerator is written to the generator attribute of the root element.
const DefaultGenerator = "osmedit"

// encoderOptions provides optional configuration parameters for Encoder construction.
type encoderOptions struct {
	mode      Mode
	generator string
	indent    string
	logger    *slog.Logger
}

// EncoderOption configures how we set up the encoder.
type EncoderOption func(*encoderOptions)

// WithMode specifies whether unchanged elements are written.  The default is
// ModeDiff.
func WithMode(mode Mode) EncoderOption {
	return func(o *encoderOptions) {
		o.mode = mode
	}
}

// WithGenerator sets the generator attribute of the osm root element.
func WithGenerator(generator string) EncoderOption {
	return func(o *encoderOptions) {
		o.generator = generator
	}
}

// WithIndent indents nested elements with the given string.
func WithIndent(indent string) EncoderOption {
	return func(o *encoderOptions) {
		o.indent = indent
	}
}

// WithEncoderLogger sets the logger that receives the per-document summary.
// The default logger is used otherwise.
func WithEncoderLogger(l *slog.Logger) EncoderOption {
	return func(o *encoderOptions) {
		o.logger = l
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = encoderOptions{
	mode:      ModeDiff,
	generator: DefaultGenerator,
	indent:    "  ",
}
