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

package index

import "log/slog"

const (
	// DefaultMinChildren is the minimum fan-out of an R-tree node.
	DefaultMinChildren = 25

	// DefaultMaxChildren is the maximum fan-out of an R-tree node.
	DefaultMaxChildren = 50
)

// options provides optional configuration parameters for Index construction.
type options struct {
	minChildren int
	maxChildren int
	logger      *slog.Logger
}

// Option configures how we set up the index.
type Option func(*options)

// WithMinChildren sets the minimum number of children of an R-tree node.
func WithMinChildren(n int) Option {
	return func(o *options) {
		o.minChildren = n
	}
}

// WithMaxChildren sets the maximum number of children of an R-tree node.
func WithMaxChildren(n int) Option {
	return func(o *options) {
		o.maxChildren = n
	}
}

// WithLogger sets the logger used to report rebuilds and invalid ways.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

var defaultConfig = options{
	minChildren: DefaultMinChildren,
	maxChildren: DefaultMaxChildren,
}
