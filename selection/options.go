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

package selection

import "log/slog"

type options struct {
	tolerance float64
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*options)

// WithTolerance sets the tap radius in metres.
func WithTolerance(meters float64) Option {
	return func(o *options) {
		o.tolerance = meters
	}
}

// WithLogger sets the logger used for taps and failed events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

var defaultConfig = options{
	tolerance: DefaultTolerance,
}
