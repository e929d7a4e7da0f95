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

const (
	// DefaultBufferSize is the default read buffer size for XML decoding.
	DefaultBufferSize = 64 * 1024
)

// decoderOptions provides optional configuration parameters for decoding.
type decoderOptions struct {
	bufferSize int          // read buffer size for XML decoding
	logger     *slog.Logger // receives load warnings
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithBufferSize lets you set the read buffer size for XML decoding.
func WithBufferSize(s int) DecoderOption {
	return func(o *decoderOptions) {
		o.bufferSize = s
	}
}

// WithLogger lets you set the logger that receives load warnings such as
// unresolved references. The default logger is used otherwise.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(o *decoderOptions) {
		o.logger = l
	}
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = decoderOptions{
	bufferSize: DefaultBufferSize,
}
