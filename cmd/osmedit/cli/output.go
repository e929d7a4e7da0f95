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

package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"

	"m4o.io/osmedit/internal/compress"
)

// -- output file Value
type outputValue struct {
	value    *string
	typename string
}

// NewOutputValue creates a cobra Value object for an output path. Nothing is
// created when the flag is set; see Create.
func NewOutputValue(p *string, typename string) pflag.Value {
	return &outputValue{
		value:    p,
		typename: typename,
	}
}

func (o *outputValue) Set(val string) error {
	if val == "" {
		return errors.New("output path is empty")
	}

	*o.value = val

	return nil
}

func (o *outputValue) Type() string {
	return o.typename
}

func (o *outputValue) String() string {
	return *o.value
}

// Create opens the output at path, or standard output when path is empty or
// "-", wrapped in the compression implied by its name. Closing the writer
// flushes the compression stream and closes the file unless it is stdout.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return &fileWriter{WriteCloser: nopCloser{os.Stdout}, f: os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := compress.NewWriter(f, compress.FromPath(path))
	if err != nil {
		f.Close()

		return nil, err
	}

	return &fileWriter{WriteCloser: w, f: f}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (w *fileWriter) Close() error {
	err := w.WriteCloser.Close()

	if w.f == os.Stdout {
		return err
	}

	return errors.Join(err, w.f.Close())
}
