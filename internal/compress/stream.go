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

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// NewReader wraps rdr so that reads return uncompressed data. Closing the
// returned reader does not close rdr.
func NewReader(rdr io.Reader, c Compression) (io.ReadCloser, error) {
	var factory func(r io.Reader) (io.ReadCloser, error)

	switch c {
	case None:
		return io.NopCloser(rdr), nil
	case Gzip:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case Zstd:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case Lz4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}
	case Xz:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			x, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}

			return io.NopCloser(x), nil
		}
	case Lzma:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			l, err := lzma.NewReader(r)
			if err != nil {
				return nil, err
			}

			return io.NopCloser(l), nil
		}
	default:
		return nil, ErrUnknownCompression
	}

	rc, err := factory(rdr)
	if err != nil {
		return nil, fmt.Errorf("%s reader: %w", c, err)
	}

	return rc, nil
}

// NewWriter wraps wrtr so that written data is compressed. The returned
// writer must be closed to flush the stream; closing it does not close wrtr.
func NewWriter(wrtr io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopCloserWriter{wrtr}, nil
	case Gzip:
		return gzip.NewWriter(wrtr), nil
	case Zstd:
		w, err := zstd.NewWriter(wrtr)
		if err != nil {
			return nil, fmt.Errorf("%s writer: %w", c, err)
		}

		return w, nil
	case Lz4:
		return lz4.NewWriter(wrtr), nil
	case Xz:
		w, err := xz.NewWriter(wrtr)
		if err != nil {
			return nil, fmt.Errorf("%s writer: %w", c, err)
		}

		return w, nil
	case Lzma:
		w, err := lzma.NewWriter(wrtr)
		if err != nil {
			return nil, fmt.Errorf("%s writer: %w", c, err)
		}

		return w, nil
	default:
		return nil, ErrUnknownCompression
	}
}
