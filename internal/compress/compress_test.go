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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"extract.osm", None},
		{"extract.osm.gz", Gzip},
		{"extract.osm.zst", Zstd},
		{"/tmp/extract.osm.LZ4", Lz4},
		{"extract.osm.xz", Xz},
		{"extract.osm.lzma", Lzma},
		{"extract.osm.bz2", None},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("ZSTD")
	require.NoError(t, err)
	assert.Equal(t, Zstd, c)

	_, err = Parse("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)

	assert.Equal(t, "unknown", Compression(42).String())
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat(`<node id="1" lat="23.0" lon="90.0"/>`, 200)

	for _, c := range []Compression{None, Gzip, Zstd, Lz4, Xz, Lzma} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, c)
			require.NoError(t, err)

			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != None {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, c)
			require.NoError(t, err)

			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestUnknown(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), Compression(-1))
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = NewWriter(io.Discard, Compression(99))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
