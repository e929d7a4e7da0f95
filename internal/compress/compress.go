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

// Package compress picks a stream codec for OSM extracts by file extension.
package compress

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Compression is a stream compression format.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Lz4
	Xz
	Lzma
)

var ErrUnknownCompression = errors.New("unknown compression type")

var extensions = map[string]Compression{
	".gz":   Gzip,
	".zst":  Zstd,
	".lz4":  Lz4,
	".xz":   Xz,
	".lzma": Lzma,
}

var names = [...]string{
	None: "none",
	Gzip: "gzip",
	Zstd: "zstd",
	Lz4:  "lz4",
	Xz:   "xz",
	Lzma: "lzma",
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}

	return names[c]
}

// FromPath derives the compression from the last extension of path, e.g.
// "extract.osm.zst" is Zstd and "extract.osm" is None.
func FromPath(path string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return None
}

// Parse converts a compression name.
func Parse(s string) (Compression, error) {
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return Compression(i), nil
		}
	}

	return None, ErrUnknownCompression
}

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}
