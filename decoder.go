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

// Package osmedit reads OpenStreetMap XML extracts into an editable data set
// and writes the edits back out as OSM XML edit documents.
package osmedit

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/internal/compress"
)

// Decode reads an OSM XML document and returns the data set it describes,
// with every reference resolved. Any malformed or missing mandatory attribute
// fails the whole load; no partial data set is returned. References to
// elements outside the document are kept as unresolved stubs and are
// available from DataSet.Unresolved.
func Decode(r io.Reader, opts ...DecoderOption) (*dataset.DataSet, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.bufferSize < 1 {
		cfg.bufferSize = DefaultBufferSize
	}

	dec := xml.NewDecoder(bufio.NewReaderSize(r, cfg.bufferSize))
	p := newParser(logger)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read OSM XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = p.start(t)
		case xml.EndElement:
			err = p.end(t)
		}

		if err != nil {
			return nil, err
		}
	}

	ds := p.ds

	if unresolved := ds.ResolveReferences(); len(unresolved) > 0 {
		logger.Warn("references outside of the extract",
			"count", len(unresolved), "first", unresolved[0].Error())
	}

	logger.Debug("decoded OSM XML",
		"elements", ds.Len(), "skippedTags", p.skippedTags)

	return ds, nil
}

// DecodeFile opens, decompresses by file extension, and decodes an extract.
func DecodeFile(path string, opts ...DecoderOption) (*dataset.DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	rdr, err := compress.NewReader(f, compress.FromPath(path))
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	defer rdr.Close()

	return Decode(rdr, opts...)
}
