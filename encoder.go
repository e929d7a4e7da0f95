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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

// Encoder writes a data set as an OSM XML document.
type Encoder struct {
	cfg  *encoderOptions
	wrtr io.Writer
}

// NewEncoder returns a new encoder, configured with options, that writes to
// wrtr.
func NewEncoder(wrtr io.Writer, opts ...EncoderOption) *Encoder {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Encoder{cfg: &cfg, wrtr: wrtr}
}

// Marshal encodes the data set and returns the document.
func Marshal(ds *dataset.DataSet, opts ...EncoderOption) ([]byte, error) {
	var buf bytes.Buffer

	if err := NewEncoder(&buf, opts...).Encode(ds); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode writes the data set. Nodes are written first, then ways, then
// relations, each in insertion order. Deletions of elements that never
// existed on the server are not written.
func (e *Encoder) Encode(ds *dataset.DataSet) error {
	if _, err := io.WriteString(e.wrtr, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(e.wrtr)
	enc.Indent("", e.cfg.indent)

	w := &elementWriter{enc: enc, mode: e.cfg.mode}

	root := xml.StartElement{
		Name: xml.Name{Local: "osm"},
		Attr: []xml.Attr{
			attr("version", "0.6"),
			attr("generator", e.cfg.generator),
		},
	}

	w.token(root)

	if e.cfg.mode == ModeFull {
		w.bounds(ds.Extent())
	}

	for n := range ds.Nodes() {
		w.node(n)
	}

	for way := range ds.Ways() {
		w.way(way)
	}

	for r := range ds.Relations() {
		w.relation(r)
	}

	w.token(root.End())

	if w.err == nil {
		w.err = enc.Flush()
	}

	if w.err != nil {
		return fmt.Errorf("cannot encode OSM XML: %w", w.err)
	}

	if _, err := io.WriteString(e.wrtr, "\n"); err != nil {
		return err
	}

	logger := e.cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("encoded OSM XML", "mode", e.cfg.mode.String(), "counts", w.counts)

	return nil
}

// elementWriter holds the first error so that the element writers stay
// linear.
type elementWriter struct {
	enc    *xml.Encoder
	mode   Mode
	err    error
	counts map[string]int
}

func (w *elementWriter) bounds(b *model.BoundingBox) {
	if b == nil {
		return
	}

	w.empty("bounds",
		attr("minlat", b.Bottom.Text()),
		attr("minlon", b.Left.Text()),
		attr("maxlat", b.Top.Text()),
		attr("maxlon", b.Right.Text()))
}

func (w *elementWriter) token(t xml.Token) {
	if w.err != nil {
		return
	}

	w.err = w.enc.EncodeToken(t)
}

func (w *elementWriter) empty(name string, attrs ...xml.Attr) {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	w.token(start)
	w.token(start.End())
}

// include reports whether the element belongs in the output.
func (w *elementWriter) include(e model.Element) bool {
	action := e.Action()

	if e.IsDeleted() && e.GetID().IsNew() {
		return false
	}

	if w.mode == ModeDiff && action == model.Unchanged {
		return false
	}

	if w.counts == nil {
		w.counts = make(map[string]int)
	}

	w.counts[action.String()]++

	return true
}

func (w *elementWriter) node(n *model.Node) {
	if !w.include(n) {
		return
	}

	start := w.start(n)
	start.Attr = append(start.Attr,
		attr("lat", n.Lat.Text()),
		attr("lon", n.Lon.Text()))

	w.token(start)

	if !n.IsDeleted() {
		w.tags(n.Tags)
	}

	w.token(start.End())
}

func (w *elementWriter) way(way *model.Way) {
	if !w.include(way) {
		return
	}

	start := w.start(way)
	w.token(start)

	if !way.IsDeleted() {
		for _, ref := range way.Nodes {
			w.empty("nd", attr("ref", ref.ID.String()))
		}

		w.tags(way.Tags)
	}

	w.token(start.End())
}

func (w *elementWriter) relation(r *model.Relation) {
	if !w.include(r) {
		return
	}

	start := w.start(r)
	w.token(start)

	if !r.IsDeleted() {
		for _, m := range r.Members {
			w.empty("member",
				attr("type", m.Type.String()),
				attr("ref", m.ID.String()),
				attr("role", m.Role))
		}

		w.tags(r.Tags)
	}

	w.token(start.End())
}

func (w *elementWriter) tags(tags model.Tags) {
	for _, t := range tags {
		w.empty("tag", attr("k", t.Key), attr("v", t.Value))
	}
}

// start builds the opening element with the action, id and the info
// attributes. Zero info values are omitted.
func (w *elementWriter) start(e model.Element) xml.StartElement {
	start := xml.StartElement{Name: xml.Name{Local: e.GetType().String()}}

	if a := e.Action().Attr(); a != "" {
		start.Attr = append(start.Attr, attr("action", a))
	}

	start.Attr = append(start.Attr, attr("id", e.GetID().String()))

	info := e.GetInfo()

	if info.Version != 0 {
		start.Attr = append(start.Attr, attr("version", strconv.FormatInt(int64(info.Version), 10)))
	}

	if info.Timestamp != "" {
		start.Attr = append(start.Attr, attr("timestamp", info.Timestamp))
	}

	if info.Changeset != 0 {
		start.Attr = append(start.Attr, attr("changeset", strconv.FormatInt(info.Changeset, 10)))
	}

	if info.UID != 0 {
		start.Attr = append(start.Attr, attr("uid", strconv.FormatInt(int64(info.UID), 10)))
	}

	if info.User != "" {
		start.Attr = append(start.Attr, attr("user", info.User))
	}

	return start
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
