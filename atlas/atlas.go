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

// Package atlas reads Field Papers atlases: GeoJSON collections of printed
// map pages that a surveyor annotated in the field.
package atlas

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"m4o.io/osmedit/model"
)

var ErrNoPages = errors.New("atlas has no pages")

// Page is a single printed page of an atlas.
type Page struct {
	Number  string
	URL     string
	Polygon orb.Polygon
	Bound   orb.Bound
}

// Atlas is an ordered set of pages.
type Atlas struct {
	Pages []*Page
}

// Parse reads an atlas from a GeoJSON feature collection whose features are
// polygons with page_number and url properties.
func Parse(data []byte) (*Atlas, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse atlas: %w", err)
	}

	if len(fc.Features) == 0 {
		return nil, ErrNoPages
	}

	a := &Atlas{Pages: make([]*Page, 0, len(fc.Features))}

	for i, f := range fc.Features {
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok || len(poly) == 0 {
			return nil, fmt.Errorf("atlas page %d: %s: %w", i, geometryType(f.Geometry), model.ErrInvalidGeometry)
		}

		a.Pages = append(a.Pages, &Page{
			Number:  pageNumber(f.Properties["page_number"]),
			URL:     f.Properties.MustString("url", ""),
			Polygon: poly,
			Bound:   poly.Bound(),
		})
	}

	return a, nil
}

// Read parses an atlas from r.
func Read(r io.Reader) (*Atlas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// PageAt returns the first page that contains point.
func (a *Atlas) PageAt(point orb.Point) (*Page, bool) {
	for _, p := range a.Pages {
		if p.Bound.Contains(point) && planar.PolygonContains(p.Polygon, point) {
			return p, true
		}
	}

	return nil, false
}

// Bound is the union of the page envelopes.
func (a *Atlas) Bound() orb.Bound {
	if len(a.Pages) == 0 {
		return orb.Bound{}
	}

	b := a.Pages[0].Bound
	for _, p := range a.Pages[1:] {
		b = b.Union(p.Bound)
	}

	return b
}

// pageNumber accepts both "A1" style and numeric page numbers.
func pageNumber(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return ""
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "no geometry"
	}

	return g.GeoJSONType()
}
