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

import (
	"math"
	"strconv"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

const (
	// earthRadius is the mean radius used by s2, in metres.
	earthRadius = 6371010.0

	metersPerDegree = earthRadius * math.Pi / 180

	// minExtent pads zero-width envelopes, which rtreego rejects.
	minExtent = 1e-9
)

// entry is the derived geometry of one element.
type entry struct {
	key   model.Key
	elem  model.Element
	geom  orb.Geometry
	bound orb.Bound
	area  float64
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return rect(e.bound)
}

func rect(b orb.Bound) rtreego.Rect {
	point := rtreego.Point{b.Min.Lon(), b.Min.Lat()}
	lengths := []float64{
		math.Max(b.Max.Lon()-b.Min.Lon(), minExtent),
		math.Max(b.Max.Lat()-b.Min.Lat(), minExtent),
	}

	r, _ := rtreego.NewRect(point, lengths)

	return r
}

func newEntry(e model.Element, geom orb.Geometry) *entry {
	en := &entry{key: model.KeyOf(e), elem: e, geom: geom, bound: geom.Bound()}

	if p, ok := geom.(orb.Polygon); ok {
		en.area = math.Abs(planar.Area(p))
	}

	return en
}

// nodeEntry builds the point of a standalone node. Nodes that belong to a
// way are drawn as part of it and get no geometry of their own.
func nodeEntry(ds *dataset.DataSet, n *model.Node) *entry {
	if n.IsDeleted() || !ds.IsStandalone(n.ID) {
		return nil
	}

	return newEntry(n, orb.Point{float64(n.Lon), float64(n.Lat)})
}

// wayEntry builds a polygon for a closed way and a line otherwise, from the
// resolved nodes in listed order.
func wayEntry(w *model.Way) (*entry, *model.ElementError) {
	if w.IsDeleted() {
		return nil, nil
	}

	coords := make([]orb.Point, 0, len(w.Nodes))

	for _, ref := range w.Nodes {
		if !ref.Resolved() || ref.Node.IsDeleted() {
			continue
		}

		coords = append(coords, orb.Point{float64(ref.Node.Lon), float64(ref.Node.Lat)})
	}

	if len(coords) < 2 {
		return nil, &model.ElementError{
			Err:   model.ErrInvalidGeometry,
			Type:  model.WAY.String(),
			ID:    w.ID.String(),
			Attr:  "nd",
			Value: strconv.Itoa(len(coords)),
		}
	}

	if w.IsClosed() && len(coords) >= 4 && coords[0] == coords[len(coords)-1] {
		return newEntry(w, orb.Polygon{orb.Ring(coords)}), nil
	}

	return newEntry(w, orb.LineString(coords)), nil
}

// distance returns the distance in metres from p to the geometry. Points
// inside a polygon are at distance zero.
func distance(geom orb.Geometry, p orb.Point) float64 {
	x := toS2(p)

	switch g := geom.(type) {
	case orb.Point:
		return meters(x, toS2(g))
	case orb.LineString:
		return lineDistance(x, g)
	case orb.Polygon:
		if planar.PolygonContains(g, p) {
			return 0
		}

		d := math.Inf(1)
		for _, ring := range g {
			d = math.Min(d, lineDistance(x, orb.LineString(ring)))
		}

		return d
	}

	return math.Inf(1)
}

func lineDistance(x s2.Point, ls orb.LineString) float64 {
	d := math.Inf(1)

	for i := 1; i < len(ls); i++ {
		a, b := toS2(ls[i-1]), toS2(ls[i])
		if a == b {
			d = math.Min(d, meters(x, a))
			continue
		}

		d = math.Min(d, s2.DistanceFromSegment(x, a, b).Radians()*earthRadius)
	}

	return d
}

func meters(a, b s2.Point) float64 {
	return a.Distance(b).Radians() * earthRadius
}

func toS2(p orb.Point) s2.Point {
	return s2.PointFromLatLng(model.LatLng(model.Degrees(p.Lat()), model.Degrees(p.Lon())))
}

// around returns the envelope of all points within tolerance metres of p.
func around(p orb.Point, tolerance float64) orb.Bound {
	dLat := tolerance / metersPerDegree

	dLon := 360.0
	if c := math.Cos(model.Degrees(p.Lat()).Angle().Radians()); c > 1e-12 {
		dLon = math.Min(dLon, tolerance/(metersPerDegree*c))
	}

	return orb.Bound{
		Min: orb.Point{p.Lon() - dLon, p.Lat() - dLat},
		Max: orb.Point{p.Lon() + dLon, p.Lat() + dLat},
	}
}
