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

package index_test

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmedit"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
)

func nodeKey(id model.ID) model.Key { return model.Key{Type: model.NODE, ID: id} }

func wayKey(id model.ID) model.Key { return model.Key{Type: model.WAY, ID: id} }

func square(t *testing.T) *dataset.DataSet {
	t.Helper()

	ds, err := osmedit.DecodeFile("../testdata/square.osm")
	require.NoError(t, err)

	return ds
}

func keys(hits []index.Hit) []model.Key {
	out := make([]model.Key, 0, len(hits))
	for _, h := range hits {
		out = append(out, model.KeyOf(h.Element))
	}

	return out
}

func TestSelectSingleNode(t *testing.T) {
	ds, err := osmedit.Decode(strings.NewReader(`<osm><node id="1" lat="23.0" lon="90.0"/></osm>`))
	require.NoError(t, err)

	hits := index.New(ds).SelectAt(orb.Point{90.0, 23.0}, 5)

	require.Len(t, hits, 1)
	assert.Equal(t, nodeKey(1), model.KeyOf(hits[0].Element))
	assert.InDelta(t, 0, hits[0].Distance, 1e-6)
}

func TestSelectInsidePolygon(t *testing.T) {
	idx := index.New(square(t))

	hits := idx.SelectAt(orb.Point{90.0005, 23.0005}, 1)

	assert.Equal(t, []model.Key{wayKey(10)}, keys(hits))
	assert.Zero(t, hits[0].Distance)
}

func TestSelectNearPolygonEdge(t *testing.T) {
	idx := index.New(square(t))

	// about 11 m south of the southern edge
	p := orb.Point{90.0005, 22.9999}

	assert.Empty(t, idx.SelectAt(p, 5))

	hits := idx.SelectAt(p, 20)
	require.Len(t, hits, 1)
	assert.Equal(t, wayKey(10), model.KeyOf(hits[0].Element))
	assert.InDelta(t, 11.1, hits[0].Distance, 0.5)
}

func TestSelectMiss(t *testing.T) {
	idx := index.New(square(t))

	assert.Empty(t, idx.SelectAt(orb.Point{0, 0}, 50))
	assert.Empty(t, idx.SelectAt(orb.Point{90.005, 23.005}, 10))
}

func TestSelectLine(t *testing.T) {
	ds := dataset.New()

	a, err := ds.CreateNode(23.1, 90.1)
	require.NoError(t, err)

	b, err := ds.CreateNode(23.1, 90.2)
	require.NoError(t, err)

	w, err := ds.CreateWay([]model.ID{a.ID, b.ID})
	require.NoError(t, err)

	idx := index.New(ds)

	g, ok := idx.Geometry(model.KeyOf(w))
	require.True(t, ok)
	assert.IsType(t, orb.LineString{}, g)

	p := orb.Point{90.15, 23.1001}

	assert.Empty(t, idx.SelectAt(p, 5))

	hits := idx.SelectAt(p, 20)
	require.Len(t, hits, 1)
	assert.Same(t, w, hits[0].Element)
	assert.Greater(t, hits[0].Distance, 9.0)
	assert.Less(t, hits[0].Distance, 12.0)
}

func TestSelectOrdersNearestFirst(t *testing.T) {
	ds := square(t)

	inner, err := ds.CreateNode(23.0005, 90.0005)
	require.NoError(t, err)

	near, err := ds.CreateNode(23.00052, 90.0005)
	require.NoError(t, err)

	hits := index.New(ds).SelectAt(orb.Point{90.0005, 23.0005}, 5)

	// equal distances go to the smaller area
	assert.Equal(t, []model.Key{model.KeyOf(inner), wayKey(10), model.KeyOf(near)}, keys(hits))
	assert.Zero(t, hits[0].Distance)
	assert.Zero(t, hits[1].Distance)
	assert.InDelta(t, 2.2, hits[2].Distance, 0.1)
}

func TestGeometryKinds(t *testing.T) {
	idx := index.New(square(t))

	g, ok := idx.Geometry(wayKey(10))
	require.True(t, ok)
	require.IsType(t, orb.Polygon{}, g)
	assert.Len(t, g.(orb.Polygon)[0], 5)

	// part of way 11
	_, ok = idx.Geometry(nodeKey(5))
	assert.False(t, ok)

	_, ok = idx.Geometry(nodeKey(1))
	assert.False(t, ok)

	_, ok = idx.Geometry(model.Key{Type: model.RELATION, ID: 20})
	assert.False(t, ok)

	assert.Equal(t, 1, idx.Len())
}

func TestInvalidWays(t *testing.T) {
	idx := index.New(square(t))

	invalid := idx.Invalid()
	require.Len(t, invalid, 1)
	assert.ErrorIs(t, invalid[0], model.ErrInvalidGeometry)
	assert.Equal(t, "11", invalid[0].ID)

	_, ok := idx.Geometry(wayKey(11))
	assert.False(t, ok)
}

func TestMovedNodeRecomputesWays(t *testing.T) {
	ds := square(t)
	idx := index.New(ds)

	assert.Empty(t, idx.SelectAt(orb.Point{90.0015, 23.0015}, 1))
	assert.Equal(t, index.Stats{Full: 1}, idx.Stats())

	require.NoError(t, ds.MoveNode(3, 23.002, 90.002))

	hits := idx.SelectAt(orb.Point{90.0015, 23.0015}, 1)
	assert.Equal(t, []model.Key{wayKey(10)}, keys(hits))
	assert.Equal(t, index.Stats{Full: 1, Targeted: 1}, idx.Stats())

	g, ok := idx.Geometry(wayKey(10))
	require.True(t, ok)
	assert.Equal(t, orb.Point{90.002, 23.002}, g.(orb.Polygon)[0][2])
}

func TestTagEditKeepsSnapshot(t *testing.T) {
	ds := square(t)
	idx := index.New(ds)

	before := idx.SelectAt(orb.Point{90.0005, 23.0005}, 1)

	require.NoError(t, ds.SetTag(wayKey(10), "name", "Town Hall"))

	after := idx.SelectAt(orb.Point{90.0005, 23.0005}, 1)

	assert.Equal(t, keys(before), keys(after))
	assert.Equal(t, index.Stats{Full: 1}, idx.Stats())
}

func TestStructuralEditRebuilds(t *testing.T) {
	ds := square(t)
	idx := index.New(ds)

	assert.Equal(t, 1, idx.Len())

	require.NoError(t, ds.Delete(wayKey(11), false))

	// node 5 no longer belongs to a way
	hits := idx.SelectAt(orb.Point{90.01, 23.01}, 5)
	assert.Equal(t, []model.Key{nodeKey(5)}, keys(hits))
	assert.Empty(t, idx.Invalid())
	assert.Equal(t, index.Stats{Full: 2}, idx.Stats())
}

func TestSnapshotIsImmutable(t *testing.T) {
	ds := square(t)
	idx := index.New(ds)

	all := idx.All()

	n, err := ds.CreateNode(23.2, 90.2)
	require.NoError(t, err)

	var seen []model.Key
	for e := range all {
		seen = append(seen, model.KeyOf(e))
	}

	assert.Equal(t, []model.Key{wayKey(10)}, seen)

	seen = nil
	for e := range idx.All() {
		seen = append(seen, model.KeyOf(e))
	}

	assert.Equal(t, []model.Key{model.KeyOf(n), wayKey(10)}, seen)
}

func TestOptions(t *testing.T) {
	idx := index.New(square(t), index.WithMinChildren(2), index.WithMaxChildren(4))

	assert.Len(t, idx.SelectAt(orb.Point{90.0005, 23.0005}, 1), 1)
}

func TestConsumedChangesAreTrimmed(t *testing.T) {
	ds := square(t)
	idx := index.New(ds)

	assert.Equal(t, 1, idx.Len())

	rev := ds.Revision()
	require.NoError(t, ds.SetTag(wayKey(10), "name", "Town Hall"))
	assert.Equal(t, 1, idx.Len())

	assert.Equal(t, []dataset.Change{{Kind: dataset.Structural}}, ds.ChangesSince(rev))
	assert.Equal(t, index.Stats{Full: 1}, idx.Stats())
}
