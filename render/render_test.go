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

package render_test

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmedit"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
	"m4o.io/osmedit/render"
)

func TestFeatureCollection(t *testing.T) {
	ds, err := osmedit.DecodeFile("../testdata/square.osm")
	require.NoError(t, err)

	n, err := ds.CreateNode(23.2, 90.2)
	require.NoError(t, err)
	require.NoError(t, ds.SetTag(model.KeyOf(n), "amenity", "bench"))

	fc := render.FeatureCollection(index.New(ds))
	require.Len(t, fc.Features, 2)

	point := fc.Features[0]
	assert.Equal(t, "node/-1", point.ID)
	assert.Equal(t, orb.Point{90.2, 23.2}, point.Geometry)
	assert.Equal(t, "bench", point.Properties.MustString("amenity"))
	assert.Equal(t, "create", point.Properties.MustString(render.PropAction))

	poly := fc.Features[1]
	assert.Equal(t, "way/10", poly.ID)
	assert.IsType(t, orb.Polygon{}, poly.Geometry)
	assert.Equal(t, "yes", poly.Properties.MustString("building"))
	assert.Equal(t, "way", poly.Properties.MustString(render.PropType))
	assert.Equal(t, "unchanged", poly.Properties.MustString(render.PropAction))

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	back, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, back.Features, 2)
	assert.Equal(t, 10, back.Features[1].Properties.MustInt(render.PropID))
}

func TestFeaturePropertiesOverrideTags(t *testing.T) {
	w := &model.Way{ID: 3, Tags: model.Tags{{Key: "action", Value: "spoof"}}}
	w.MarkModified()

	f := render.Feature(w, orb.LineString{{0, 0}, {1, 1}})

	assert.Equal(t, "modify", f.Properties.MustString(render.PropAction))
	assert.Equal(t, int64(3), f.Properties[render.PropID])
}
