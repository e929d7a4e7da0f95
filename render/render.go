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

// Package render projects the derived geometry of a data set into GeoJSON
// for the map layer.
package render

import (
	"iter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"m4o.io/osmedit/model"
)

// Property names written next to the element's tags.
const (
	PropType   = "osm_type"
	PropID     = "osm_id"
	PropAction = "action"
)

// Source yields elements with their geometry; *index.Index implements it.
type Source interface {
	All() iter.Seq2[model.Element, orb.Geometry]
}

// FeatureCollection returns one feature per element with a geometry. The
// feature ID is the element key, e.g. "way/10".
func FeatureCollection(src Source) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for e, g := range src.All() {
		fc.Append(Feature(e, g))
	}

	return fc
}

// Feature projects a single element.
func Feature(e model.Element, g orb.Geometry) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.ID = model.KeyOf(e).String()

	for _, t := range *e.GetTags() {
		f.Properties[t.Key] = t.Value
	}

	f.Properties[PropType] = e.GetType().String()
	f.Properties[PropID] = int64(e.GetID())
	f.Properties[PropAction] = e.Action().String()

	return f
}
