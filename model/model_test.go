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

package model_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmedit/model"
)

func TestActionDerivation(t *testing.T) {
	testCases := []struct {
		name     string
		id       model.ID
		modified bool
		deleted  bool
		expected model.Action
	}{
		{"existing", 1, false, false, model.Unchanged},
		{"existing modified", 1, true, false, model.Modify},
		{"zero id modified", 0, true, false, model.Modify},
		{"new", -1, false, false, model.Create},
		{"new modified", -1, true, false, model.Create},
		{"existing deleted", 7, false, true, model.Delete},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			elements := []model.Element{
				&model.Node{ID: tc.id},
				&model.Way{ID: tc.id},
				&model.Relation{ID: tc.id},
			}

			for _, e := range elements {
				if tc.modified {
					e.MarkModified()
				}
				if tc.deleted {
					e.MarkDeleted()
				}

				assert.Equal(t, tc.expected, e.Action(), e.GetType().String())
			}
		})
	}
}

func TestMarkModified(t *testing.T) {
	n := &model.Node{ID: 3}
	n.MarkModified()
	n.MarkModified()

	assert.True(t, n.IsModified())
	assert.Equal(t, model.Modify, n.Action())

	created := &model.Node{ID: -3}
	created.MarkModified()

	assert.False(t, created.IsModified())
	assert.Equal(t, model.Create, created.Action())
}

func TestActionAttr(t *testing.T) {
	assert.Equal(t, "", model.Unchanged.Attr())
	assert.Equal(t, "", model.Create.Attr())
	assert.Equal(t, "modify", model.Modify.Attr())
	assert.Equal(t, "delete", model.Delete.Attr())
}

func TestWayIsClosed(t *testing.T) {
	ring := &model.Way{ID: 1, Nodes: []model.NodeRef{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 1}}}
	line := &model.Way{ID: 2, Nodes: []model.NodeRef{{ID: 1}, {ID: 2}}}
	single := &model.Way{ID: 3, Nodes: []model.NodeRef{{ID: 1}}}

	assert.True(t, ring.IsClosed())
	assert.False(t, line.IsClosed())
	assert.False(t, single.IsClosed())
	assert.Equal(t, []model.ID{1, 2, 3, 1}, ring.NodeIDs())
}

func TestKeys(t *testing.T) {
	key, err := model.ParseKey("way/42")
	require.NoError(t, err)

	assert.Equal(t, model.Key{Type: model.WAY, ID: 42}, key)
	assert.Equal(t, "way/42", key.String())
	assert.Equal(t, "node/-1", model.KeyOf(&model.Node{ID: -1}).String())

	for _, bad := range []string{"way", "area/1", "node/x"} {
		_, err := model.ParseKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseElementType(t *testing.T) {
	for _, typ := range []model.ElementType{model.NODE, model.WAY, model.RELATION} {
		parsed, err := model.ParseElementType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := model.ParseElementType("area")
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	var tags model.Tags

	assert.True(t, tags.Set("amenity", "hospital"))
	assert.True(t, tags.Set("name", "Dhaka Medical"))
	assert.False(t, tags.Set("name", "Dhaka Medical"))
	assert.True(t, tags.Set("amenity", "clinic"))

	assert.Equal(t, model.Tags{{Key: "amenity", Value: "clinic"}, {Key: "name", Value: "Dhaka Medical"}}, tags)

	v, ok := tags.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Dhaka Medical", v)

	assert.True(t, tags.Delete("amenity"))
	assert.False(t, tags.Delete("amenity"))
	assert.Equal(t, map[string]string{"name": "Dhaka Medical"}, tags.Map())
}

func TestElementError(t *testing.T) {
	cause := &strconv.NumError{Func: "ParseFloat", Num: "abc", Err: strconv.ErrSyntax}
	err := error(&model.ElementError{
		Err:   model.ErrMalformedAttribute,
		Type:  "node",
		ID:    "12",
		Attr:  "lat",
		Value: "abc",
		Cause: cause,
	})

	assert.True(t, errors.Is(err, model.ErrMalformedAttribute))
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
	assert.Contains(t, err.Error(), "node 12 attribute lat")

	var ee *model.ElementError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "12", ee.ID)

	keyErr := model.NewKeyError(model.ErrElementInUse, model.Key{Type: model.NODE, ID: 5})
	assert.Equal(t, "element in use: node 5", keyErr.Error())
}
