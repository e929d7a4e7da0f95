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

package dataset

import (
	"m4o.io/osmedit/model"
)

// minWayNodes is the smallest number of nodes that forms a line.
const minWayNodes = 2

// Every mutation validates its input before touching the set, so a failed
// call leaves the set exactly as it was.

// CreateNode adds a new node with a fresh negative ID.
func (d *DataSet) CreateNode(lat, lon model.Degrees) (*model.Node, error) {
	if err := validCoordinates(d.nextID, lat, lon); err != nil {
		return nil, err
	}

	n := &model.Node{ID: d.allocate(), Lat: lat, Lon: lon}
	d.add(n)

	return n, nil
}

// CreateWay adds a new way with a fresh negative ID over existing nodes.
func (d *DataSet) CreateWay(nodes []model.ID) (*model.Way, error) {
	refs, err := d.nodeRefs(model.Key{Type: model.WAY, ID: d.nextID}, nodes)
	if err != nil {
		return nil, err
	}

	w := &model.Way{ID: d.allocate(), Nodes: refs}
	d.add(w)
	d.linkWay(w)

	return w, nil
}

// CreateRelation adds a new relation with a fresh negative ID. Every member
// must exist in the set.
func (d *DataSet) CreateRelation(members []model.Member) (*model.Relation, error) {
	resolved := make([]model.Member, len(members))

	for i, m := range members {
		e, err := d.live(m.Key())
		if err != nil {
			return nil, err
		}

		resolved[i] = model.Member{ID: m.ID, Type: m.Type, Role: m.Role, Element: e}
	}

	r := &model.Relation{ID: d.allocate(), Members: resolved}
	d.add(r)
	d.linkRelation(r)

	return r, nil
}

// Delete removes an element. It fails with ErrElementInUse while a live way
// or relation references the element, unless force is set, in which case
// every such reference becomes an unresolved stub.
//
// New elements are dropped outright. Elements known to the server are kept
// as deleted so the deletion can be exported.
func (d *DataSet) Delete(key model.Key, force bool) error {
	e, err := d.live(key)
	if err != nil {
		return err
	}

	var ways set
	if key.Type == model.NODE {
		ways = d.wayRefs[key.ID]
	}

	relations := d.relationRefs[key]

	if len(ways)+len(relations) > 0 {
		if !force {
			return model.NewKeyError(model.ErrElementInUse, key)
		}

		d.detach(key, ways, relations)
	}

	switch e := e.(type) {
	case *model.Way:
		d.unlinkWay(e)
	case *model.Relation:
		d.unlinkRelation(e)
	}

	if key.ID.IsNew() {
		d.purge(key)
	} else {
		e.MarkDeleted()
	}

	d.record(Structural, key)

	return nil
}

// SetTag sets a tag on a live element. The element is marked modified when
// its tags change.
func (d *DataSet) SetTag(key model.Key, k, v string) error {
	e, err := d.live(key)
	if err != nil {
		return err
	}

	if k == "" {
		return &model.ElementError{
			Err:  model.ErrMissingRequiredAttribute,
			Type: key.Type.String(),
			ID:   key.ID.String(),
			Attr: "k",
		}
	}

	if e.GetTags().Set(k, v) {
		e.MarkModified()
		d.record(Tagged, key)
	}

	return nil
}

// RemoveTag removes a tag from a live element. The element is marked
// modified when the tag was present.
func (d *DataSet) RemoveTag(key model.Key, k string) error {
	e, err := d.live(key)
	if err != nil {
		return err
	}

	if e.GetTags().Delete(k) {
		e.MarkModified()
		d.record(Tagged, key)
	}

	return nil
}

// MarkModified flags a live element as edited.
func (d *DataSet) MarkModified(key model.Key) error {
	e, err := d.live(key)
	if err != nil {
		return err
	}

	e.MarkModified()
	d.record(Tagged, key)

	return nil
}

// MoveNode changes the coordinates of a live node. A move below the
// precision of OSM coordinates leaves the node untouched.
func (d *DataSet) MoveNode(id model.ID, lat, lon model.Degrees) error {
	key := model.Key{Type: model.NODE, ID: id}

	e, err := d.live(key)
	if err != nil {
		return err
	}

	if err := validCoordinates(id, lat, lon); err != nil {
		return err
	}

	n := e.(*model.Node)
	if n.Lat.EqualWithin(lat, model.E7) && n.Lon.EqualWithin(lon, model.E7) {
		return nil
	}

	n.Lat, n.Lon = lat, lon
	n.MarkModified()
	d.record(Moved, key)

	return nil
}

// SetWayNodes replaces the node list of a live way.
func (d *DataSet) SetWayNodes(id model.ID, nodes []model.ID) error {
	key := model.Key{Type: model.WAY, ID: id}

	e, err := d.live(key)
	if err != nil {
		return err
	}

	refs, err := d.nodeRefs(key, nodes)
	if err != nil {
		return err
	}

	w := e.(*model.Way)
	d.unlinkWay(w)
	w.Nodes = refs
	d.linkWay(w)
	w.MarkModified()
	d.record(Structural, key)

	return nil
}

// live returns the element with the key unless it is missing or deleted.
func (d *DataSet) live(key model.Key) (model.Element, error) {
	e, ok := d.Get(key)
	if !ok || e.IsDeleted() {
		return nil, model.NewKeyError(model.ErrNotFound, key)
	}

	return e, nil
}

func (d *DataSet) nodeRefs(owner model.Key, nodes []model.ID) ([]model.NodeRef, error) {
	if len(nodes) < minWayNodes {
		return nil, &model.ElementError{
			Err:   model.ErrInvalidGeometry,
			Type:  owner.Type.String(),
			ID:    owner.ID.String(),
			Attr:  "nd",
			Value: "fewer than two nodes",
		}
	}

	refs := make([]model.NodeRef, len(nodes))

	for i, id := range nodes {
		e, err := d.live(model.Key{Type: model.NODE, ID: id})
		if err != nil {
			return nil, err
		}

		refs[i] = model.NodeRef{ID: id, Node: e.(*model.Node)}
	}

	return refs, nil
}

func (d *DataSet) allocate() model.ID {
	id := d.nextID
	d.nextID--

	return id
}

func (d *DataSet) add(e model.Element) {
	// allocated IDs never collide, so Insert cannot fail here
	_ = d.Insert(e)
}

func (d *DataSet) purge(key model.Key) {
	switch key.Type {
	case model.NODE:
		delete(d.nodes, key.ID)
	case model.WAY:
		delete(d.ways, key.ID)
	case model.RELATION:
		delete(d.relations, key.ID)
	}

	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)

			break
		}
	}
}

// detach turns the references held by the ways and relations into stubs.
func (d *DataSet) detach(key model.Key, ways, relations set) {
	for id := range ways {
		w := d.ways[id]
		for i := range w.Nodes {
			if w.Nodes[i].ID == key.ID {
				w.Nodes[i].Node = nil
			}
		}
	}

	for id := range relations {
		r := d.relations[id]
		for i := range r.Members {
			if r.Members[i].Key() == key {
				r.Members[i].Element = nil
			}
		}
	}

	if key.Type == model.NODE {
		delete(d.wayRefs, key.ID)
	}

	delete(d.relationRefs, key)
}

func validCoordinates(id model.ID, lat, lon model.Degrees) error {
	if lat < model.MinLat || lat > model.MaxLat {
		return &model.ElementError{
			Err:   model.ErrMalformedAttribute,
			Type:  model.NODE.String(),
			ID:    id.String(),
			Attr:  "lat",
			Value: lat.Text(),
		}
	}

	if lon < model.MinLon || lon > model.MaxLon {
		return &model.ElementError{
			Err:   model.ErrMalformedAttribute,
			Type:  model.NODE.String(),
			ID:    id.String(),
			Attr:  "lon",
			Value: lon.Text(),
		}
	}

	return nil
}
