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

// Package dataset holds the in-memory graph of OpenStreetMap elements loaded
// from an extract, together with the reverse indexes needed to keep way and
// relation references consistent while the data is edited.
package dataset

import (
	"iter"
	"slices"

	"m4o.io/osmedit/model"
)

// set is a set of element IDs.
type set map[model.ID]struct{}

// DataSet owns every element of an extract, keyed by type and ID. Ways and
// relations only reference nodes and members; they never own them.
//
// A DataSet is not safe for concurrent use. All operations are expected to
// run on one logical thread of control.
type DataSet struct {
	// Bounds is the area of the extract, when the source document declared one.
	Bounds *model.BoundingBox

	nodes     map[model.ID]*model.Node
	ways      map[model.ID]*model.Way
	relations map[model.ID]*model.Relation

	// order is the insertion order, used for stable output.
	order []model.Key

	// nextID is the ID handed to the next created element.
	nextID model.ID

	// wayRefs maps a node to the live ways that list it.
	wayRefs map[model.ID]set

	// relationRefs maps an element to the live relations that list it.
	relationRefs map[model.Key]set

	unresolved []*model.ElementError

	// journal holds the changes after revision base.
	journal []Change
	base    uint64
}

// New creates an empty DataSet.
func New() *DataSet {
	return &DataSet{
		nodes:        make(map[model.ID]*model.Node),
		ways:         make(map[model.ID]*model.Way),
		relations:    make(map[model.ID]*model.Relation),
		nextID:       -1,
		wayRefs:      make(map[model.ID]set),
		relationRefs: make(map[model.Key]set),
	}
}

// Insert adds an element to the set. References held by ways and relations
// stay unresolved until ResolveReferences is called.
func (d *DataSet) Insert(e model.Element) error {
	key := model.KeyOf(e)

	if _, ok := d.Get(key); ok {
		return model.NewKeyError(model.ErrDuplicateID, key)
	}

	switch e := e.(type) {
	case *model.Node:
		d.nodes[e.ID] = e
	case *model.Way:
		d.ways[e.ID] = e
	case *model.Relation:
		d.relations[e.ID] = e
	}

	if key.ID <= d.nextID {
		d.nextID = key.ID - 1
	}

	d.order = append(d.order, key)
	d.record(Structural, key)

	return nil
}

// ResolveReferences links every way node and relation member to the element
// it names. References to elements outside the set, or to deleted ones, are
// kept as unresolved stubs carrying the raw ID and are returned as warnings.
// The reverse indexes are rebuilt from scratch.
func (d *DataSet) ResolveReferences() []*model.ElementError {
	d.wayRefs = make(map[model.ID]set)
	d.relationRefs = make(map[model.Key]set)
	d.unresolved = nil

	for w := range d.Ways() {
		for i := range w.Nodes {
			ref := &w.Nodes[i]
			ref.Node = nil

			if n := d.nodes[ref.ID]; n != nil && !n.IsDeleted() {
				ref.Node = n
			} else {
				d.unresolved = append(d.unresolved, unresolvedNode(w, ref.ID))
			}
		}

		if !w.IsDeleted() {
			d.linkWay(w)
		}
	}

	for r := range d.Relations() {
		for i := range r.Members {
			m := &r.Members[i]
			if e, ok := d.Get(m.Key()); ok && !e.IsDeleted() {
				m.Element = e
			} else {
				m.Element = nil
				d.unresolved = append(d.unresolved, unresolvedMember(r, m.Key()))
			}
		}

		if !r.IsDeleted() {
			d.linkRelation(r)
		}
	}

	d.record(Structural, model.Key{})

	return d.unresolved
}

// Unresolved returns the warnings collected by the last ResolveReferences.
func (d *DataSet) Unresolved() []*model.ElementError {
	return d.unresolved
}

// Extent returns the declared bounds of the extract or, when the source
// document had none, the box covering the live nodes. It returns nil when
// there is neither.
func (d *DataSet) Extent() *model.BoundingBox {
	if d.Bounds != nil && !d.Bounds.IsEmpty() {
		return d.Bounds
	}

	b := model.InitialBoundingBox()

	for n := range d.Nodes() {
		if !n.IsDeleted() {
			b.ExpandWithLatLng(n.Lat, n.Lon)
		}
	}

	if b.IsEmpty() {
		return nil
	}

	return b
}

// Get returns the element with the key, including deleted elements that are
// kept until the deletion is exported.
func (d *DataSet) Get(key model.Key) (model.Element, bool) {
	switch key.Type {
	case model.NODE:
		if n, ok := d.nodes[key.ID]; ok {
			return n, true
		}
	case model.WAY:
		if w, ok := d.ways[key.ID]; ok {
			return w, true
		}
	case model.RELATION:
		if r, ok := d.relations[key.ID]; ok {
			return r, true
		}
	}

	return nil, false
}

// Node returns the node with the ID or nil.
func (d *DataSet) Node(id model.ID) *model.Node { return d.nodes[id] }

// Way returns the way with the ID or nil.
func (d *DataSet) Way(id model.ID) *model.Way { return d.ways[id] }

// Relation returns the relation with the ID or nil.
func (d *DataSet) Relation(id model.ID) *model.Relation { return d.relations[id] }

// Len returns the number of elements held, deleted ones included.
func (d *DataSet) Len() int { return len(d.order) }

// Count returns the number of elements of a type.
func (d *DataSet) Count(t model.ElementType) int {
	switch t {
	case model.NODE:
		return len(d.nodes)
	case model.WAY:
		return len(d.ways)
	case model.RELATION:
		return len(d.relations)
	default:
		return 0
	}
}

// Elements iterates over all elements in insertion order.
func (d *DataSet) Elements() iter.Seq[model.Element] {
	return func(yield func(model.Element) bool) {
		for _, key := range d.order {
			e, _ := d.Get(key)
			if !yield(e) {
				return
			}
		}
	}
}

// Nodes iterates over the nodes in insertion order.
func (d *DataSet) Nodes() iter.Seq[*model.Node] {
	return ofType(d, model.NODE, d.nodes)
}

// Ways iterates over the ways in insertion order.
func (d *DataSet) Ways() iter.Seq[*model.Way] {
	return ofType(d, model.WAY, d.ways)
}

// Relations iterates over the relations in insertion order.
func (d *DataSet) Relations() iter.Seq[*model.Relation] {
	return ofType(d, model.RELATION, d.relations)
}

func ofType[T model.Element](d *DataSet, t model.ElementType, m map[model.ID]T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, key := range d.order {
			if key.Type != t {
				continue
			}

			if !yield(m[key.ID]) {
				return
			}
		}
	}
}

// WaysOf returns the live ways that list the node, ordered by ID.
func (d *DataSet) WaysOf(node model.ID) []*model.Way {
	ids := sortedIDs(d.wayRefs[node])

	ways := make([]*model.Way, len(ids))
	for i, id := range ids {
		ways[i] = d.ways[id]
	}

	return ways
}

// RelationsOf returns the live relations that list the element, ordered by ID.
func (d *DataSet) RelationsOf(key model.Key) []*model.Relation {
	ids := sortedIDs(d.relationRefs[key])

	relations := make([]*model.Relation, len(ids))
	for i, id := range ids {
		relations[i] = d.relations[id]
	}

	return relations
}

// IsStandalone reports whether no live way lists the node.
func (d *DataSet) IsStandalone(node model.ID) bool {
	return len(d.wayRefs[node]) == 0
}

func (d *DataSet) linkWay(w *model.Way) {
	for _, ref := range w.Nodes {
		if ref.Resolved() {
			add(d.wayRefs, ref.ID, w.ID)
		}
	}
}

func (d *DataSet) unlinkWay(w *model.Way) {
	for _, ref := range w.Nodes {
		remove(d.wayRefs, ref.ID, w.ID)
	}
}

func (d *DataSet) linkRelation(r *model.Relation) {
	for _, m := range r.Members {
		if m.Resolved() {
			add(d.relationRefs, m.Key(), r.ID)
		}
	}
}

func (d *DataSet) unlinkRelation(r *model.Relation) {
	for _, m := range r.Members {
		remove(d.relationRefs, m.Key(), r.ID)
	}
}

func add[K comparable](m map[K]set, k K, id model.ID) {
	s, ok := m[k]
	if !ok {
		s = make(set)
		m[k] = s
	}

	s[id] = struct{}{}
}

func remove[K comparable](m map[K]set, k K, id model.ID) {
	s, ok := m[k]
	if !ok {
		return
	}

	delete(s, id)

	if len(s) == 0 {
		delete(m, k)
	}
}

func sortedIDs(s set) []model.ID {
	ids := make([]model.ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

func unresolvedNode(w *model.Way, node model.ID) *model.ElementError {
	return &model.ElementError{
		Err:   model.ErrUnresolvedReference,
		Type:  model.WAY.String(),
		ID:    w.ID.String(),
		Attr:  "nd",
		Value: node.String(),
	}
}

func unresolvedMember(r *model.Relation, member model.Key) *model.ElementError {
	return &model.ElementError{
		Err:   model.ErrUnresolvedReference,
		Type:  model.RELATION.String(),
		ID:    r.ID.String(),
		Attr:  "member",
		Value: member.String(),
	}
}
