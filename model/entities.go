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

// Package model contains the OpenStreetMap entity model shared by the data
// set, the XML codec and the geometry index.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// UID is the primary key for a user.
type UID int32

// ID is the primary key of an element. Positive IDs are assigned by the
// OpenStreetMap server, negative IDs identify elements created locally that
// have not been uploaded yet.
type ID int64

// IsNew reports whether the ID identifies a locally created element.
func (id ID) IsNew() bool { return id < 0 }

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Info represents the provenance metadata common to Node, Way, and Relation
// elements. Zero values are absent and are not written back out. The
// timestamp is kept verbatim.
type Info struct {
	Version   int32
	UID       UID
	Timestamp string
	Changeset int64
	User      string
}

// Element is a Node, Way or Relation. The set of implementations is closed.
type Element interface {
	isElement() // prevents extensions

	GetID() ID

	GetType() ElementType

	GetTags() *Tags

	GetInfo() *Info

	// IsModified reports whether the element was edited since it was loaded.
	IsModified() bool

	// MarkModified flags the element as edited. It is idempotent and has no
	// effect on new elements, which are implicitly created.
	MarkModified()

	IsDeleted() bool

	MarkDeleted()

	// Action is the edit state derived from the ID and the edit flags.
	Action() Action
}

// edit holds the local edit flags of an element.
type edit struct {
	modified bool
	deleted  bool
}

func (e *edit) IsModified() bool { return e.modified }

func (e *edit) IsDeleted() bool { return e.deleted }

func (e *edit) markModified(id ID) {
	if id.IsNew() {
		return
	}

	e.modified = true
}

func (e *edit) action(id ID) Action {
	switch {
	case e.deleted:
		return Delete
	case id.IsNew():
		return Create
	case e.modified:
		return Modify
	default:
		return Unchanged
	}
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	edit

	ID   ID
	Tags Tags
	Info Info
	Lat  Degrees
	Lon  Degrees
}

var _ Element = (*Node)(nil)

func (n *Node) isElement() {}

func (n *Node) GetID() ID { return n.ID }

func (n *Node) GetType() ElementType { return NODE }

func (n *Node) GetTags() *Tags { return &n.Tags }

func (n *Node) GetInfo() *Info { return &n.Info }

func (n *Node) MarkModified() { n.markModified(n.ID) }

func (n *Node) MarkDeleted() { n.deleted = true }

func (n *Node) Action() Action { return n.action(n.ID) }

// NodeRef is an entry of a way's node list. Node is nil while the reference
// is unresolved, e.g. when the node lies outside the loaded extract.
type NodeRef struct {
	ID   ID
	Node *Node
}

// Resolved reports whether the reference points at a loaded node.
func (r NodeRef) Resolved() bool { return r.Node != nil }

// Way is an ordered list of nodes that define a polyline, or a polygon when
// the first and the last node are the same.
type Way struct {
	edit

	ID    ID
	Tags  Tags
	Info  Info
	Nodes []NodeRef
}

var _ Element = (*Way)(nil)

func (w *Way) isElement() {}

func (w *Way) GetID() ID { return w.ID }

func (w *Way) GetType() ElementType { return WAY }

func (w *Way) GetTags() *Tags { return &w.Tags }

func (w *Way) GetInfo() *Info { return &w.Info }

func (w *Way) MarkModified() { w.markModified(w.ID) }

func (w *Way) MarkDeleted() { w.deleted = true }

func (w *Way) Action() Action { return w.action(w.ID) }

// NodeIDs returns the listed node IDs, resolved or not.
func (w *Way) NodeIDs() []ID {
	ids := make([]ID, len(w.Nodes))
	for i, r := range w.Nodes {
		ids[i] = r.ID
	}

	return ids
}

// IsClosed reports whether the way starts and ends on the same node.
func (w *Way) IsClosed() bool {
	n := len(w.Nodes)

	return n > 1 && w.Nodes[0].ID == w.Nodes[n-1].ID
}

// ElementType is an enumeration of OSM element types.
type ElementType int32

const (
	// NODE denotes that the member is a node.
	NODE ElementType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

var elementTypeNames = [...]string{NODE: "node", WAY: "way", RELATION: "relation"}

func (t ElementType) String() string {
	if t < NODE || t > RELATION {
		return "ElementType(" + strconv.Itoa(int(t)) + ")"
	}

	return elementTypeNames[t]
}

// ParseElementType converts the XML name of an element type.
func ParseElementType(s string) (ElementType, error) {
	for t, name := range elementTypeNames {
		if name == s {
			return ElementType(t), nil
		}
	}

	return 0, fmt.Errorf("unknown element type %q", s)
}

// Member represents an element that participates in a relation. Element is
// nil while the member is unresolved.
type Member struct {
	ID      ID
	Type    ElementType
	Role    string
	Element Element
}

// Key returns the key of the referenced element.
func (m Member) Key() Key { return Key{Type: m.Type, ID: m.ID} }

// Resolved reports whether the member points at a loaded element.
func (m Member) Resolved() bool { return m.Element != nil }

// Relation is a multipurpose data structure that documents a relationship
// between two or more data elements (nodes, ways, and/or other relations).
type Relation struct {
	edit

	ID      ID
	Tags    Tags
	Info    Info
	Members []Member
}

var _ Element = (*Relation)(nil)

func (r *Relation) isElement() {}

func (r *Relation) GetID() ID { return r.ID }

func (r *Relation) GetType() ElementType { return RELATION }

func (r *Relation) GetTags() *Tags { return &r.Tags }

func (r *Relation) GetInfo() *Info { return &r.Info }

func (r *Relation) MarkModified() { r.markModified(r.ID) }

func (r *Relation) MarkDeleted() { r.deleted = true }

func (r *Relation) Action() Action { return r.action(r.ID) }

// Key identifies an element within a data set. IDs are only unique per type.
type Key struct {
	Type ElementType
	ID   ID
}

// KeyOf returns the key of an element.
func KeyOf(e Element) Key {
	return Key{Type: e.GetType(), ID: e.GetID()}
}

func (k Key) String() string {
	return k.Type.String() + "/" + k.ID.String()
}

// ParseKey parses keys written as "type/id", e.g. "way/42".
func ParseKey(s string) (Key, error) {
	typ, id, ok := strings.Cut(s, "/")
	if !ok {
		return Key{}, fmt.Errorf("malformed element key %q", s)
	}

	t, err := ParseElementType(typ)
	if err != nil {
		return Key{}, err
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("malformed element key %q: %w", s, err)
	}

	return Key{Type: t, ID: ID(n)}, nil
}
