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
	"encoding/xml"
	"log/slog"
	"strconv"

	"golang.org/x/exp/constraints"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

// parser builds elements from the XML token stream. Child elements (tag, nd,
// member) attach to the innermost open node, way or relation.
type parser struct {
	ds     *dataset.DataSet
	logger *slog.Logger

	current model.Element
	rawID   string
	depth   int

	skippedTags int
}

func newParser(logger *slog.Logger) *parser {
	return &parser{ds: dataset.New(), logger: logger}
}

func (p *parser) start(t xml.StartElement) error {
	if p.current != nil {
		p.depth++

		if p.depth > 1 {
			return nil
		}

		return p.child(t)
	}

	var err error

	switch t.Name.Local {
	case "node":
		p.current, err = p.node(t)
	case "way":
		p.current, err = p.way(t)
	case "relation":
		p.current, err = p.relation(t)
	case "bounds":
		err = p.bounds(t)
	}

	return err
}

func (p *parser) end(_ xml.EndElement) error {
	if p.current == nil {
		return nil
	}

	if p.depth > 0 {
		p.depth--
		return nil
	}

	e := p.current
	p.current = nil
	p.rawID = ""

	return p.ds.Insert(e)
}

func (p *parser) child(t xml.StartElement) error {
	switch t.Name.Local {
	case "tag":
		return p.tag(t)
	case "nd":
		if w, ok := p.current.(*model.Way); ok {
			return p.nd(w, t)
		}
	case "member":
		if r, ok := p.current.(*model.Relation); ok {
			return p.member(r, t)
		}
	}

	return nil
}

func (p *parser) node(t xml.StartElement) (*model.Node, error) {
	n := &model.Node{}

	a := attributes(t)

	id, err := p.id(model.NODE, a)
	if err != nil {
		return nil, err
	}

	n.ID = id

	if n.Lat, err = p.degrees(model.NODE, a, "lat", model.MinLat, model.MaxLat); err != nil {
		return nil, err
	}

	if n.Lon, err = p.degrees(model.NODE, a, "lon", model.MinLon, model.MaxLon); err != nil {
		return nil, err
	}

	if n.Info, err = p.info(model.NODE, a); err != nil {
		return nil, err
	}

	p.action(n, a)

	return n, nil
}

func (p *parser) way(t xml.StartElement) (*model.Way, error) {
	w := &model.Way{}

	a := attributes(t)

	id, err := p.id(model.WAY, a)
	if err != nil {
		return nil, err
	}

	w.ID = id

	if w.Info, err = p.info(model.WAY, a); err != nil {
		return nil, err
	}

	p.action(w, a)

	return w, nil
}

func (p *parser) relation(t xml.StartElement) (*model.Relation, error) {
	r := &model.Relation{}

	a := attributes(t)

	id, err := p.id(model.RELATION, a)
	if err != nil {
		return nil, err
	}

	r.ID = id

	if r.Info, err = p.info(model.RELATION, a); err != nil {
		return nil, err
	}

	p.action(r, a)

	return r, nil
}

func (p *parser) bounds(t xml.StartElement) error {
	a := attributes(t)

	var v [4]model.Degrees

	for i, name := range [...]string{"minlat", "minlon", "maxlat", "maxlon"} {
		s, ok := a[name]
		if !ok {
			return &model.ElementError{Err: model.ErrMissingRequiredAttribute, Type: "bounds", Attr: name}
		}

		d, err := model.ParseDegrees(s)
		if err != nil {
			return &model.ElementError{
				Err: model.ErrMalformedAttribute, Type: "bounds", Attr: name, Value: s, Cause: err,
			}
		}

		v[i] = d
	}

	p.ds.Bounds = model.NewBoundingBox(v[0], v[1], v[2], v[3])

	return nil
}

func (p *parser) tag(t xml.StartElement) error {
	a := attributes(t)

	k, ok := a["k"]
	if !ok || k == "" {
		p.skippedTags++
		p.logger.Warn("tag without key dropped",
			"type", p.current.GetType().String(), "id", p.rawID)

		return nil
	}

	p.current.GetTags().Set(k, a["v"])

	return nil
}

func (p *parser) nd(w *model.Way, t xml.StartElement) error {
	a := attributes(t)

	ref, err := parseInt[model.ID](p.errorf(model.WAY, "nd/ref"), a, "ref")
	if err != nil {
		return err
	}

	w.Nodes = append(w.Nodes, model.NodeRef{ID: ref})

	return nil
}

func (p *parser) member(r *model.Relation, t xml.StartElement) error {
	a := attributes(t)

	s, ok := a["type"]
	if !ok {
		return p.errorf(model.RELATION, "member/type")(model.ErrMissingRequiredAttribute, "", nil)
	}

	typ, err := model.ParseElementType(s)
	if err != nil {
		return p.errorf(model.RELATION, "member/type")(model.ErrMalformedAttribute, s, err)
	}

	ref, err := parseInt[model.ID](p.errorf(model.RELATION, "member/ref"), a, "ref")
	if err != nil {
		return err
	}

	r.Members = append(r.Members, model.Member{ID: ref, Type: typ, Role: a["role"]})

	return nil
}

func (p *parser) id(typ model.ElementType, a map[string]string) (model.ID, error) {
	p.rawID = a["id"]

	return parseInt[model.ID](p.errorf(typ, "id"), a, "id")
}

func (p *parser) degrees(
	typ model.ElementType,
	a map[string]string,
	name string,
	lo, hi model.Degrees,
) (model.Degrees, error) {
	fail := p.errorf(typ, name)

	s, ok := a[name]
	if !ok {
		return 0, fail(model.ErrMissingRequiredAttribute, "", nil)
	}

	d, err := model.ParseDegrees(s)
	if err != nil {
		return 0, fail(model.ErrMalformedAttribute, s, err)
	}

	if d < lo || d > hi {
		return 0, fail(model.ErrMalformedAttribute, s, nil)
	}

	return d, nil
}

func (p *parser) info(typ model.ElementType, a map[string]string) (model.Info, error) {
	var (
		info model.Info
		err  error
	)

	if info.Version, err = optionalInt[int32](p.errorf(typ, "version"), a, "version"); err != nil {
		return info, err
	}

	if info.Changeset, err = optionalInt[int64](p.errorf(typ, "changeset"), a, "changeset"); err != nil {
		return info, err
	}

	uid, err := optionalInt[model.UID](p.errorf(typ, "uid"), a, "uid")
	if err != nil {
		return info, err
	}

	info.UID = uid
	info.Timestamp = a["timestamp"]
	info.User = a["user"]

	return info, nil
}

// action applies an inbound edit marker left by a previous session.
func (p *parser) action(e model.Element, a map[string]string) {
	switch a["action"] {
	case "modify":
		e.MarkModified()
	case "delete":
		e.MarkDeleted()
	}
}

// failure builds the error for one attribute of the element being parsed.
type failure func(kind error, value string, cause error) error

func (p *parser) errorf(typ model.ElementType, attr string) failure {
	return func(kind error, value string, cause error) error {
		return &model.ElementError{
			Err:   kind,
			Type:  typ.String(),
			ID:    p.rawID,
			Attr:  attr,
			Value: value,
			Cause: cause,
		}
	}
}

func parseInt[T constraints.Signed](fail failure, a map[string]string, name string) (T, error) {
	s, ok := a[name]
	if !ok || s == "" {
		return 0, fail(model.ErrMissingRequiredAttribute, "", nil)
	}

	return convert[T](fail, s)
}

func optionalInt[T constraints.Signed](fail failure, a map[string]string, name string) (T, error) {
	s, ok := a[name]
	if !ok || s == "" {
		return 0, nil
	}

	return convert[T](fail, s)
}

func convert[T constraints.Signed](fail failure, s string) (T, error) {
	var zero T

	v, err := strconv.ParseInt(s, 10, bitSize(zero))
	if err != nil {
		return 0, fail(model.ErrMalformedAttribute, s, err)
	}

	return T(v), nil
}

func bitSize[T constraints.Signed](v T) int {
	switch any(v).(type) {
	case int8:
		return 8
	case int16:
		return 16
	case int32, model.UID:
		return 32
	default:
		return 64
	}
}

func attributes(t xml.StartElement) map[string]string {
	a := make(map[string]string, len(t.Attr))

	for _, attr := range t.Attr {
		a[attr.Name.Local] = attr.Value
	}

	return a
}
