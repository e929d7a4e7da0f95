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

package osmedit

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/osm"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

// EncodeChange writes the edits of the data set as an osmChange document,
// grouping elements into create, modify and delete blocks. Unchanged elements
// and deletions of never-uploaded elements are left out.
func EncodeChange(wrtr io.Writer, ds *dataset.DataSet, opts ...EncoderOption) error {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	change := Change(ds)
	change.Generator = cfg.generator

	if _, err := io.WriteString(wrtr, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(wrtr)
	enc.Indent("", cfg.indent)

	if err := enc.Encode(change); err != nil {
		return fmt.Errorf("cannot encode osmChange: %w", err)
	}

	_, err := io.WriteString(wrtr, "\n")

	return err
}

// Change groups the edits of the data set by action.
func Change(ds *dataset.DataSet) *osm.Change {
	change := &osm.Change{Version: "0.6"}

	for e := range ds.Elements() {
		if e.IsDeleted() && e.GetID().IsNew() {
			continue
		}

		var block **osm.OSM

		switch e.Action() {
		case model.Create:
			block = &change.Create
		case model.Modify:
			block = &change.Modify
		case model.Delete:
			block = &change.Delete
		default:
			continue
		}

		if *block == nil {
			*block = &osm.OSM{}
		}

		appendElement(*block, e)
	}

	return change
}

func appendElement(o *osm.OSM, e model.Element) {
	info := e.GetInfo()
	visible := !e.IsDeleted()
	ts := timestamp(info.Timestamp)

	var tags osm.Tags
	if visible {
		tags = convertTags(*e.GetTags())
	}

	switch e := e.(type) {
	case *model.Node:
		o.Nodes = append(o.Nodes, &osm.Node{
			ID:          osm.NodeID(e.ID),
			Lat:         float64(e.Lat),
			Lon:         float64(e.Lon),
			User:        info.User,
			UserID:      osm.UserID(info.UID),
			Visible:     visible,
			Version:     int(info.Version),
			ChangesetID: osm.ChangesetID(info.Changeset),
			Timestamp:   ts,
			Tags:        tags,
		})
	case *model.Way:
		var nodes osm.WayNodes
		if visible {
			for _, ref := range e.Nodes {
				nodes = append(nodes, osm.WayNode{ID: osm.NodeID(ref.ID)})
			}
		}

		o.Ways = append(o.Ways, &osm.Way{
			ID:          osm.WayID(e.ID),
			User:        info.User,
			UserID:      osm.UserID(info.UID),
			Visible:     visible,
			Version:     int(info.Version),
			ChangesetID: osm.ChangesetID(info.Changeset),
			Timestamp:   ts,
			Nodes:       nodes,
			Tags:        tags,
		})
	case *model.Relation:
		var members osm.Members
		if visible {
			for _, m := range e.Members {
				members = append(members, osm.Member{
					Type: osm.Type(m.Type.String()),
					Ref:  int64(m.ID),
					Role: m.Role,
				})
			}
		}

		o.Relations = append(o.Relations, &osm.Relation{
			ID:          osm.RelationID(e.ID),
			User:        info.User,
			UserID:      osm.UserID(info.UID),
			Visible:     visible,
			Version:     int(info.Version),
			ChangesetID: osm.ChangesetID(info.Changeset),
			Timestamp:   ts,
			Members:     members,
			Tags:        tags,
		})
	}
}

func convertTags(tags model.Tags) osm.Tags {
	if len(tags) == 0 {
		return nil
	}

	out := make(osm.Tags, 0, len(tags))
	for _, t := range tags {
		out = append(out, osm.Tag{Key: t.Key, Value: t.Value})
	}

	return out
}

// timestamp parses the RFC 3339 timestamps used by the OSM API. Anything
// else is dropped.
func timestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}

	return ts
}
