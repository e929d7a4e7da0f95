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

// Package index derives geometries from a data set and answers point
// selection queries against them.
package index

import (
	"cmp"
	"iter"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

// Hit is one element returned by SelectAt.
type Hit struct {
	Element model.Element

	// Distance from the query point in metres; zero inside a polygon.
	Distance float64
}

// Stats counts how the index has been rebuilt.
type Stats struct {
	Full     uint64
	Targeted uint64
}

// Index holds the derived geometry of a data set. It follows the data set's
// change journal and rebuilds lazily on the next query. Every rebuild
// produces a new immutable snapshot that replaces the old one in a single
// step, so queries never observe a partially rebuilt index.
type Index struct {
	ds     *dataset.DataSet
	cfg    options
	logger *slog.Logger

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]

	full     atomic.Uint64
	targeted atomic.Uint64
}

type snapshot struct {
	rev     uint64
	tree    *rtreego.Rtree
	entries map[model.Key]*entry
	order   []model.Key
	invalid map[model.Key]*model.ElementError
}

// New creates an index over ds. Geometry is built on the first query.
func New(ds *dataset.DataSet, opts ...Option) *Index {
	cfg := defaultConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.minChildren < 1 {
		cfg.minChildren = DefaultMinChildren
	}

	if cfg.maxChildren < cfg.minChildren {
		cfg.maxChildren = max(DefaultMaxChildren, cfg.minChildren*2)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Index{ds: ds, cfg: cfg, logger: logger}
}

// SelectAt returns the elements whose geometry contains point (polygons) or
// lies within tolerance metres of it (lines and points), nearest first. Ties
// are broken by smaller area, then by key. No hit is an empty result.
func (x *Index) SelectAt(point orb.Point, tolerance float64) []Hit {
	snap := x.current()

	tolerance = math.Max(tolerance, 0)

	type candidate struct {
		*entry
		distance float64
	}

	var found []candidate

	for _, s := range snap.tree.SearchIntersect(rect(around(point, tolerance))) {
		e := s.(*entry)

		if d := distance(e.geom, point); d <= tolerance {
			found = append(found, candidate{entry: e, distance: d})
		}
	}

	slices.SortFunc(found, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.distance, b.distance),
			cmp.Compare(a.area, b.area),
			compareKeys(a.key, b.key),
		)
	})

	hits := make([]Hit, len(found))
	for i, c := range found {
		hits[i] = Hit{Element: c.elem, Distance: c.distance}
	}

	return hits
}

// Geometry returns the current geometry of an element. Nodes that belong to
// a way, relations, deleted elements and invalid ways have none.
func (x *Index) Geometry(key model.Key) (orb.Geometry, bool) {
	e, ok := x.current().entries[key]
	if !ok {
		return nil, false
	}

	return e.geom, true
}

// All iterates over every element with a geometry, nodes first, in
// insertion order.
func (x *Index) All() iter.Seq2[model.Element, orb.Geometry] {
	snap := x.current()

	return func(yield func(model.Element, orb.Geometry) bool) {
		for _, key := range snap.order {
			e, ok := snap.entries[key]
			if !ok {
				continue
			}

			if !yield(e.elem, e.geom) {
				return
			}
		}
	}
}

// Len returns the number of geometries.
func (x *Index) Len() int {
	return len(x.current().entries)
}

// Invalid lists the ways that could not form a geometry, ordered by ID.
func (x *Index) Invalid() []*model.ElementError {
	snap := x.current()

	keys := slices.SortedFunc(maps.Keys(snap.invalid), compareKeys)

	errs := make([]*model.ElementError, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, snap.invalid[k])
	}

	return errs
}

// Stats reports the number of full and targeted rebuilds so far.
func (x *Index) Stats() Stats {
	return Stats{Full: x.full.Load(), Targeted: x.targeted.Load()}
}

// current returns a snapshot consistent with the data set's revision,
// rebuilding it first if the data set has changed.
func (x *Index) current() *snapshot {
	rev := x.ds.Revision()

	if snap := x.snap.Load(); snap != nil && snap.rev == rev {
		return snap
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	snap := x.snap.Load()
	if snap != nil && snap.rev == rev {
		return snap
	}

	next := x.rebuild(snap, rev)
	x.snap.Store(next)
	x.ds.Trim(rev)

	return next
}

func (x *Index) rebuild(prev *snapshot, rev uint64) *snapshot {
	if prev == nil {
		return x.rebuildFull(rev)
	}

	moved := make(map[model.ID]struct{})

	for _, c := range x.ds.ChangesSince(prev.rev) {
		switch c.Kind {
		case dataset.Structural:
			return x.rebuildFull(rev)
		case dataset.Moved:
			moved[c.Key.ID] = struct{}{}
		case dataset.Tagged:
		}
	}

	if len(moved) == 0 {
		next := *prev
		next.rev = rev

		return &next
	}

	return x.rebuildMoved(prev, rev, moved)
}

func (x *Index) rebuildFull(rev uint64) *snapshot {
	next := &snapshot{
		rev:     rev,
		entries: make(map[model.Key]*entry),
		invalid: make(map[model.Key]*model.ElementError),
	}

	for n := range x.ds.Nodes() {
		next.put(model.KeyOf(n), nodeEntry(x.ds, n))
	}

	for w := range x.ds.Ways() {
		x.putWay(next, w)
	}

	next.order = x.order()
	next.tree = x.tree(next.entries)

	x.full.Add(1)
	x.logger.Debug("geometry index rebuilt",
		"kind", "full", "revision", rev, "geometries", len(next.entries), "invalid", len(next.invalid))

	return next
}

// rebuildMoved recomputes the moved nodes and every way that lists them.
func (x *Index) rebuildMoved(prev *snapshot, rev uint64, moved map[model.ID]struct{}) *snapshot {
	next := &snapshot{
		rev:     rev,
		entries: maps.Clone(prev.entries),
		order:   prev.order,
		invalid: maps.Clone(prev.invalid),
	}

	ways := make(map[model.ID]*model.Way)

	for id := range moved {
		if n := x.ds.Node(id); n != nil {
			next.put(model.KeyOf(n), nodeEntry(x.ds, n))
		}

		for _, w := range x.ds.WaysOf(id) {
			ways[w.ID] = w
		}
	}

	for _, w := range ways {
		x.putWay(next, w)
	}

	next.tree = x.tree(next.entries)

	x.targeted.Add(1)
	x.logger.Debug("geometry index rebuilt",
		"kind", "targeted", "revision", rev, "nodes", len(moved), "ways", len(ways))

	return next
}

func (x *Index) putWay(snap *snapshot, w *model.Way) {
	key := model.KeyOf(w)
	delete(snap.invalid, key)

	e, err := wayEntry(w)
	if err != nil {
		x.logger.Warn("way has no geometry", "id", w.ID, "error", err)
		snap.invalid[key] = err
	}

	snap.put(key, e)
}

func (s *snapshot) put(key model.Key, e *entry) {
	if e == nil {
		delete(s.entries, key)
		return
	}

	s.entries[key] = e
}

func (x *Index) order() []model.Key {
	var order []model.Key

	for n := range x.ds.Nodes() {
		order = append(order, model.KeyOf(n))
	}

	for w := range x.ds.Ways() {
		order = append(order, model.KeyOf(w))
	}

	return order
}

func (x *Index) tree(entries map[model.Key]*entry) *rtreego.Rtree {
	objs := make([]rtreego.Spatial, 0, len(entries))
	for _, e := range entries {
		objs = append(objs, e)
	}

	return rtreego.NewTree(2, x.cfg.minChildren, x.cfg.maxChildren, objs...)
}

func compareKeys(a, b model.Key) int {
	return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.ID, b.ID))
}
