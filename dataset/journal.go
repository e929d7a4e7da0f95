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
	"slices"

	"m4o.io/osmedit/model"
)

// ChangeKind classifies an edit by what derived state it invalidates.
type ChangeKind int

const (
	// Structural changes add or remove elements or change a way's node list
	// or a relation's members. Derived geometry must be rebuilt.
	Structural ChangeKind = iota

	// Moved changes the coordinates of a node. The node and the ways that
	// list it need new geometry.
	Moved

	// Tagged changes tags or edit flags only.
	Tagged
)

func (k ChangeKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Moved:
		return "moved"
	default:
		return "tagged"
	}
}

// Change is an entry of the edit journal. The key is zero for changes that
// affect the whole set.
type Change struct {
	Kind ChangeKind
	Key  model.Key
}

// Revision identifies the state of the set. It grows with every change.
func (d *DataSet) Revision() uint64 {
	return d.base + uint64(len(d.journal))
}

// ChangesSince returns the changes recorded after the revision. When the
// entries after rev have been trimmed, the result starts with a whole-set
// structural change.
func (d *DataSet) ChangesSince(rev uint64) []Change {
	if rev >= d.Revision() {
		return nil
	}

	if rev < d.base {
		return append([]Change{{Kind: Structural}}, d.journal...)
	}

	return d.journal[rev-d.base:]
}

// Trim discards the changes up to and including rev. Consumers call it once
// their derived state reflects rev.
func (d *DataSet) Trim(rev uint64) {
	rev = min(rev, d.Revision())
	if rev <= d.base {
		return
	}

	d.journal = slices.Clone(d.journal[rev-d.base:])
	d.base = rev
}

func (d *DataSet) record(kind ChangeKind, key model.Key) {
	// a whole-set change supersedes everything before it
	if kind == Structural && key == (model.Key{}) {
		d.base += uint64(len(d.journal))
		d.journal = nil
	}

	d.journal = append(d.journal, Change{Kind: kind, Key: key})
}
