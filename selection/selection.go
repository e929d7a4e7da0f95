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

// Package selection turns taps on the map into a selected set of elements.
package selection

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/paulmach/orb"

	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
)

// DefaultTolerance is the tap radius in metres.
const DefaultTolerance = 5.0

// State of the controller.
type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	if s == Selected {
		return "selected"
	}

	return "idle"
}

// Listener is notified with the ordered selection after every tap or
// deselect. An empty selection means the controller is idle.
type Listener func(selection []model.Element)

// Selector answers point queries; *index.Index implements it.
type Selector interface {
	SelectAt(point orb.Point, tolerance float64) []index.Hit
}

// Controller is the Idle/Selected state machine. Taps are handled one at a
// time in arrival order; a tap issued while another is being handled, for
// example from a listener, is queued behind it.
type Controller struct {
	sel       Selector
	tolerance float64
	logger    *slog.Logger

	mu        sync.Mutex
	queue     []func()
	busy      bool
	selection []model.Element
	listeners []Listener
}

// New creates an idle controller.
func New(sel Selector, opts ...Option) *Controller {
	cfg := defaultConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{sel: sel, tolerance: cfg.tolerance, logger: logger}
}

// AddListener registers l for selection changes.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, l)
}

// Tap selects the elements at point.
func (c *Controller) Tap(point orb.Point) {
	c.submit(func() {
		hits := c.sel.SelectAt(point, c.tolerance)

		selection := make([]model.Element, 0, len(hits))
		for _, h := range hits {
			selection = append(selection, h.Element)
		}

		c.logger.Debug("tap", "lon", point.Lon(), "lat", point.Lat(), "hits", len(hits))
		c.set(selection)
	})
}

// Deselect returns the controller to Idle.
func (c *Controller) Deselect() {
	c.submit(func() {
		c.set(nil)
	})
}

// Selection returns a copy of the current selection, nearest first.
func (c *Controller) Selection() []model.Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.selection)
}

// State reports whether anything is selected.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.selection) == 0 {
		return Idle
	}

	return Selected
}

func (c *Controller) set(selection []model.Element) {
	c.mu.Lock()
	c.selection = selection
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(slices.Clone(selection))
	}
}

// submit queues work and, unless work is already being handled further up
// the stack, drains the queue. If work panics the controller stays usable:
// the rest of the queue is drained by the next submit.
func (c *Controller) submit(work func()) {
	c.mu.Lock()
	c.queue = append(c.queue, work)

	if c.busy {
		c.mu.Unlock()
		return
	}

	c.busy = true
	c.mu.Unlock()

	drained := false

	defer func() {
		if !drained {
			c.mu.Lock()
			c.busy = false
			c.mu.Unlock()
		}
	}()

	for {
		c.mu.Lock()

		if len(c.queue) == 0 {
			c.busy = false
			drained = true
			c.mu.Unlock()

			return
		}

		next := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		next()
	}
}
