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

package selection

import (
	"context"

	"github.com/destel/rill"
	"github.com/paulmach/orb"
)

// Event is one input to the controller loop. Exactly one of the fields is
// expected to be set.
type Event struct {
	Tap      *orb.Point
	Deselect bool

	// Edit mutates the data set between taps, e.g. a tag edit from the UI.
	Edit func() error
}

// TapAt is the event for a tap at point.
func TapAt(point orb.Point) Event {
	return Event{Tap: &point}
}

// Run handles events one at a time in arrival order until events is closed
// or ctx is done. Failed edits are logged and do not stop the loop.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	in := make(chan rill.Try[Event])

	go func() {
		defer close(in)

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}

				select {
				case in <- rill.Wrap(e, nil):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	err := rill.ForEach(in, 1, func(e Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.handle(e)

		return nil
	})
	if err != nil {
		return err
	}

	return ctx.Err()
}

func (c *Controller) handle(e Event) {
	switch {
	case e.Edit != nil:
		c.submit(func() {
			if err := e.Edit(); err != nil {
				c.logger.Error("edit failed", "error", err)
			}
		})
	case e.Deselect:
		c.Deselect()
	case e.Tap != nil:
		c.Tap(*e.Tap)
	}
}
