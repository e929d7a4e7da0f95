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

// Package edit holds the osmedit commands that query and change an extract.
package edit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"m4o.io/osmedit/atlas"
	"m4o.io/osmedit/cmd/osmedit/cli"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
	"m4o.io/osmedit/selection"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(selectCmd)

	flags := selectCmd.Flags()
	flags.Float64("lat", 0, "latitude of the tap")
	flags.Float64("lon", 0, "longitude of the tap")
	flags.Float64P("tolerance", "t", selection.DefaultTolerance, "tap radius in metres")
	flags.StringP("atlas", "a", "", "Field Papers atlas (GeoJSON) to locate the page of the tap")

	_ = selectCmd.MarkFlagRequired("lat")
	_ = selectCmd.MarkFlagRequired("lon")
}

var selectCmd = &cobra.Command{
	Use:   "select --lat <lat> --lon <lon> [<OSM file>]",
	Short: "List the elements at a point",
	Long:  "List the elements whose geometry contains or lies near a point, nearest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		lat, err := flags.GetFloat64("lat")
		if err != nil {
			return err
		}

		lon, err := flags.GetFloat64("lon")
		if err != nil {
			return err
		}

		ds, err := cli.Load(argPath(args))
		if err != nil {
			return err
		}

		var a *atlas.Atlas

		if path, _ := flags.GetString("atlas"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}

			defer f.Close()

			if a, err = atlas.Read(f); err != nil {
				return err
			}
		}

		tolerance := cli.Float(cmd, "tolerance", cli.Settings.Tolerance)
		point := orb.Point{lon, lat}

		if outside(ds, point) {
			slog.Warn("tap is outside of the extract", "lat", lat, "lon", lon, "extent", ds.Extent().String())
		}

		renderSelection(runSelect(ds, point, tolerance), page(a, point))

		return nil
	},
}

// runSelect taps the point through a selection controller and returns the
// resulting selection.
func runSelect(ds *dataset.DataSet, point orb.Point, tolerance float64) []model.Element {
	var selected []model.Element

	c := selection.New(index.New(ds), selection.WithTolerance(tolerance))
	c.AddListener(func(sel []model.Element) {
		selected = sel
	})

	c.Tap(point)

	return selected
}

// outside reports whether the point lies outside the extent of the extract.
func outside(ds *dataset.DataSet, point orb.Point) bool {
	b := ds.Extent()

	return b != nil && !b.Contains(model.Degrees(point.Lat()), model.Degrees(point.Lon()))
}

func page(a *atlas.Atlas, point orb.Point) *atlas.Page {
	if a == nil {
		return nil
	}

	p, _ := a.PageAt(point)

	return p
}

func renderSelection(selected []model.Element, p *atlas.Page) {
	if p != nil {
		fmt.Fprintf(out, "page %s %s\n", p.Number, p.URL)
	}

	if len(selected) == 0 {
		fmt.Fprintln(out, "nothing selected")
		return
	}

	for _, e := range selected {
		fmt.Fprintf(out, "%s\t%s\t%s\n", model.KeyOf(e), e.Action(), formatTags(*e.GetTags()))
	}
}

func formatTags(tags model.Tags) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+"="+t.Value)
	}

	return strings.Join(parts, " ")
}

func argPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}

	return ""
}
