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

package edit

import (
	"io"

	"github.com/spf13/cobra"

	"m4o.io/osmedit/cmd/osmedit/cli"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/render"
)

var geojsonOutput string

func init() {
	cli.RootCmd.AddCommand(geojsonCmd)

	flags := geojsonCmd.Flags()
	flags.VarP(cli.NewOutputValue(&geojsonOutput, "file"), "output", "o", "output file, - for stdout")
}

var geojsonCmd = &cobra.Command{
	Use:   "geojson [<OSM file>]",
	Short: "Write the geometries of an OSM file as GeoJSON",
	Long:  "Write the standalone nodes and the ways of an OSM file as a GeoJSON feature collection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ds, err := cli.Load(argPath(args))
		if err != nil {
			return err
		}

		w, err := cli.Create(geojsonOutput)
		if err != nil {
			return err
		}

		if err := writeGeoJSON(w, ds); err != nil {
			w.Close()
			return err
		}

		return w.Close()
	},
}

func writeGeoJSON(w io.Writer, ds *dataset.DataSet) error {
	b, err := render.FeatureCollection(index.New(ds)).MarshalJSON()
	if err != nil {
		return err
	}

	_, err = w.Write(append(b, '\n'))

	return err
}
