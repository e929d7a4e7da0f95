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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"m4o.io/osmedit"
	"m4o.io/osmedit/cmd/osmedit/cli"
	"m4o.io/osmedit/dataset"
)

// modeChange selects the osmChange document instead of an osm edit document.
const modeChange = "change"

var exportOutput string

func init() {
	cli.RootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringP("mode", "m", "diff", "diff, full or change")
	flags.String("generator", osmedit.DefaultGenerator, "generator attribute of the document")
	flags.VarP(cli.NewOutputValue(&exportOutput, "file"), "output", "o", "output file, - for stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export [--mode diff|full|change] [<OSM file>]",
	Short: "Write the edits of an OSM file",
	Long:  "Write the edits of an OSM file as an osm edit document, a full snapshot or an osmChange document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mode(cmd)
		if err != nil {
			return err
		}

		ds, err := cli.Load(argPath(args))
		if err != nil {
			return err
		}

		w, err := cli.Create(exportOutput)
		if err != nil {
			return err
		}

		if err := export(w, ds, m, cli.String(cmd, "generator", cli.Settings.Generator)); err != nil {
			w.Close()
			return err
		}

		return w.Close()
	},
}

func mode(cmd *cobra.Command) (string, error) {
	m := cli.String(cmd, "mode", cli.Settings.Mode)

	if _, ok := osmedit.ParseMode(m); !ok && m != modeChange {
		return "", fmt.Errorf("unknown mode %q", m)
	}

	return m, nil
}

func export(w io.Writer, ds *dataset.DataSet, mode, generator string) error {
	if mode == modeChange {
		return osmedit.EncodeChange(w, ds, osmedit.WithGenerator(generator))
	}

	m, _ := osmedit.ParseMode(mode)

	return osmedit.NewEncoder(w, osmedit.WithMode(m), osmedit.WithGenerator(generator)).Encode(ds)
}
