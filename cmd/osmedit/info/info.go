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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmedit/cmd/osmedit/cli"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/index"
	"m4o.io/osmedit/model"
)

var out io.Writer = os.Stdout

type summary struct {
	BoundingBox *model.BoundingBox `json:",omitempty"`

	NodeCount     int64
	WayCount      int64
	RelationCount int64

	Created   int64
	Modified  int64
	Deleted   int64
	Unchanged int64

	UnresolvedCount      int64
	InvalidGeometryCount int64
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>]",
	Short: "Print information about an OSM file",
	Long:  "Print element, edit and reference counts of an OSM XML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}

		ds, err := cli.Load(path)
		if err != nil {
			return err
		}

		info := runInfo(ds)

		jsonfmt, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(info)
		}

		renderTxt(info)

		return nil
	},
}

func runInfo(ds *dataset.DataSet) *summary {
	info := &summary{
		BoundingBox:          ds.Extent(),
		NodeCount:            int64(ds.Count(model.NODE)),
		WayCount:             int64(ds.Count(model.WAY)),
		RelationCount:        int64(ds.Count(model.RELATION)),
		UnresolvedCount:      int64(len(ds.Unresolved())),
		InvalidGeometryCount: int64(len(index.New(ds).Invalid())),
	}

	for e := range ds.Elements() {
		switch e.Action() {
		case model.Create:
			info.Created++
		case model.Modify:
			info.Modified++
		case model.Delete:
			info.Deleted++
		case model.Unchanged:
			info.Unchanged++
		}
	}

	return info
}

func renderJSON(info *summary) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(info *summary) {
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}

	fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
	fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
	fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	fmt.Fprintf(out, "Created: %s\n", humanize.Comma(info.Created))
	fmt.Fprintf(out, "Modified: %s\n", humanize.Comma(info.Modified))
	fmt.Fprintf(out, "Deleted: %s\n", humanize.Comma(info.Deleted))
	fmt.Fprintf(out, "Unchanged: %s\n", humanize.Comma(info.Unchanged))
	fmt.Fprintf(out, "UnresolvedReferences: %s\n", humanize.Comma(info.UnresolvedCount))
	fmt.Fprintf(out, "InvalidGeometries: %s\n", humanize.Comma(info.InvalidGeometryCount))
}
