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
	"strings"

	"github.com/spf13/cobra"

	"m4o.io/osmedit"
	"m4o.io/osmedit/cmd/osmedit/cli"
	"m4o.io/osmedit/dataset"
	"m4o.io/osmedit/model"
)

var tagOutput string

func init() {
	cli.RootCmd.AddCommand(tagCmd)

	flags := tagCmd.Flags()
	flags.StringP("element", "e", "", "element to edit, e.g. node/12")
	flags.StringArrayP("set", "s", nil, "set a tag, key=value")
	flags.StringArrayP("remove", "r", nil, "remove a tag by key")
	flags.StringP("mode", "m", "diff", "diff, full or change")
	flags.String("generator", osmedit.DefaultGenerator, "generator attribute of the document")
	flags.VarP(cli.NewOutputValue(&tagOutput, "file"), "output", "o", "output file, - for stdout")

	_ = tagCmd.MarkFlagRequired("element")
}

var tagCmd = &cobra.Command{
	Use:   "tag --element <type/id> [--set k=v]... [--remove k]... [<OSM file>]",
	Short: "Edit the tags of an element",
	Long:  "Edit the tags of an element and write the resulting edit document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		element, _ := flags.GetString("element")
		set, _ := flags.GetStringArray("set")
		remove, _ := flags.GetStringArray("remove")

		key, err := model.ParseKey(element)
		if err != nil {
			return err
		}

		m, err := mode(cmd)
		if err != nil {
			return err
		}

		ds, err := cli.Load(argPath(args))
		if err != nil {
			return err
		}

		if err := applyTags(ds, key, set, remove); err != nil {
			return err
		}

		w, err := cli.Create(tagOutput)
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

// applyTags sets and removes tags on one element. Every assignment is
// checked before the first change is made.
func applyTags(ds *dataset.DataSet, key model.Key, set, remove []string) error {
	pairs := make([][2]string, 0, len(set))

	for _, s := range set {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("tag %q: expected key=value: %w", s, model.ErrMalformedAttribute)
		}

		pairs = append(pairs, [2]string{k, v})
	}

	if _, ok := ds.Get(key); !ok {
		return model.NewKeyError(model.ErrNotFound, key)
	}

	for _, p := range pairs {
		if err := ds.SetTag(key, p[0], p[1]); err != nil {
			return err
		}
	}

	for _, k := range remove {
		if err := ds.RemoveTag(key, k); err != nil {
			return err
		}
	}

	return nil
}
