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

// Package cli holds the root command and the plumbing shared by the osmedit
// subcommands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the osmedit command; subcommands register themselves in init.
var RootCmd = &cobra.Command{
	Use:           "osmedit",
	Short:         "Inspect and edit OpenStreetMap XML extracts",
	Long:          "Inspect and edit OpenStreetMap XML extracts and export the edits as OSM change documents",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()

		if path, _ := flags.GetString("config"); path != "" {
			cfg, err := LoadConfig(path)
			if err != nil {
				return err
			}

			Settings = cfg
		}

		if flags.Changed("log-level") {
			Settings.LogLevel, _ = flags.GetString("log-level")
		}

		if flags.Changed("progress") {
			Settings.Progress, _ = flags.GetBool("progress")
		}

		level, err := ParseLevel(Settings.LogLevel)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "YAML settings file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("progress", false, "show a progress bar while reading the input")
}

// Float returns the value of a float flag, or fallback when the flag was not
// given on the command line.
func Float(cmd *cobra.Command, name string, fallback float64) float64 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return fallback
	}

	return v
}

// String returns the value of a string flag, or fallback when the flag was
// not given on the command line.
func String(cmd *cobra.Command, name string, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}

	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback
	}

	return v
}
