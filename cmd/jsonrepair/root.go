// Copyright 2024 The jsonrepair Authors.
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

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// logConfig mirrors MacroPower-x/log's Config/Flags split: a small struct
// that owns its own pflag registration and turns itself into a slog.Handler
// on demand, instead of the CLI wiring slog directly.
type logConfig struct {
	verbose bool
	format  string
}

func (c *logConfig) registerFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log repair diagnostics to stderr")
	flags.StringVar(&c.format, "log-format", "logfmt", "diagnostic log format: logfmt|json")
}

func (c *logConfig) handler(w *os.File) (slog.Handler, error) {
	lvl := slog.LevelWarn
	if c.verbose {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch c.format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "logfmt", "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown --log-format %q: want logfmt or json", c.format)
	}
}

var logCfg = &logConfig{}

var rootCmd = &cobra.Command{
	Use:           "jsonrepair [file]",
	Short:         "Repair almost-JSON into strict JSON",
	Long:          "jsonrepair tolerantly parses near-miss JSON (missing quotes, trailing commas, comments, fenced code blocks, truncated streams, and more) and re-emits strict JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		h, err := logCfg.handler(os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(h))
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		return nil
	},
	RunE: runRepair,
}

func init() {
	logCfg.registerFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")
	registerRepairFlags(rootCmd)
}

// Execute runs the root command, printing any error to stderr and setting
// the process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("jsonrepair: %v", err))
		os.Exit(1)
	}
}
