// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/consensuslab/benchplot/config"
	"github.com/consensuslab/benchplot/results"
)

// An app holds the state shared by the subcommands.
type app struct {
	// Flags.
	configPath string
	debug      bool
	htmlPath   string
	kinds      []string

	cfg   *config.Config
	store results.Store
	log   zerolog.Logger
	out   io.Writer
}

func newRootCmd() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:   "benchplot",
		Short: "Aggregate consensus benchmark logs and plot them",
		Long: `benchplot aggregates the logs of consensus protocol benchmarks into
throughput and latency reports, writes the numbers to series files,
and draws comparison graphs from them.

With no subcommand, it aggregates every configured system and then
draws every configured graph.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.aggregate(nil); err != nil {
				return a.fail(err)
			}
			return a.fail(a.plot(nil))
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML `file` overriding the built-in configuration")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log debugging output")
	root.Flags().StringVar(&a.htmlPath, "html", "", "also write the reports as HTML to `file`")

	aggCmd := &cobra.Command{
		Use:   "aggregate [systems...]",
		Short: "Aggregate logs into reports and series files",
		Long: `aggregate reads the logs of the given systems, or of every configured
system, prints their reports and writes their series files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(a.aggregate(args))
		},
	}
	aggCmd.Flags().StringVar(&a.htmlPath, "html", "", "also write the reports as HTML to `file`")

	plotCmd := &cobra.Command{
		Use:   "plot [graphs...]",
		Short: "Draw graphs from series files",
		Long: `plot draws the given graphs, or every configured graph, from the
series files written by aggregate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(a.plot(args))
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events files...",
		Short: "Print the events parsed from log files",
		Long: `events parses log files and prints the configuration and events they
contain in a canonical form, one per line. Malformed lines are reported
on stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(a.events(args))
		},
	}
	eventsCmd.Flags().StringSliceVar(&a.kinds, "kind", nil, "print only events of these `kinds` (submit, propose, commit, deliver)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Dump(a.out)
		},
	}

	root.AddCommand(aggCmd, plotCmd, eventsCmd, configCmd)
	return root
}

// setup loads the configuration and sets up logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if a.debug {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()
	a.out = cmd.OutOrStdout()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.log.Error().Err(err).Msg("loading configuration")
		return err
	}
	a.cfg = cfg
	a.store = results.Dir(cfg.OutDir)
	a.log.Debug().Str("root", cfg.Root).Str("out_dir", cfg.OutDir).Msg("configuration loaded")
	return nil
}

// fail logs a fatal error, if any, and returns it.
func (a *app) fail(err error) error {
	if err != nil {
		a.log.Error().Err(err).Msg("benchplot failed")
	}
	return err
}

// warner returns a Warn hook that logs to log.
func warner(log zerolog.Logger) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		log.Warn().Msg(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
	}
}
