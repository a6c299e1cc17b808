// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"slices"

	"gonum.org/v1/plot/vg"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/benchlog"
	"github.com/consensuslab/benchplot/config"
	"github.com/consensuslab/benchplot/plot"
	"github.com/consensuslab/benchplot/report"
	"github.com/consensuslab/benchplot/results"
)

// aggregate aggregates the named systems, or all systems if names is
// empty, in both latency modes. A system without logs is a
// configuration error.
func (a *app) aggregate(names []string) error {
	for _, name := range names {
		if _, ok := a.cfg.System(name); !ok {
			return fmt.Errorf("unknown system %q", name)
		}
	}

	var all []*aggregate.RunSummary
	for _, sys := range a.cfg.Systems {
		if len(names) > 0 && !slices.Contains(names, sys.Name) {
			continue
		}
		log := a.log.With().Str("system", sys.Name).Logger()

		if err := a.store.Clear(sys.Name); err != nil {
			return err
		}
		paths, err := aggregate.Glob(a.cfg.Root, sys.Name)
		if err != nil {
			return err
		}
		log.Debug().Int("files", len(paths)).Msg("aggregating")

		for _, e2e := range []bool{true, false} {
			agg, err := aggregate.New(sys.Name, paths, a.cfg.Ceilings, aggregate.Options{
				EndToEnd: e2e,
				Warn:     warner(log),
			})
			if err != nil {
				return err
			}
			sums, err := agg.Aggregate()
			if err != nil {
				return fmt.Errorf("%s: %w", sys.Name, err)
			}
			if err := report.FormatText(a.out, sums); err != nil {
				return err
			}
			fmt.Fprintln(a.out)

			files, err := results.Write(a.store, sums)
			if err != nil {
				return err
			}
			log.Debug().Str("mode", aggregate.Mode(e2e)).Strs("series", files).Msg("wrote series")
			all = append(all, sums...)
		}
	}

	if a.htmlPath != "" {
		return writeHTML(a.htmlPath, all)
	}
	return nil
}

func writeHTML(path string, sums []*aggregate.RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.FormatHTML(f, sums); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// plot draws the named graphs, or all graphs if names is empty.
func (a *app) plot(names []string) error {
	for _, name := range names {
		if !slices.ContainsFunc(a.cfg.Graphs, func(g config.Graph) bool { return g.Name == name }) {
			return fmt.Errorf("unknown graph %q", name)
		}
	}
	for _, g := range a.cfg.Graphs {
		if len(names) > 0 && !slices.Contains(names, g.Name) {
			continue
		}
		if err := a.plotGraph(&g); err != nil {
			return fmt.Errorf("graph %s: %w", g.Name, err)
		}
		a.log.Info().Str("graph", g.Name).Msg("plotted")
	}
	return nil
}

func (a *app) plotGraph(g *config.Graph) error {
	opts := plot.Options{
		Store:   a.store,
		Legends: a.cfg.Legends(),
		Width:   vg.Length(g.Width) * vg.Inch,
		Height:  vg.Length(g.Height) * vg.Inch,
		Format:  a.cfg.Format,
		DPI:     a.cfg.DPI,
		Warn:    warner(a.log.With().Str("graph", g.Name).Logger()),
	}
	for _, s := range g.Colors {
		c, err := plot.ParseColor(s)
		if err != nil {
			return err
		}
		opts.Colors = append(opts.Colors, c)
	}
	for _, s := range g.Styles {
		d, err := plot.ParseDashes(s)
		if err != nil {
			return err
		}
		opts.Styles = append(opts.Styles, d)
	}

	p := plot.New(opts)
	for _, pl := range g.Plots {
		var err error
		switch pl.Kind {
		case config.KindLatency:
			err = p.PlotLatency(pl.System, pl.Nodes, pl.Faults, pl.TxSize)
		case config.KindTPS:
			ceilings := pl.Ceilings
			if len(ceilings) == 0 {
				ceilings = a.cfg.Ceilings
			}
			err = p.PlotTPS(pl.System, pl.Faults, ceilings, pl.TxSize)
		case config.KindCommitLatency:
			err = p.PlotCommitLatency(pl.System, pl.Faults, pl.Rates, pl.TxSize)
		case config.KindFree:
			err = p.PlotFree(pl.X, pl.Y, pl.Labels)
		default:
			err = fmt.Errorf("unknown plot kind %q", pl.Kind)
		}
		if err != nil {
			return err
		}
	}
	return p.Finalize(g.Name, g.LegendCols, g.TopLim)
}

// events prints the records of the log files at paths in canonical
// form.
func (a *app) events(paths []string) error {
	var keep func(benchlog.Kind) bool
	if len(a.kinds) > 0 {
		want := make(map[benchlog.Kind]bool)
		for _, s := range a.kinds {
			k, ok := benchlog.ParseKind(s)
			if !ok {
				return fmt.Errorf("unknown event kind %q", s)
			}
			want[k] = true
		}
		keep = func(k benchlog.Kind) bool { return want[k] }
	}

	w := benchlog.NewWriter(a.out)
	files := benchlog.Files{Paths: paths}
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *benchlog.SyntaxError:
			// Non-fatal parse error. Warn but keep going.
			a.log.Warn().Msg(rec.Error())
			continue
		case *benchlog.Event:
			if keep != nil && !keep(rec.Kind) {
				continue
			}
		}
		if err := w.Write(files.Result()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return files.Err()
}

