// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats aggregation results for people.
//
// Summaries are grouped by system and latency mode. Each group is a
// table with one row per setup and latency ceiling. Throughput is
// shown in transactions per second and latencies in seconds, both
// with SI prefixes chosen per column.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/internal/texttab"
)

var header = []string{"setup", "ceiling", "files", "tx/s", "mean sec", "±", "p50 sec", "p90 sec", "p99 sec", "n", "incomplete"}

// A group is the formatted table of one system and mode.
type group struct {
	System string
	Mode   string
	Header []string
	Rows   [][]string
}

// groups splits sums into runs of the same system and mode and
// formats their cells.
func groups(sums []*aggregate.RunSummary) []*group {
	var out []*group
	for i := 0; i < len(sums); {
		j := i + 1
		for j < len(sums) && sums[j].System == sums[i].System && sums[j].EndToEnd == sums[i].EndToEnd {
			j++
		}
		out = append(out, format(sums[i:j]))
		i = j
	}
	return out
}

func format(sums []*aggregate.RunSummary) *group {
	var tps, lat []float64
	for _, s := range sums {
		tps = append(tps, s.Throughput)
		if s.Latency.Defined() {
			l := s.Latency
			lat = append(lat, l.Mean/1000, l.P50/1000, l.P90/1000, l.P99/1000)
		}
	}
	tpsScale, latScale := CommonScale(tps), CommonScale(lat)

	g := &group{System: sums[0].System, Mode: sums[0].Mode(), Header: header}
	for _, s := range sums {
		ceiling := "-"
		if s.Ceiling > 0 {
			ceiling = Scale(s.Ceiling/1000) + "s"
		}
		l := s.Latency
		mean, pct, p50, p90, p99 := "-", "", "-", "-", "-"
		if l.Defined() {
			mean = latScale.Format(l.Mean / 1000)
			p50 = latScale.Format(l.P50 / 1000)
			p90 = latScale.Format(l.P90 / 1000)
			p99 = latScale.Format(l.P99 / 1000)
			if l.N > 1 && l.Mean > 0 {
				pct = fmt.Sprintf("± %.0f%%", 100*l.StdDev/l.Mean)
			}
		}
		g.Rows = append(g.Rows, []string{
			s.Setup.String(),
			ceiling,
			strconv.Itoa(s.Files),
			tpsScale.Format(s.Throughput),
			mean, pct, p50, p90, p99,
			strconv.Itoa(l.N),
			strconv.Itoa(s.Incomplete),
		})
	}
	return g
}

// FormatText writes sums to w as text tables.
func FormatText(w io.Writer, sums []*aggregate.RunSummary) error {
	for i, g := range groups(sums) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "system: %s\nmode: %s\n", g.System, g.Mode); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row()
		for col, h := range g.Header {
			tab.Cell(h, align(col))
		}
		for _, row := range g.Rows {
			tab.Row()
			for col, v := range row {
				tab.Cell(v, align(col))
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// align returns the alignment of a column: the setup is text,
// everything else is a number.
func align(col int) texttab.CellOption {
	if col == 0 {
		return texttab.Left
	}
	return texttab.Right
}
