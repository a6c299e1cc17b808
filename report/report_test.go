// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/latency"
)

func testSummaries() []*aggregate.RunSummary {
	setup := aggregate.Setup{Nodes: 10, Faults: 0, TxSize: 512, Rate: 50000}
	return []*aggregate.RunSummary{
		{
			System: "vaba", Setup: setup, EndToEnd: true,
			Files: 1, Window: 1000, Completed: 2, Incomplete: 3,
			Throughput: 48000,
			Latency:    latency.Summary{N: 2, Mean: 150, StdDev: 70.71, Min: 100, Max: 200, P50: 150, P90: 190, P99: 199},
		},
		{
			System: "vaba", Setup: setup, EndToEnd: true, Ceiling: 2000,
			Files: 1, Window: 1000, Incomplete: 3,
			Throughput: 30000,
		},
		{
			System: "a<b", Setup: setup,
			Files: 1, Window: 1000, Completed: 1,
			Throughput: 1,
			Latency:    latency.Summary{N: 1, Mean: 5, Min: 5, Max: 5, P50: 5, P90: 5, P99: 5},
		},
	}
}

func TestFormatText(t *testing.T) {
	var buf strings.Builder
	if err := FormatText(&buf, testSummaries()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "nodes=") {
			rows = append(rows, strings.Fields(line)[4:])
		}
	}
	want := [][]string{
		{"-", "1", "48.00k", "150.0m", "±", "47%", "150.0m", "190.0m", "199.0m", "2", "3"},
		{"2.000s", "1", "30.00k", "-", "-", "-", "-", "0", "3"},
		{"-", "1", "1.000", "5.000m", "5.000m", "5.000m", "5.000m", "1", "0"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s\noutput:\n%s", diff, out)
	}

	for _, s := range []string{"system: vaba\nmode: e2e\nsetup ", "\n\nsystem: a<b\nmode: partial\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
}

func TestFormatTextEmpty(t *testing.T) {
	var buf strings.Builder
	if err := FormatText(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("got %q for no summaries", buf.String())
	}
}

func TestFormatHTML(t *testing.T) {
	var buf strings.Builder
	if err := FormatHTML(&buf, testSummaries()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{
		"<h2>vaba <small>(e2e)</small></h2>",
		"<td>48.00k</td>",
		"<th>tx/s</th>",
		"<h2>a&lt;b <small>(partial)</small></h2>",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
	if got := strings.Count(out, "<table>"); got != 2 {
		t.Errorf("got %d tables, want 2", got)
	}
}
