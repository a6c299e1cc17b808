// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/latency"
	"github.com/consensuslab/benchplot/results"
)

// testStore returns a store with the series of one system measured
// with 10 and 20 nodes at two input rates.
func testStore(t *testing.T) *results.Mem {
	t.Helper()
	var sums []*aggregate.RunSummary
	for _, e2e := range []bool{true, false} {
		for _, nodes := range []int{10, 20} {
			for _, rate := range []int{20000, 30000} {
				for _, ceiling := range []float64{0, 2000} {
					sums = append(sums, &aggregate.RunSummary{
						System:     "vaba",
						Setup:      aggregate.Setup{Nodes: nodes, TxSize: 512, Rate: rate},
						EndToEnd:   e2e,
						Ceiling:    ceiling,
						Throughput: float64(rate) * 0.98,
						Latency:    latency.Summary{N: 10, Mean: float64(nodes * 50), StdDev: 20},
					})
				}
			}
		}
	}
	store := new(results.Mem)
	if _, err := results.Write(store, sums); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestPlotter(t *testing.T) {
	store := testStore(t)
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	p := New(Options{
		Store:   store,
		Legends: map[string]string{"vaba": "VABA"},
		Format:  "svg",
		Warn:    warn,
	})

	check := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	check(p.PlotLatency("vaba", []int{10, 20, 50}, []int{0}, 512))
	check(p.PlotTPS("vaba", []int{0}, []float64{2000}, 512))
	check(p.PlotCommitLatency("vaba", []int{0}, []int{20000}, 512))
	check(p.PlotFree([]float64{0}, []float64{0}, []string{"HotStuff, 10 nodes", "HotStuff, 20 nodes"}))
	check(p.Finalize("all", 2, 1500))

	var labels []string
	for _, e := range p.entries {
		labels = append(labels, e.label)
	}
	want := []string{
		"VABA, 10 nodes",
		"VABA, 20 nodes",
		"VABA, 2s max latency",
		"VABA, 20000 tx/s",
		"HotStuff, 10 nodes",
		"HotStuff, 20 nodes",
	}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("got legend %q, want %q", labels, want)
	}

	if len(warnings) != 1 || !strings.Contains(warnings[0], "vaba.latency-e2e-50-0-512.txt") {
		t.Errorf("got warnings %q, want one for the 50 node series", warnings)
	}
	if got := p.plot.Y.Max; got != 1500 {
		t.Errorf("got y axis max %v, want 1500", got)
	}
	if out := store.Bytes("all.svg"); !bytes.Contains(out, []byte("<svg")) {
		t.Errorf("all.svg is not an SVG image")
	}
}

func TestFinalizePNG(t *testing.T) {
	store := testStore(t)
	p := New(Options{Store: store, Width: 3 * vg.Inch, Height: 2 * vg.Inch, DPI: 50})
	if err := p.PlotLatency("vaba", []int{10}, []int{0}, 512); err != nil {
		t.Fatal(err)
	}
	if err := p.Finalize("happy-path", 4, 0); err != nil {
		t.Fatal(err)
	}
	if out := store.Bytes("happy-path.png"); !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Errorf("happy-path.png is not a PNG image")
	}
}

func TestFinalizeBadFormat(t *testing.T) {
	p := New(Options{Store: new(results.Mem), Format: "gif"})
	if err := p.Finalize("x", 1, 0); err == nil {
		t.Errorf("Finalize accepted format gif")
	}
}

func TestPlotFreeNoCoordinates(t *testing.T) {
	p := New(Options{Store: new(results.Mem)})
	if err := p.PlotFree(nil, []float64{0}, []string{"a"}); err == nil {
		t.Errorf("PlotFree accepted no x coordinates")
	}
}

func TestStyles(t *testing.T) {
	red, _ := ParseColor("tab:red")
	orange, _ := ParseColor("orange")
	dashed, _ := ParseDashes("dashed")
	p := New(Options{
		Store:  new(results.Mem),
		Colors: []color.Color{red, orange},
		Styles: [][]vg.Length{nil, dashed},
	})
	var got []style
	for i := 0; i < 3; i++ {
		got = append(got, p.nextStyle())
	}
	if got[0].color != red || got[1].color != orange || got[2].color != red {
		t.Errorf("colors do not cycle: %v", got)
	}
	if got[0].dashes != nil || len(got[1].dashes) == 0 {
		t.Errorf("line styles do not cycle: %v", got)
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.Color
	}{
		{"tab:red", color.NRGBA{0xd6, 0x27, 0x28, 0xff}},
		{"orange", color.NRGBA{0xff, 0x7f, 0x0e, 0xff}},
		{"#010203", color.NRGBA{1, 2, 3, 0xff}},
	} {
		got, err := ParseColor(test.in)
		if err != nil || got != test.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", test.in, got, err, test.want)
		}
	}
	for _, bad := range []string{"", "tab:mauve", "#12345", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
	if _, err := ParseDashes("wavy"); err == nil {
		t.Errorf("ParseDashes accepted wavy")
	}
}
