// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, g := range c.Graphs {
		names = append(names, g.Name)
	}
	want := []string{"happy-path", "happy-path-tps", "leader-under-dos", "dead-nodes", "dead-nodes-and-dos", "happy-path-commit"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("graphs (-want +got):\n%s", diff)
	}

	dos := c.Graphs[2]
	if got := dos.Plots[1].Labels; !cmp.Equal(got, []string{"2-chain HotStuff, 10 nodes", "2-chain HotStuff, 20 nodes", "2-chain HotStuff, 50 nodes"}) {
		t.Errorf("got free labels %q", got)
	}
	if got := dos.Plots[1].X; !cmp.Equal(got, []float64{700}) {
		t.Errorf("got free x %v, want [700]", got)
	}
	if s, ok := c.System("vaba"); !ok || s.Legend != "VABA" {
		t.Errorf("System(vaba) = %+v, %v", s, ok)
	}
}

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Load(\"\") differs from Default (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	err := os.WriteFile(path, []byte(`
root: /data/bench
format: svg
systems:
  - name: vaba
graphs:
  - name: only-vaba
    legend_cols: 1
    plots:
      - kind: latency
        system: vaba
        nodes: [4]
        faults: [0]
        tx_size: 512
`), 0666)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("BENCHPLOT_OUT_DIR", "/tmp/out")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Root = "/data/bench"
	want.OutDir = "/tmp/out"
	want.Format = "svg"
	want.Systems = []System{{Name: "vaba"}}
	want.Graphs = []Graph{{
		Name:       "only-vaba",
		LegendCols: 1,
		Plots:      []Plot{{Kind: KindLatency, System: "vaba", Nodes: []int{4}, Faults: []int{0}, TxSize: 512}},
	}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if got := c.Legends(); len(got) != 0 {
		t.Errorf("got legends %v for a system without one", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct{ yaml, want string }{
		{"format: gif\n", "invalid format: gif"},
		{"ceilings: [2000, -1]\n", "invalid latency ceiling: -1"},
		{"systems: [{name: a}, {name: a}]\n", "duplicate system a"},
		{"graphs: [{name: g, plots: [{kind: pie}]}]\n", `graph g: unknown plot kind "pie"`},
		{"graphs: [{name: g, plots: [{kind: tps, system: nope}]}]\n", `graph g: tps plot of unknown system "nope"`},
		{"graphs: [{name: g, plots: [{kind: free}]}]\n", "graph g: free plot without coordinates"},
		{"graphs: [{name: g, colors: [mauve]}]\n", `graph g: unknown color "mauve"`},
	} {
		path := filepath.Join(dir, "c.yaml")
		if err := os.WriteFile(path, []byte(test.yaml), 0666); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("Load(%q): got %v, want error containing %q", test.yaml, err, test.want)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Load of a missing file succeeded")
	}
}

func TestDump(t *testing.T) {
	var buf strings.Builder
	if err := Default().Dump(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, []byte(buf.String()), 0666); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("dumped config does not load back (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "legend_cols: 4") {
		t.Errorf("dump lacks legend_cols:\n%s", buf.String())
	}
}
