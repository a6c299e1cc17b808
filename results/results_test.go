// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/latency"
)

func TestStores(t *testing.T) {
	for _, test := range []struct {
		name  string
		store Store
	}{
		{"dir", Dir(t.TempDir())},
		{"mem", new(Mem)},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := test.store
			put := func(name, content string) {
				t.Helper()
				w, err := s.Create(name)
				if err != nil {
					t.Fatal(err)
				}
				io.WriteString(w, content)
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}
			}
			get := func(name string) (string, error) {
				r, err := s.Open(name)
				if err != nil {
					return "", err
				}
				defer r.Close()
				b, err := io.ReadAll(r)
				return string(b), err
			}

			put("vaba.latency-e2e-4-0-512.txt", "old content that is long")
			put("vaba.latency-e2e-4-0-512.txt", "new")
			put("vaba.tps-e2e-0-512-2000.txt", "tps")
			put("vaba-x.latency-e2e-4-0-512.txt", "other system")
			put("notes.txt", "unrelated")

			if got, err := get("vaba.latency-e2e-4-0-512.txt"); err != nil || got != "new" {
				t.Errorf("got %q, %v; want truncated content %q", got, err, "new")
			}

			if err := s.Clear("vaba"); err != nil {
				t.Fatal(err)
			}
			for _, name := range []string{"vaba.latency-e2e-4-0-512.txt", "vaba.tps-e2e-0-512-2000.txt"} {
				if _, err := get(name); !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("%s: got %v after Clear, want not exist", name, err)
				}
			}
			for _, name := range []string{"vaba-x.latency-e2e-4-0-512.txt", "notes.txt"} {
				if _, err := get(name); err != nil {
					t.Errorf("%s: removed by Clear: %v", name, err)
				}
			}
		})
	}
}

func TestClearPattern(t *testing.T) {
	if got, want := clearPattern("a*b"), `a\*b.*.txt`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	dir := t.TempDir()
	for _, name := range []string{"a*b.x.txt", "axxb.x.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0666); err != nil {
			t.Fatal(err)
		}
	}
	if err := Dir(dir).Clear("a*b"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "axxb.x.txt")); err != nil {
		t.Errorf("Clear treated the system name as a pattern: %v", err)
	}
}

func TestSeries(t *testing.T) {
	s := &Series{
		Columns: []string{ColRate, ColThroughput},
		Rows:    [][]float64{{1000, 998.5}, {50000, 47000}},
	}
	var buf strings.Builder
	if err := WriteSeries(&buf, s); err != nil {
		t.Fatal(err)
	}
	if got := strings.Fields(strings.SplitN(buf.String(), "\n", 2)[0]); !cmp.Equal(got, []string{"#", "rate", "throughput"}) {
		t.Errorf("got header %q", got)
	}

	got, err := ReadSeries(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("series (-want +got):\n%s", diff)
	}
	rates, ok := got.Column(ColRate)
	if !ok || !cmp.Equal(rates, []float64{1000, 50000}) {
		t.Errorf("got rate column %v, %v", rates, ok)
	}
	if _, ok := got.Column("missing"); ok {
		t.Errorf("found a missing column")
	}

	if err := WriteSeries(io.Discard, &Series{Columns: []string{"a"}, Rows: [][]float64{{1, 2}}}); err == nil {
		t.Errorf("WriteSeries accepted a ragged row")
	}
}

func TestReadSeriesErrors(t *testing.T) {
	for _, test := range []struct{ input, want string }{
		{"", "missing header"},
		{"1 2\n", "line 1: missing header"},
		{"# a b\n1\n", "line 2: got 1 values, want 2"},
		{"# a\nx\n", `line 2: strconv.ParseFloat: parsing "x": invalid syntax`},
		{"# a\n# b\n", "line 2: duplicate header"},
	} {
		_, err := ReadSeries(strings.NewReader(test.input))
		if err == nil || err.Error() != test.want {
			t.Errorf("ReadSeries(%q): got error %v, want %s", test.input, err, test.want)
		}
	}
}

func summary(nodes, rate int, ceiling, tps, mean float64) *aggregate.RunSummary {
	return &aggregate.RunSummary{
		System:     "vaba",
		Setup:      aggregate.Setup{Nodes: nodes, Faults: 0, TxSize: 512, Rate: rate},
		EndToEnd:   true,
		Ceiling:    ceiling,
		Throughput: tps,
		Latency:    latency.Summary{N: 10, Mean: mean, StdDev: 1, P50: mean, P90: mean, P99: mean},
	}
}

func TestWrite(t *testing.T) {
	sums := []*aggregate.RunSummary{
		summary(10, 50000, 0, 49000, 400),
		summary(10, 50000, 2000, 49000, 400),
		summary(10, 20000, 0, 19900, 300),
		summary(10, 20000, 2000, 19900, 300),
		summary(20, 20000, 0, 19000, 900),
		summary(20, 20000, 2000, 18000, 900),
	}
	store := new(Mem)
	names, err := Write(store, sums)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"vaba.latency-e2e-10-0-512.txt",
		"vaba.nodes-e2e-0-50000-512.txt",
		"vaba.nodes-e2e-0-20000-512.txt",
		"vaba.latency-e2e-20-0-512.txt",
		"vaba.tps-e2e-0-512-2000.txt",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}

	read := func(name string) *Series {
		t.Helper()
		s, ok, err := Read(store, name)
		if err != nil || !ok {
			t.Fatalf("Read(%s) = %v, %v", name, ok, err)
		}
		return s
	}

	// Rows are sorted by their first column.
	lat := read("vaba.latency-e2e-10-0-512.txt")
	if diff := cmp.Diff([][]float64{
		{20000, 19900, 300, 1, 300, 300, 300, 10},
		{50000, 49000, 400, 1, 400, 400, 400, 10},
	}, lat.Rows); diff != "" {
		t.Errorf("latency rows (-want +got):\n%s", diff)
	}

	// The TPS file keeps the best rate per committee.
	tps := read("vaba.tps-e2e-0-512-2000.txt")
	if diff := cmp.Diff([][]float64{
		{10, 49000, 50000},
		{20, 18000, 20000},
	}, tps.Rows); diff != "" {
		t.Errorf("tps rows (-want +got):\n%s", diff)
	}

	nodes := read("vaba.nodes-e2e-0-20000-512.txt")
	if diff := cmp.Diff([][]float64{
		{10, 300, 1, 300, 10},
		{20, 900, 1, 900, 10},
	}, nodes.Rows); diff != "" {
		t.Errorf("nodes rows (-want +got):\n%s", diff)
	}

	if _, ok, err := Read(store, "vaba.latency-e2e-50-0-512.txt"); ok || err != nil {
		t.Errorf("Read of a missing file = %v, %v; want false, nil", ok, err)
	}
}
