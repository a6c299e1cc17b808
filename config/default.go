// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "fmt"

// Default returns the built-in sweep: five protocol variants, the
// latency ceilings of the throughput charts, and six charts.
func Default() *Config {
	c := &Config{
		Root:     ".",
		OutDir:   ".",
		Format:   "png",
		DPI:      150,
		Ceilings: []float64{2000, 5000},
		Systems: []System{
			{Name: "3-chain", Legend: "3-chain HotStuff"},
			{Name: "2-chain", Legend: "2-chain HotStuff"},
			{Name: "vaba", Legend: "VABA"},
			{Name: "ditto-async", Legend: "Ditto (async)"},
			{Name: "ditto-sync", Legend: "Ditto (sync)"},
		},
	}
	legend := c.Legends()

	const txSize = 512
	committees := []int{10, 20, 50}
	partiallySync := []string{"3-chain", "2-chain", "vaba", "ditto-sync"}
	leaderBased := []string{"3-chain", "2-chain"}
	leaderless := []string{"vaba", "ditto-async"}

	latency := func(systems []string, nodes, faults []int) []Plot {
		var ps []Plot
		for _, s := range systems {
			ps = append(ps, Plot{Kind: KindLatency, System: s, Nodes: nodes, Faults: faults, TxSize: txSize})
		}
		return ps
	}
	// free places the legend entries of the leader-based systems,
	// which make no progress under DoS.
	free := func(labels func(name string) []string) []Plot {
		var ps []Plot
		for i, s := range leaderBased {
			ps = append(ps, Plot{Kind: KindFree, X: []float64{float64(i * 700)}, Y: []float64{0}, Labels: labels(legend[s])})
		}
		return ps
	}

	var tps []Plot
	for _, s := range partiallySync {
		tps = append(tps, Plot{Kind: KindTPS, System: s, Faults: []int{0}, Ceilings: c.Ceilings, TxSize: txSize})
	}
	var commit []Plot
	for _, s := range leaderBased {
		commit = append(commit, Plot{Kind: KindCommitLatency, System: s, Faults: []int{0}, Rates: []int{20000, 30000}, TxSize: txSize})
	}

	c.Graphs = []Graph{
		{
			Name: "happy-path", Width: 12.8, LegendCols: 4,
			Plots: latency(partiallySync, committees, []int{0}),
		},
		{
			Name: "happy-path-tps", LegendCols: 2,
			Plots: tps,
		},
		{
			Name: "leader-under-dos", LegendCols: 2,
			Plots: append(free(func(name string) []string {
				var l []string
				for _, n := range committees {
					l = append(l, fmt.Sprintf("%s, %d nodes", name, n))
				}
				return l
			}), latency(leaderless, committees, []int{0})...),
		},
		{
			Name: "dead-nodes", Width: 12.8, LegendCols: 4,
			Plots: latency(partiallySync, []int{20}, []int{0, 1, 3}),
		},
		{
			Name: "dead-nodes-and-dos", LegendCols: 2,
			Plots: append(free(func(name string) []string {
				return []string{
					name + ", 20 nodes",
					name + ", 20 nodes (1 faulty)",
					name + ", 20 nodes (3 faulty)",
				}
			}), latency(leaderless, []int{20}, []int{0, 1, 3})...),
		},
		{
			Name: "happy-path-commit", LegendCols: 2, TopLim: 1500,
			Colors: []string{"tab:red", "tab:orange"},
			Styles: []string{"solid", "dashed"},
			Plots:  commit,
		},
	}
	return c
}
