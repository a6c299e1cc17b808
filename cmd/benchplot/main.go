// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot aggregates the logs of consensus protocol benchmarks and
// plots the results.
//
// Usage:
//
//	benchplot [--config file] [--debug]
//	benchplot aggregate [systems...]
//	benchplot plot [graphs...]
//	benchplot events [--kind kinds] files...
//	benchplot config
//
// With no subcommand, benchplot aggregates every configured system
// and then draws every configured graph.
//
// # Input
//
// The logs of a system live in {root}/{system}/results/*.txt, one
// file per benchmark run. Logs may be compressed with gzip (.txt.gz)
// or zstd (.txt.zst). A run declares its setup with configuration
// lines such as
//
//	nodes: 20
//	faults: 1
//	tx_size: 512
//	rate: 50,000 tx/s
//
// and reports events with lines like
//
//	[2021-05-10T12:00:00.123Z INFO node::core] Created B17 node=3
//	[2021-05-10T12:00:01.021Z INFO node::core] Committed B17 node=3
//	1620648000123 Sending sample transaction 40
//	1620648000456 Committed sample transaction 40
//
// or, one JSON object per line,
//
//	{"ts": 1620648000123, "event": "submit", "id": 40, "node": "3"}
//
// # Aggregation
//
// Each system is aggregated twice: end-to-end, from a client sending
// a sample transaction to its commit, and partial, from block
// creation to block commit. Runs with the same setup are pooled. For
// each setup, benchplot reports throughput and latency over all
// completed requests and, separately, over the requests completed
// within each latency ceiling.
//
// The reports are printed to stdout. The numbers behind them are
// written to the output directory as series files named after the
// system and setup, such as "vaba.latency-e2e-20-0-512.txt", which
// the plot subcommand reads back. Stale series files of a system are
// removed before it is aggregated.
//
// # Configuration
//
// The built-in configuration aggregates the systems 3-chain, 2-chain,
// vaba, ditto-async and ditto-sync with latency ceilings of 2 and 5
// seconds and draws six comparison graphs. "benchplot config" prints
// it as YAML. A file given with --config overrides it key by key, and
// environment variables such as BENCHPLOT_ROOT and BENCHPLOT_OUT_DIR
// override both.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
