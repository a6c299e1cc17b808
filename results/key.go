// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"github.com/consensuslab/benchplot/aggregate"
)

// A Key identifies aggregated values by the parameters the plotter
// selects them with. Each file name uses the subset of Key that the
// file is indexed by; the remaining parameters become its rows.
type Key struct {
	System string
	Mode   string // "e2e" or "partial"
	Nodes  int
	Faults int
	TxSize int
	Rate   int

	// Ceiling is a latency ceiling in milliseconds.
	Ceiling float64
}

// LatencyFile names the latency/throughput curve of a committee: one
// row per input rate.
func (k Key) LatencyFile() string {
	return fmt.Sprintf("%s.latency-%s-%d-%d-%d.txt", k.System, k.Mode, k.Nodes, k.Faults, k.TxSize)
}

// TPSFile names the throughput achieved under a latency ceiling: one
// row per committee size.
func (k Key) TPSFile() string {
	return fmt.Sprintf("%s.tps-%s-%d-%d-%s.txt", k.System, k.Mode, k.Faults, k.TxSize, strconv.FormatFloat(k.Ceiling, 'f', -1, 64))
}

// NodesFile names the latency at a fixed input rate: one row per
// committee size.
func (k Key) NodesFile() string {
	return fmt.Sprintf("%s.nodes-%s-%d-%d-%d.txt", k.System, k.Mode, k.Faults, k.Rate, k.TxSize)
}

// Column names of the series files.
const (
	ColRate       = "rate"
	ColNodes      = "nodes"
	ColThroughput = "throughput"
	ColMean       = "mean"
	ColStdDev     = "stddev"
	ColP50        = "p50"
	ColP90        = "p90"
	ColP99        = "p99"
	ColN          = "n"
)

// Write writes the series files for summaries to store and returns
// their names in the order written. Existing files with the same
// names are overwritten. Summaries of different systems or modes may
// be mixed.
func Write(store Store, summaries []*aggregate.RunSummary) ([]string, error) {
	files := make(map[string]*Series)
	var names []string
	row := func(name string, cols []string, vals ...float64) {
		s := files[name]
		if s == nil {
			s = &Series{Columns: cols}
			files[name] = s
			names = append(names, name)
		}
		s.Rows = append(s.Rows, vals)
	}

	latencyCols := []string{ColRate, ColThroughput, ColMean, ColStdDev, ColP50, ColP90, ColP99, ColN}
	nodesCols := []string{ColNodes, ColMean, ColStdDev, ColP50, ColN}
	tpsCols := []string{ColNodes, ColThroughput, ColRate}

	// best holds the highest throughput per TPS file and committee
	// size, across input rates.
	type bestKey struct {
		file  string
		nodes int
	}
	best := make(map[bestKey]*aggregate.RunSummary)
	var bestOrder []bestKey

	for _, s := range summaries {
		k := keyOf(s)
		if s.Ceiling == 0 {
			lat := s.Latency
			row(k.LatencyFile(), latencyCols,
				float64(k.Rate), s.Throughput, lat.Mean, lat.StdDev, lat.P50, lat.P90, lat.P99, float64(lat.N))
			row(k.NodesFile(), nodesCols,
				float64(k.Nodes), lat.Mean, lat.StdDev, lat.P50, float64(lat.N))
			continue
		}
		bk := bestKey{k.TPSFile(), k.Nodes}
		if have, ok := best[bk]; !ok {
			best[bk] = s
			bestOrder = append(bestOrder, bk)
		} else if s.Throughput > have.Throughput {
			best[bk] = s
		}
	}
	for _, bk := range bestOrder {
		s := best[bk]
		row(bk.file, tpsCols, float64(s.Setup.Nodes), s.Throughput, float64(s.Setup.Rate))
	}

	for _, name := range names {
		s := files[name]
		sort.SliceStable(s.Rows, func(i, j int) bool { return s.Rows[i][0] < s.Rows[j][0] })
		if err := create(store, name, s); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func keyOf(s *aggregate.RunSummary) Key {
	return Key{
		System:  s.System,
		Mode:    s.Mode(),
		Nodes:   s.Setup.Nodes,
		Faults:  s.Setup.Faults,
		TxSize:  s.Setup.TxSize,
		Rate:    s.Setup.Rate,
		Ceiling: s.Ceiling,
	}
}

func create(store Store, name string, s *Series) error {
	w, err := store.Create(name)
	if err != nil {
		return err
	}
	if err := WriteSeries(w, s); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Close()
}

// Read reads the named series file from store. If the file does not
// exist, ok is false and err is nil.
func Read(store Store, name string) (s *Series, ok bool, err error) {
	r, err := store.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	defer r.Close()
	s, err = ReadSeries(r)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", name, err)
	}
	return s, true, nil
}
