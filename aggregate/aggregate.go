// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggregate turns the logs of one benchmarked system into
// throughput and latency summaries.
//
// Each input file is one benchmark run. Within a run, the start and
// end events of a measurement are paired by their correlation ID: a
// block round for partial (consensus) latency, a sample transaction
// number for end-to-end latency. The start time of an ID is its
// earliest start event and the end time its earliest end event, so
// the same commit reported by many nodes counts once, at the first
// node that committed. IDs that lack either side, or whose end
// precedes their start, are incomplete and do not count.
//
// Runs with the same setup (committee size, faults, transaction size
// and input rate) are pooled: their latencies are combined and their
// observation windows added up.
package aggregate

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/consensuslab/benchplot/benchlog"
	"github.com/consensuslab/benchplot/latency"
)

// A ConfigurationError reports an aggregation that cannot start,
// such as one with no input files.
type ConfigurationError struct {
	System string
	Msg    string
	Err    error // underlying error, if any
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.System, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.System, e.Msg)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Options configures an Aggregator.
type Options struct {
	// EndToEnd selects end-to-end latency, from a client sending a
	// sample transaction to its commit. Otherwise latency is
	// partial, from block creation to block commit.
	EndToEnd bool

	// Warn, if non-nil, is called with non-fatal problems such as
	// malformed log lines.
	Warn func(format string, args ...interface{})
}

// An Aggregator computes RunSummaries for the logs of one system.
type Aggregator struct {
	System string
	Paths  []string

	// Ceilings are the latency ceilings, in milliseconds, in
	// ascending order.
	Ceilings []float64

	opts   Options
	reader benchlog.Reader
}

// New returns an Aggregator for the logs at paths. Each ceiling, in
// milliseconds, yields an additional summary that only counts the
// requests completed within that ceiling.
//
// New returns a *ConfigurationError if paths is empty, if any path
// cannot be opened, or if a ceiling is not positive.
func New(system string, paths []string, ceilings []float64, opts Options) (*Aggregator, error) {
	if len(paths) == 0 {
		return nil, &ConfigurationError{System: system, Msg: "no input files"}
	}
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err == nil && fi.IsDir() {
			err = fmt.Errorf("%s: is a directory", path)
		}
		if err != nil {
			return nil, &ConfigurationError{System: system, Msg: "unreadable input", Err: err}
		}
		f, err := benchlog.Open(path)
		if err != nil {
			return nil, &ConfigurationError{System: system, Msg: "unreadable input", Err: err}
		}
		f.Close()
	}

	cs := make([]float64, 0, len(ceilings))
	for _, c := range ceilings {
		if !(c > 0) {
			return nil, &ConfigurationError{System: system, Msg: fmt.Sprintf("bad latency ceiling %v", c)}
		}
		cs = append(cs, c)
	}
	sort.Float64s(cs)
	cs = dedup(cs)

	return &Aggregator{System: system, Paths: paths, Ceilings: cs, opts: opts}, nil
}

func dedup(xs []float64) []float64 {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

// Glob returns the log files of system under root, that is
// root/system/results/*.txt and their compressed forms, in
// lexical order.
func Glob(root, system string) ([]string, error) {
	var paths []string
	for _, pat := range []string{"*.txt", "*.txt.gz", "*.txt.zst"} {
		m, err := filepath.Glob(filepath.Join(root, system, "results", pat))
		if err != nil {
			return nil, err
		}
		paths = append(paths, m...)
	}
	sort.Strings(paths)
	return paths, nil
}

// A RunSummary is the result of aggregating the runs of one system
// with one setup, under one latency ceiling.
type RunSummary struct {
	System   string
	Setup    Setup
	EndToEnd bool

	// Ceiling is the latency ceiling in milliseconds, or 0 if
	// this summary counts every completed request.
	Ceiling float64

	// Files is the number of runs pooled into this summary.
	Files int

	// Window is the total observation time of the pooled runs,
	// in milliseconds.
	Window float64

	// Completed is the number of requests that completed within
	// the ceiling. Incomplete is the number of IDs for which
	// only one side of the measurement was observed.
	Completed  int
	Incomplete int

	// Throughput is Completed per second of Window, or 0 if the
	// window is empty.
	Throughput float64

	Latency latency.Summary
}

// Mode returns "e2e" for end-to-end summaries and "partial" otherwise.
func (s *RunSummary) Mode() string {
	return Mode(s.EndToEnd)
}

// Mode returns the short name of a latency measurement mode.
func Mode(endToEnd bool) string {
	if endToEnd {
		return "e2e"
	}
	return "partial"
}

// Aggregate reads every input file and returns one uncapped summary
// per setup, followed by one summary per ceiling. Summaries are
// ordered by setup and then by ceiling. Aggregate fails only on I/O
// errors.
func (a *Aggregator) Aggregate() ([]*RunSummary, error) {
	groups := make(map[Setup]*pool)
	for _, path := range a.Paths {
		r, err := a.readRun(path)
		if err != nil {
			return nil, err
		}
		g := groups[r.setup]
		if g == nil {
			g = new(pool)
			groups[r.setup] = g
		}
		g.add(r)
	}

	setups := make([]Setup, 0, len(groups))
	for s := range groups {
		setups = append(setups, s)
	}
	sort.Slice(setups, func(i, j int) bool { return setups[i].Less(setups[j]) })

	var out []*RunSummary
	for _, setup := range setups {
		g := groups[setup]
		sample := latency.NewSample(g.latencies)
		for _, c := range append([]float64{0}, a.Ceilings...) {
			sub := sample.Below(c)
			sum := &RunSummary{
				System:     a.System,
				Setup:      setup,
				EndToEnd:   a.opts.EndToEnd,
				Ceiling:    c,
				Files:      g.files,
				Window:     g.window,
				Completed:  sub.Len(),
				Incomplete: g.incomplete,
				Latency:    sub.Summary(),
			}
			if g.window > 0 {
				sum.Throughput = float64(sum.Completed) / (g.window / 1000)
			}
			out = append(out, sum)
		}
	}
	return out, nil
}

// A pool accumulates the runs that share a setup.
type pool struct {
	files      int
	window     float64
	incomplete int
	latencies  []float64
}

func (p *pool) add(r *run) {
	p.files++
	p.window += r.window()
	lat, incomplete := r.pair()
	p.latencies = append(p.latencies, lat...)
	p.incomplete += incomplete
}

// readRun reads the log at path.
func (a *Aggregator) readRun(path string) (*run, error) {
	f, err := benchlog.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	start, end := benchlog.Propose, benchlog.Commit
	if a.opts.EndToEnd {
		start, end = benchlog.Submit, benchlog.Deliver
	}
	r := newRun(start, end)

	a.reader.Reset(f, path)
	for a.reader.Scan() {
		switch rec := a.reader.Result().(type) {
		case *benchlog.Config:
			if err := r.setup.set(rec.Key, rec.Value); err != nil {
				fileName, line := rec.Pos()
				a.warn("%s:%d: %v", fileName, line, err)
			}
		case *benchlog.Event:
			r.add(rec)
		case *benchlog.SyntaxError:
			a.warn("%v", rec)
		}
	}
	if err := a.reader.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func (a *Aggregator) warn(format string, args ...interface{}) {
	if a.opts.Warn != nil {
		a.opts.Warn(format+"\n", args...)
	}
}

// A run holds the events of one log file that matter for the
// selected latency mode.
type run struct {
	setup      Setup
	start, end benchlog.Kind

	starts, ends map[uint64]float64
	first, last  float64
}

func newRun(start, end benchlog.Kind) *run {
	return &run{
		start:  start,
		end:    end,
		starts: make(map[uint64]float64),
		ends:   make(map[uint64]float64),
		first:  math.Inf(1),
		last:   math.Inf(-1),
	}
}

func (r *run) add(e *benchlog.Event) {
	var m map[uint64]float64
	switch e.Kind {
	case r.start:
		m = r.starts
	case r.end:
		m = r.ends
	default:
		return
	}
	if t, ok := m[e.ID]; !ok || e.Time < t {
		m[e.ID] = e.Time
	}
	r.first = math.Min(r.first, e.Time)
	r.last = math.Max(r.last, e.Time)
}

// window returns the time between the first and last relevant event
// of r, in milliseconds.
func (r *run) window() float64 {
	if r.last <= r.first {
		return 0
	}
	return r.last - r.first
}

// pair returns the latencies of the complete measurements of r and
// the number of incomplete ones.
func (r *run) pair() (latencies []float64, incomplete int) {
	for id, st := range r.starts {
		en, ok := r.ends[id]
		if !ok || en < st {
			incomplete++
			continue
		}
		latencies = append(latencies, en-st)
	}
	for id := range r.ends {
		if _, ok := r.starts[id]; !ok {
			incomplete++
		}
	}
	return latencies, incomplete
}
