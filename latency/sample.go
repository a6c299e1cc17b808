// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package latency computes summary statistics over latency
// measurements.
//
// Statistics are deliberately simple: mean, standard deviation and a
// few percentiles. An empty sample has a zero Summary rather than an
// error, so that one configuration with no completed requests does
// not stop a batch of reports.
package latency

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of latency measurements, in milliseconds.
type Sample struct {
	// Values are the measured latencies, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements. It sorts
// values in place.
func NewSample(values []float64) *Sample {
	// Sort values for fast order statistics.
	sort.Float64s(values)
	return &Sample{values}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Len returns the number of measurements in s.
func (s *Sample) Len() int {
	return len(s.Values)
}

// Below returns the sub-sample of measurements that do not exceed
// ceiling. A ceiling <= 0 means no ceiling. The result shares storage
// with s.
func (s *Sample) Below(ceiling float64) *Sample {
	if ceiling <= 0 {
		return s
	}
	n := sort.Search(len(s.Values), func(i int) bool {
		return s.Values[i] > ceiling
	})
	return &Sample{s.Values[:n]}
}

// A Summary summarizes a Sample.
type Summary struct {
	// N is the number of measurements. All other fields are 0
	// if N is 0.
	N int

	Mean   float64
	StdDev float64

	Min, Max      float64
	P50, P90, P99 float64
}

// Summary computes the summary statistics of s.
func (s *Sample) Summary() Summary {
	if len(s.Values) == 0 {
		return Summary{}
	}
	ss := s.sample()
	sum := Summary{
		N:    len(s.Values),
		Mean: ss.Mean(),
		Min:  s.Values[0],
		Max:  s.Values[len(s.Values)-1],
		P50:  ss.Quantile(0.5),
		P90:  ss.Quantile(0.9),
		P99:  ss.Quantile(0.99),
	}
	// The sample standard deviation is undefined for a single
	// measurement.
	if sum.N > 1 {
		sum.StdDev = ss.StdDev()
	}
	return sum
}

// Defined reports whether s summarizes at least one measurement.
func (s Summary) Defined() bool {
	return s.N > 0
}

// String returns the summary in the form "150 ± 71 ms (n=2)".
func (s Summary) String() string {
	if !s.Defined() {
		return "- (n=0)"
	}
	return fmt.Sprintf("%.0f ± %.0f ms (n=%d)", s.Mean, s.StdDev, s.N)
}
