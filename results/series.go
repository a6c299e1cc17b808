// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensuslab/benchplot/internal/texttab"
)

// A Series is a table of numbers with named columns. It is the content
// of one output file.
type Series struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of the named column.
func (s *Series) Column(name string) ([]float64, bool) {
	for i, c := range s.Columns {
		if c == name {
			vals := make([]float64, len(s.Rows))
			for j, row := range s.Rows {
				vals[j] = row[i]
			}
			return vals, true
		}
	}
	return nil, false
}

// WriteSeries writes s to w as an aligned text table. The first line
// is a comment holding the column names.
func WriteSeries(w io.Writer, s *Series) error {
	var tab texttab.Table
	tab.Row().Cell("#")
	for _, c := range s.Columns {
		tab.Cell(c, texttab.Right)
	}
	for _, row := range s.Rows {
		if len(row) != len(s.Columns) {
			return fmt.Errorf("row has %d values, want %d", len(row), len(s.Columns))
		}
		tab.Row().Col(1)
		for _, v := range row {
			tab.Cell(strconv.FormatFloat(v, 'f', -1, 64), texttab.Right)
		}
	}
	return tab.Format(w)
}

// ReadSeries reads a Series written by WriteSeries.
func ReadSeries(r io.Reader) (*Series, error) {
	s := new(Series)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if f[0] == "#" {
			if s.Columns != nil {
				return nil, fmt.Errorf("line %d: duplicate header", line)
			}
			s.Columns = append([]string{}, f[1:]...)
			continue
		}
		if s.Columns == nil {
			return nil, fmt.Errorf("line %d: missing header", line)
		}
		if len(f) != len(s.Columns) {
			return nil, fmt.Errorf("line %d: got %d values, want %d", line, len(f), len(s.Columns))
		}
		row := make([]float64, len(f))
		for i, x := range f {
			v, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[i] = v
		}
		s.Rows = append(s.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if s.Columns == nil {
		return nil, fmt.Errorf("missing header")
	}
	return s, nil
}
