// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables. It is used for the
// aggregation reports and for the series files read by the plotter.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// A Table is a grid of text cells laid out in aligned columns.
// Columns after the first are separated by one space.
//
// The zero Table is empty and ready to use. Its methods return the
// Table so calls can be chained.
type Table struct {
	rows [][]cell
	col  int // column of the next cell
}

type cell struct {
	value string
	right bool
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *cell)

var (
	// Left aligns a cell to the left of its column. It is the default.
	Left CellOption = func(c *cell) { c.right = false }
	// Right aligns a cell to the right of its column.
	Right CellOption = func(c *cell) { c.right = true }
)

// Row starts a new row.
func (t *Table) Row() *Table {
	if len(t.rows) > 0 {
		t.rows = append(t.rows, nil)
	}
	t.col = 0
	return t
}

// Col skips to column col of the current row, leaving the columns in
// between blank. Columns are numbered from 0.
func (t *Table) Col(col int) *Table {
	if col < t.col {
		panic(fmt.Sprintf("texttab: column %d is left of the current column %d", col, t.col))
	}
	t.col = col
	return t
}

// Cell adds a cell holding value at the current column and moves to
// the next column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.rows = append(t.rows, nil)
	}
	row := &t.rows[len(t.rows)-1]
	for len(*row) <= t.col {
		*row = append(*row, cell{})
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	(*row)[t.col] = c
	t.col++
	return t
}

func margin(col int) int {
	if col == 0 {
		return 0
	}
	return 1
}

// Format writes t to w, one line per row. Blank cells and trailing
// blank rows produce no output.
func (t *Table) Format(w io.Writer) error {
	// widths[i] is the width of column i, including its margin.
	var widths []int
	last := 0
	for i, row := range t.rows {
		for len(widths) < len(row) {
			widths = append(widths, 0)
		}
		for col, c := range row {
			if c.value == "" {
				continue
			}
			widths[col] = max(widths[col], margin(col)+utf8.RuneCountInString(c.value))
			last = i + 1
		}
	}

	var line strings.Builder
	for _, row := range t.rows[:last] {
		line.Reset()
		start, end := 0, 0 // start of the column, end of the text so far
		for col, c := range row {
			if c.value != "" {
				n := utf8.RuneCountInString(c.value)
				pad := start + margin(col) - end
				if c.right {
					pad += widths[col] - margin(col) - n
				}
				line.WriteString(strings.Repeat(" ", pad))
				line.WriteString(c.value)
				end += pad + n
			}
			start += widths[col]
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
