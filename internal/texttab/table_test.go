// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.Format(&gotBuf); err != nil {
			t.Fatal(err)
		}
		if got := gotBuf.String(); want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		tab = Table{}
	}

	check("")

	tab.Row()
	tab.Row()
	check("")

	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a b c\nd e f\n")

	// Columns take the width of their longest cell, with no
	// trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a    b c\nlong e long\n")

	// A report: the setup on the left, numbers on the right.
	tab.Row().Cell("setup", Left).Cell("tps", Right).Cell("mean", Right)
	tab.Row().Cell("n=4", Left).Cell("1000", Right).Cell("27.5", Right)
	check("setup  tps mean\nn=4   1000 27.5\n")

	// A series: a comment header over right-aligned columns that
	// start at column 1.
	tab.Row().Cell("#").Cell("rate", Right).Cell("tps", Right)
	tab.Row().Col(1).Cell("1000", Right).Cell("998.5", Right)
	tab.Row().Col(1).Cell("20000", Right).Cell("12", Right)
	check("#  rate   tps\n   1000 998.5\n  20000    12\n")

	// Missing cell in the middle.
	tab.Row().Cell("a").Col(2).Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a   c\nd e f\n")

	// Missing and empty cells at the end.
	tab.Row().Cell("a").Cell("").Cell("")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a\nd e f\n")

	// Blank rows in the middle are kept, blank rows at the end are not.
	tab.Row().Cell("a")
	tab.Row()
	tab.Row()
	tab.Row().Cell("b")
	tab.Row()
	check("a\n\n\nb\n")

	// Widths count runes.
	tab.Row().Cell("x").Cell("☃", Right)
	tab.Row().Cell("x").Cell("abc")
	check("x   ☃\nx abc\n")
}

func TestColBackward(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("moving to an earlier column did not panic")
		}
	}()
	var tab Table
	tab.Row().Cell("a").Cell("b").Col(1)
}
