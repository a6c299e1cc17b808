// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// namedColors are the colors of the "tab10" palette plus a few plain
// names. Names may be given with or without the "tab:" prefix.
var namedColors = map[string]color.Color{
	"blue":   rgb(0x1f77b4),
	"orange": rgb(0xff7f0e),
	"green":  rgb(0x2ca02c),
	"red":    rgb(0xd62728),
	"purple": rgb(0x9467bd),
	"brown":  rgb(0x8c564b),
	"pink":   rgb(0xe377c2),
	"gray":   rgb(0x7f7f7f),
	"grey":   rgb(0x7f7f7f),
	"olive":  rgb(0xbcbd22),
	"cyan":   rgb(0x17becf),
	"black":  color.Black,
}

func rgb(x uint32) color.Color {
	return color.NRGBA{uint8(x >> 16), uint8(x >> 8), uint8(x), 0xff}
}

// ParseColor parses a color name such as "tab:red" or "orange", or a
// hex triplet such as "#d62728".
func ParseColor(s string) (color.Color, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok && len(hex) == 6 {
		x, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return rgb(uint32(x)), nil
		}
	}
	if c, ok := namedColors[strings.TrimPrefix(s, "tab:")]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// ParseDashes parses a line style name: "solid", "dashed", "dotted"
// or "dashdot".
func ParseDashes(s string) ([]vg.Length, error) {
	switch s {
	case "solid", "-":
		return nil, nil
	case "dashed", "--":
		return []vg.Length{vg.Points(6), vg.Points(3)}, nil
	case "dotted", ":":
		return []vg.Length{vg.Points(1), vg.Points(2)}, nil
	case "dashdot", "-.":
		return []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}, nil
	}
	return nil, fmt.Errorf("unknown line style %q", s)
}

// A style is the look of one curve.
type style struct {
	color  color.Color
	dashes []vg.Length
	shape  draw.GlyphDrawer
}

// nextStyle returns the style of the next curve. Custom colors and
// line styles cycle independently; otherwise the plotutil defaults
// are used.
func (p *Plotter) nextStyle() style {
	i := p.curves
	p.curves++
	s := style{color: plotutil.Color(i), shape: plotutil.Shape(i)}
	if n := len(p.opts.Colors); n > 0 {
		s.color = p.opts.Colors[i%n]
	}
	if n := len(p.opts.Styles); n > 0 {
		s.dashes = p.opts.Styles[i%n]
	}
	return s
}
