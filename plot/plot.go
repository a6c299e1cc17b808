// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot draws comparison charts from the series files written
// by package results.
//
// A Plotter draws one chart. Each Plot method adds one or more
// labelled curves to it, read from the series files of a system, and
// Finalize lays the chart out and writes it to the output store.
package plot

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/consensuslab/benchplot/aggregate"
	"github.com/consensuslab/benchplot/results"
)

// Options configures a Plotter.
type Options struct {
	// Store holds the series files and receives the chart.
	Store results.Store

	// Legends maps system names to the names shown in legends.
	// Systems without an entry are shown by name.
	Legends map[string]string

	// Width and Height are the size of the chart. They default to
	// 6.4 by 4.8 inches.
	Width, Height vg.Length

	// Format is the output format: "png" (the default), "svg" or
	// "pdf".
	Format string

	// DPI is the resolution of PNG output. It defaults to 150.
	DPI int

	// Colors and Styles, if set, replace the default color and
	// line style cycles.
	Colors []color.Color
	Styles [][]vg.Length

	// Warn, if non-nil, is called for curves that cannot be drawn,
	// such as curves whose series file is missing.
	Warn func(format string, args ...interface{})
}

// A Plotter draws one chart.
type Plotter struct {
	opts    Options
	plot    *plot.Plot
	curves  int
	entries []entry
}

// An entry is one legend entry.
type entry struct {
	label  string
	thumbs []plot.Thumbnailer
}

// New returns a Plotter for an empty chart.
func New(opts Options) *Plotter {
	if opts.Width == 0 {
		opts.Width = 6.4 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4.8 * vg.Inch
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.DPI == 0 {
		opts.DPI = 150
	}

	p := plot.New()
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)
	return &Plotter{opts: opts, plot: p}
}

// LegendName returns the name of system as shown in legends.
func (p *Plotter) LegendName(system string) string {
	if name, ok := p.opts.Legends[system]; ok && name != "" {
		return name
	}
	return system
}

func (p *Plotter) warn(format string, args ...interface{}) {
	if p.opts.Warn != nil {
		p.opts.Warn(format+"\n", args...)
	}
}

// read reads a series file, reporting a missing file as a warning.
func (p *Plotter) read(name string) (*results.Series, error) {
	s, ok, err := results.Read(p.opts.Store, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.warn("%s: no such series, skipping", name)
		return nil, nil
	}
	return s, nil
}

// columns returns the named columns of s, in order.
func columns(s *results.Series, name string, names ...string) ([][]float64, error) {
	var cols [][]float64
	for _, n := range names {
		c, ok := s.Column(n)
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, n)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func (p *Plotter) labels(x, y string) {
	p.plot.X.Label.Text = x
	p.plot.Y.Label.Text = y
}

// PlotLatency adds the end-to-end latency/throughput curve of system
// for every combination of committee size and number of faults. Each
// point is one input rate, with error bars one standard deviation
// high.
func (p *Plotter) PlotLatency(system string, nodes, faults []int, txSize int) error {
	p.labels("Throughput (tx/s)", "Latency (ms)")
	for _, n := range nodes {
		for _, f := range faults {
			k := results.Key{System: system, Mode: aggregate.Mode(true), Nodes: n, Faults: f, TxSize: txSize}
			label := fmt.Sprintf("%s, %d nodes", p.LegendName(system), n)
			if f > 0 {
				label += fmt.Sprintf(" (%d faulty)", f)
			}
			if err := p.curve(k.LatencyFile(), label, results.ColThroughput, results.ColMean, results.ColStdDev); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotTPS adds the maximum throughput of system under each latency
// ceiling, as a function of committee size, for every number of
// faults.
func (p *Plotter) PlotTPS(system string, faults []int, ceilings []float64, txSize int) error {
	p.labels("Committee size", "Throughput (tx/s)")
	for _, f := range faults {
		for _, c := range ceilings {
			k := results.Key{System: system, Mode: aggregate.Mode(true), Faults: f, TxSize: txSize, Ceiling: c}
			label := fmt.Sprintf("%s, %ss max latency", p.LegendName(system), strconv.FormatFloat(c/1000, 'f', -1, 64))
			if f > 0 {
				label += fmt.Sprintf(" (%d faulty)", f)
			}
			if err := p.curve(k.TPSFile(), label, results.ColNodes, results.ColThroughput, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotCommitLatency adds the consensus latency of system, from block
// creation to commit, as a function of committee size for every
// input rate.
func (p *Plotter) PlotCommitLatency(system string, faults []int, rates []int, txSize int) error {
	p.labels("Committee size", "Latency (ms)")
	for _, f := range faults {
		for _, r := range rates {
			k := results.Key{System: system, Mode: aggregate.Mode(false), Faults: f, TxSize: txSize, Rate: r}
			label := fmt.Sprintf("%s, %d tx/s", p.LegendName(system), r)
			if f > 0 {
				label += fmt.Sprintf(" (%d faulty)", f)
			}
			if err := p.curve(k.NodesFile(), label, results.ColNodes, results.ColMean, results.ColStdDev); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotFree adds one marker per label at the given coordinates, for
// configurations that produced no data, such as a protocol that
// makes no progress under attack. Coordinates are reused cyclically
// if there are fewer of them than labels.
func (p *Plotter) PlotFree(xs, ys []float64, labels []string) error {
	if len(xs) == 0 || len(ys) == 0 {
		return fmt.Errorf("no coordinates for %d labels", len(labels))
	}
	for i, label := range labels {
		st := p.nextStyle()
		sc, err := plotter.NewScatter(plotter.XYs{{X: xs[i%len(xs)], Y: ys[i%len(ys)]}})
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = st.color
		sc.GlyphStyle.Shape = st.shape
		sc.GlyphStyle.Radius = vg.Points(4)
		p.plot.Add(sc)
		p.entries = append(p.entries, entry{label, []plot.Thumbnailer{sc}})
	}
	return nil
}

// errPoints are points with vertical error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// curve adds the curve of columns x and y of the named series file.
// If errCol is not empty, it names a column of symmetric error bars.
// Rows whose y value is not positive carry no measurement and are
// dropped.
func (p *Plotter) curve(name, label, x, y, errCol string) error {
	s, err := p.read(name)
	if err != nil || s == nil {
		return err
	}
	names := []string{x, y}
	if errCol != "" {
		names = append(names, errCol)
	}
	cols, err := columns(s, name, names...)
	if err != nil {
		return err
	}

	var pts errPoints
	for i := range cols[0] {
		if !(cols[1][i] > 0) {
			continue
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: cols[0][i], Y: cols[1][i]})
		var e float64
		if errCol != "" {
			e = cols[2][i]
		}
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{e, e})
	}
	if len(pts.XYs) == 0 {
		p.warn("%s: no data points, skipping", name)
		return nil
	}

	st := p.nextStyle()
	line, err := plotter.NewLine(pts.XYs)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	line.LineStyle.Color = st.color
	line.LineStyle.Dashes = st.dashes
	line.LineStyle.Width = vg.Points(1.5)

	sc, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	sc.GlyphStyle.Color = st.color
	sc.GlyphStyle.Shape = st.shape
	sc.GlyphStyle.Radius = vg.Points(3)

	p.plot.Add(line, sc)
	if errCol != "" {
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		bars.LineStyle.Color = st.color
		p.plot.Add(bars)
	}
	p.entries = append(p.entries, entry{label, []plot.Thumbnailer{line, sc}})
	return nil
}

// Finalize lays out the chart and writes it to the store as
// "{name}.{format}". The legend is drawn above the chart in
// legendCols columns. If topLim is positive, the y axis ends there.
// The Plotter must not be used afterwards.
func (p *Plotter) Finalize(name string, legendCols int, topLim float64) error {
	p.plot.Y.Min = 0
	if topLim > 0 {
		p.plot.Y.Max = topLim
	}

	can, err := p.canvas()
	if err != nil {
		return err
	}
	p.draw(draw.New(can), legendCols)

	file := name + "." + p.opts.Format
	w, err := p.opts.Store.Create(file)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", file, err)
	}
	return w.Close()
}

func (p *Plotter) canvas() (vg.CanvasWriterTo, error) {
	w, h := p.opts.Width, p.opts.Height
	switch p.opts.Format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(p.opts.DPI), vgimg.UseBackgroundColor(color.White))}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("unknown output format %q", p.opts.Format)
}

// draw draws the chart on c, with the legend in a band of
// legendCols columns at the top. Entries fill the columns top to
// bottom.
func (p *Plotter) draw(c draw.Canvas, legendCols int) {
	if legendCols < 1 {
		legendCols = 1
	}
	if len(p.entries) == 0 {
		p.plot.Draw(c)
		return
	}
	rows := (len(p.entries) + legendCols - 1) / legendCols

	proto := plot.NewLegend()
	rowH := vg.Length(proto.TextStyle.Font.Size) * 1.4
	bandH := vg.Length(rows)*rowH + vg.Points(4)

	p.plot.Draw(draw.Crop(c, 0, 0, 0, -bandH))

	band := draw.Crop(c, 0, 0, c.Max.Y-c.Min.Y-bandH, 0)
	colW := (band.Max.X - band.Min.X) / vg.Length(legendCols)
	for col := 0; col < legendCols; col++ {
		lo := col * rows
		if lo >= len(p.entries) {
			break
		}
		hi := min(lo+rows, len(p.entries))
		lg := plot.NewLegend()
		lg.Top = true
		lg.Left = true
		lg.XOffs = vg.Points(4)
		for _, e := range p.entries[lo:hi] {
			lg.Add(e.label, e.thumbs...)
		}
		lg.Draw(draw.Crop(band, vg.Length(col)*colW, -vg.Length(legendCols-col-1)*colW, 0, 0))
	}
}
