// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config describes a benchmark sweep: which systems to
// aggregate, with which latency ceilings, and which charts to draw.
//
// The built-in Default reproduces the charts of the consensus
// protocol comparison. Load overlays a YAML file and BENCHPLOT_*
// environment variables on top of it.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/consensuslab/benchplot/plot"
)

// EnvPrefix is the prefix of environment variables that override
// configuration keys, as in BENCHPLOT_OUT_DIR.
const EnvPrefix = "BENCHPLOT"

// Config is a complete sweep.
type Config struct {
	// Root is the directory holding one "{system}/results"
	// directory of logs per system.
	Root string `mapstructure:"root" yaml:"root"`

	// OutDir receives the series files and charts.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`

	// Format is the chart format: png, svg or pdf.
	Format string `mapstructure:"format" yaml:"format"`
	DPI    int    `mapstructure:"dpi" yaml:"dpi"`

	// Ceilings are the latency ceilings in milliseconds.
	Ceilings []float64 `mapstructure:"ceilings" yaml:"ceilings"`

	Systems []System `mapstructure:"systems" yaml:"systems"`
	Graphs  []Graph  `mapstructure:"graphs" yaml:"graphs"`
}

// A System is one benchmarked protocol variant.
type System struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Legend string `mapstructure:"legend" yaml:"legend,omitempty"`
}

// A Graph is one chart.
type Graph struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Width and Height are in inches. Zero means the default.
	Width  float64 `mapstructure:"width" yaml:"width,omitempty"`
	Height float64 `mapstructure:"height" yaml:"height,omitempty"`

	LegendCols int     `mapstructure:"legend_cols" yaml:"legend_cols"`
	TopLim     float64 `mapstructure:"top_lim" yaml:"top_lim,omitempty"`

	// Colors and Styles replace the default color and line style
	// cycles. See plot.ParseColor and plot.ParseDashes.
	Colors []string `mapstructure:"colors" yaml:"colors,omitempty"`
	Styles []string `mapstructure:"styles" yaml:"styles,omitempty"`

	Plots []Plot `mapstructure:"plots" yaml:"plots"`
}

// Plot kinds.
const (
	KindLatency       = "latency"
	KindTPS           = "tps"
	KindCommitLatency = "commit_latency"
	KindFree          = "free"
)

// A Plot is one call to the plotter. Which fields apply depends on
// Kind.
type Plot struct {
	Kind   string `mapstructure:"kind" yaml:"kind"`
	System string `mapstructure:"system" yaml:"system,omitempty"`

	Nodes    []int     `mapstructure:"nodes" yaml:"nodes,omitempty"`
	Faults   []int     `mapstructure:"faults" yaml:"faults,omitempty"`
	TxSize   int       `mapstructure:"tx_size" yaml:"tx_size,omitempty"`
	Ceilings []float64 `mapstructure:"ceilings" yaml:"ceilings,omitempty"`
	Rates    []int     `mapstructure:"rates" yaml:"rates,omitempty"`

	// X, Y and Labels place the markers of a free plot.
	X      []float64 `mapstructure:"x" yaml:"x,omitempty"`
	Y      []float64 `mapstructure:"y" yaml:"y,omitempty"`
	Labels []string  `mapstructure:"labels" yaml:"labels,omitempty"`
}

// Legends returns the legend names of the systems.
func (c *Config) Legends() map[string]string {
	m := make(map[string]string)
	for _, s := range c.Systems {
		if s.Legend != "" {
			m[s.Name] = s.Legend
		}
	}
	return m
}

// System returns the configuration of the named system.
func (c *Config) System(name string) (System, bool) {
	for _, s := range c.Systems {
		if s.Name == name {
			return s, true
		}
	}
	return System{}, false
}

// Load returns the default configuration overlaid with the YAML file
// at path, if path is not empty, and with environment variables.
// Lists in the file replace the default lists as a whole.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def, err := yaml.Marshal(Default())
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(def)); err != nil {
		return nil, fmt.Errorf("reading default config: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validFormats = map[string]bool{"png": true, "svg": true, "pdf": true}

// Validate checks that c describes a sweep that can run.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (valid: png, svg, pdf)", c.Format)
	}
	if c.DPI < 0 {
		return fmt.Errorf("invalid dpi: %d", c.DPI)
	}
	for _, x := range c.Ceilings {
		if !(x > 0) {
			return fmt.Errorf("invalid latency ceiling: %v", x)
		}
	}

	seen := make(map[string]bool)
	for _, s := range c.Systems {
		if s.Name == "" {
			return fmt.Errorf("system without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate system %s", s.Name)
		}
		seen[s.Name] = true
	}

	for _, g := range c.Graphs {
		if err := g.validate(seen); err != nil {
			return fmt.Errorf("graph %s: %w", g.Name, err)
		}
	}
	return nil
}

func (g *Graph) validate(systems map[string]bool) error {
	if g.Name == "" {
		return fmt.Errorf("graph without a name")
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("invalid size %vx%v", g.Width, g.Height)
	}
	for _, s := range g.Colors {
		if _, err := plot.ParseColor(s); err != nil {
			return err
		}
	}
	for _, s := range g.Styles {
		if _, err := plot.ParseDashes(s); err != nil {
			return err
		}
	}
	for _, p := range g.Plots {
		switch p.Kind {
		case KindLatency, KindTPS, KindCommitLatency:
			if !systems[p.System] {
				return fmt.Errorf("%s plot of unknown system %q", p.Kind, p.System)
			}
		case KindFree:
			if len(p.X) == 0 || len(p.Y) == 0 {
				return fmt.Errorf("free plot without coordinates")
			}
		default:
			return fmt.Errorf("unknown plot kind %q", p.Kind)
		}
	}
	return nil
}

// Dump writes c to w as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
