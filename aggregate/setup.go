// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggregate

import (
	"fmt"
	"strconv"
	"strings"
)

// A Setup is the benchmark configuration of a run, as declared by
// the configuration lines of its log. Missing keys are 0.
type Setup struct {
	Nodes  int // committee size
	Faults int // number of faulty nodes
	TxSize int // transaction size in bytes
	Rate   int // client input rate in transactions per second
}

// Log configuration keys of a Setup.
const (
	KeyNodes  = "nodes"
	KeyFaults = "faults"
	KeyTxSize = "tx_size"
	KeyRate   = "rate"
)

func (s Setup) String() string {
	return fmt.Sprintf("nodes=%d faults=%d tx_size=%d rate=%d", s.Nodes, s.Faults, s.TxSize, s.Rate)
}

// Less orders setups by transaction size, faults, committee size and
// then input rate.
func (s Setup) Less(o Setup) bool {
	if s.TxSize != o.TxSize {
		return s.TxSize < o.TxSize
	}
	if s.Faults != o.Faults {
		return s.Faults < o.Faults
	}
	if s.Nodes != o.Nodes {
		return s.Nodes < o.Nodes
	}
	return s.Rate < o.Rate
}

// set applies the configuration line key: value to s. Unknown keys
// are ignored. The value's first field is parsed as an integer that
// may use commas as digit separators, so "rate: 50,000 tx/s" is 50000.
func (s *Setup) set(key, value string) error {
	var dst *int
	switch key {
	case KeyNodes:
		dst = &s.Nodes
	case KeyFaults:
		dst = &s.Faults
	case KeyTxSize:
		dst = &s.TxSize
	case KeyRate:
		dst = &s.Rate
	default:
		return nil
	}
	f := strings.Fields(value)
	if len(f) == 0 {
		return fmt.Errorf("missing value for %s", key)
	}
	n, err := strconv.Atoi(strings.ReplaceAll(f[0], ",", ""))
	if err != nil || n < 0 {
		return fmt.Errorf("bad value %q for %s", value, key)
	}
	*dst = n
	return nil
}
