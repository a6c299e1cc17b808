// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog reads the logs written by nodes and clients
// during a consensus benchmark.
//
// A log is a sequence of lines. Most lines are noise and are skipped.
// The lines this package recognizes are:
//
//   - event lines, which carry a timestamp and one of the markers
//     "Sending sample transaction N", "Created BN", "Committed BN" or
//     "Committed sample transaction N";
//   - JSON event lines of the form
//     {"ts": 12.5, "event": "commit", "id": 3, "node": "n0"};
//   - configuration lines of the form "key: value", which describe the
//     benchmark setup (committee size, faults, and so on).
//
// The reader is structured as a streaming operation modeled on
// bufio.Scanner. It retains ownership of the records it returns, so a
// caller must copy anything it needs to keep.
package benchlog

import "fmt"

// A Kind identifies what happened in an Event.
type Kind uint8

const (
	// KindNone is the zero Kind. It never appears in an Event
	// returned by a Reader.
	KindNone Kind = iota

	// Submit is a client sending a sample transaction.
	// It starts an end-to-end measurement.
	Submit

	// Propose is a leader creating a block.
	// It starts a partial (consensus) measurement.
	Propose

	// Commit is a node committing a block.
	// It ends a partial measurement.
	Commit

	// Deliver is a node committing a sample transaction.
	// It ends an end-to-end measurement.
	Deliver
)

var kindNames = [...]string{
	KindNone: "none",
	Submit:   "submit",
	Propose:  "propose",
	Commit:   "commit",
	Deliver:  "deliver",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(KindNone) && name == s {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// A Record is a single record read from a log. It may be an *Event, a
// *Config, or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not
	// read from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Event)(nil)
var _ Record = (*Config)(nil)
var _ Record = (*SyntaxError)(nil)

// An Event is one timestamped occurrence in a log.
type Event struct {
	// Time is the time of the event in milliseconds. The origin
	// is arbitrary but shared by all events of one log.
	Time float64

	Kind Kind

	// ID correlates the start and end of one measurement. It is a
	// block round for Propose and Commit, and a sample transaction
	// number for Submit and Deliver.
	ID uint64

	// Node is the node that logged the event, or "" if unknown.
	Node string

	fileName string
	line     int
}

// Pos returns the file name and line number of an Event that was read
// by a Reader.
func (e *Event) Pos() (fileName string, line int) {
	return e.fileName, e.line
}

func (e *Event) String() string {
	s := fmt.Sprintf("%.3f %s %d", e.Time, e.Kind, e.ID)
	if e.Node != "" {
		s += " node=" + e.Node
	}
	return s
}

// A Config is a single key/value configuration line, such as
// "nodes: 20".
type Config struct {
	Key   string
	Value string

	fileName string
	line     int
}

// Pos returns the file name and line number of a Config that was read
// by a Reader.
func (c *Config) Pos() (fileName string, line int) {
	return c.fileName, c.line
}

// A SyntaxError represents a line that looks like an event but could
// not be parsed. Syntax errors are not fatal: the reader skips the
// line and continues.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}
