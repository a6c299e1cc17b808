// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results stores the numeric output of an aggregation so the
// plotter can look it up later.
//
// Output is written as small text files named after the system and
// the parameters that identify them, such as
// "vaba.latency-e2e-20-0-512.txt". A Store hides where these files
// live, so aggregation and plotting can be tested without touching the
// file system.
package results

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// A Store holds named output files.
type Store interface {
	// Clear removes the output files of system, that is, every
	// file named "{system}.*.txt".
	Clear(system string) error

	// Create creates or truncates the named file.
	Create(name string) (io.WriteCloser, error)

	// Open opens the named file for reading. If the file does
	// not exist, the error satisfies errors.Is(err, fs.ErrNotExist).
	Open(name string) (io.ReadCloser, error)
}

// clearPattern returns the glob pattern matching the output files of
// system.
func clearPattern(system string) string {
	// Escape glob metacharacters in the system name.
	var b strings.Builder
	for _, r := range system {
		if strings.ContainsRune(`*?[\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String() + ".*.txt"
}

// A Dir is a Store backed by a directory.
type Dir string

func (d Dir) path(name string) string {
	return filepath.Join(string(d), name)
}

func (d Dir) Clear(system string) error {
	stale, err := filepath.Glob(d.path(clearPattern(system)))
	if err != nil {
		return err
	}
	for _, p := range stale {
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	return nil
}

func (d Dir) Create(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(string(d), 0777); err != nil {
		return nil, err
	}
	return os.Create(d.path(name))
}

func (d Dir) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}

// A Mem is an in-memory Store. The zero value is ready to use.
type Mem struct {
	files map[string][]byte
}

func (m *Mem) Clear(system string) error {
	pat := clearPattern(system)
	for name := range m.files {
		if ok, _ := filepath.Match(pat, name); ok {
			delete(m.files, name)
		}
	}
	return nil
}

func (m *Mem) Create(name string) (io.WriteCloser, error) {
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = nil
	return &memFile{m: m, name: name}, nil
}

func (m *Mem) Open(name string) (io.ReadCloser, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Names returns the names of the files in m, in sorted order.
func (m *Mem) Names() []string {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bytes returns the content of the named file, or nil if it does not
// exist.
func (m *Mem) Bytes(name string) []byte {
	return m.files[name]
}

var _ Store = Dir("")
var _ Store = (*Mem)(nil)

type memFile struct {
	m    *Mem
	name string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	if f.m == nil {
		return fmt.Errorf("%s: file already closed", f.name)
	}
	f.m.files[f.name] = f.buf.Bytes()
	f.m = nil
	return nil
}
