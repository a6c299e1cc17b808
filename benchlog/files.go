// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// A Files reads log records from a sequence of input files.
//
// Files ending in ".gz" or ".zst" are decompressed on the fly.
//
// The file name reported by each record's Pos is the path it was read
// from, except that duplicate paths are disambiguated by appending
// "#N", so that records of different inputs never share a name.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []input

	reader Reader
	file   io.ReadCloser
	err    error
}

type input struct {
	path  string
	label string
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []input{}

	pathCount := make(map[string]int)
	for _, path := range f.Paths {
		pathCount[path]++
		f.inputs = append(f.inputs, input{path, path})
	}

	// If the same path is given multiple times, disambiguate its
	// label. Otherwise events of both copies would be paired with
	// each other.
	pathI := make(map[string]int)
	for i := range f.inputs {
		inp := &f.inputs[i]
		if pathCount[inp.path] == 1 {
			continue
		}
		inp.label = fmt.Sprintf("%s#%d", inp.path, pathI[inp.path])
		pathI[inp.path]++
	}
}

// Scan advances the reader to the next record in the sequence of
// files and reports whether a record was read. The caller should use
// the Result method to get the record. If Scan reaches the end of the
// file sequence, or if an I/O error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.init()
	}

	for {
		if f.file == nil {
			// Open the next file.
			if len(f.inputs) == 0 {
				// We're out of inputs.
				return false
			}
			inp := f.inputs[0]
			f.inputs = f.inputs[1:]

			file, err := Open(inp.path)
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			f.reader.Reset(f.file, inp.label)
		}

		// Try to get the next record.
		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		f.file.Close()
		f.file = nil
		if err != nil {
			f.err = err
			break
		}
		// Just an EOF. Open the next file.
	}
	return false
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// Open opens the log at path for reading, decompressing it if its
// name ends in ".gz" or ".zst".
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &decompressor{zr, func() { zr.Close() }, file}, nil
	case ".zst":
		zr, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &decompressor{zr, zr.Close, file}, nil
	}
	return file, nil
}

// A decompressor reads from a decompression stream and closes both
// the stream and the underlying file.
type decompressor struct {
	io.Reader
	release func()
	file    *os.File
}

func (d *decompressor) Close() error {
	d.release()
	return d.file.Close()
}
