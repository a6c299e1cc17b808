// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// A Writer writes records in the plain-text log format read by Reader.
// Events are written with a bare millisecond timestamp.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	config map[string]string
}

// NewWriter returns a writer that writes log records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, config: make(map[string]string)}
}

// Write writes Record rec to w. A *Config whose value is already in
// effect is not repeated. *SyntaxError records are ignored.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Event:
		w.writeEvent(rec)
	case *Config:
		if have, ok := w.config[rec.Key]; ok && have == rec.Value {
			return nil
		}
		w.config[rec.Key] = rec.Value
		fmt.Fprintf(&w.buf, "%s: %s\n", rec.Key, rec.Value)
	case *SyntaxError:
		// Ignore
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}

	// Flush the buffer out to the io.Writer. Write to the buffer
	// can't fail, so we only have to check if this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) writeEvent(e *Event) {
	w.buf.Write(strconv.AppendFloat(nil, e.Time, 'f', -1, 64))
	w.buf.WriteByte(' ')
	for _, m := range markers {
		if m.kind == e.Kind {
			w.buf.Write(m.text)
			break
		}
	}
	w.buf.Write(strconv.AppendUint(nil, e.ID, 10))
	if e.Node != "" {
		w.buf.WriteString(" node=")
		w.buf.WriteString(e.Node)
	}
	w.buf.WriteByte('\n')
}
