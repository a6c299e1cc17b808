// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

// maxLine is the longest line a Reader parses. Node logs sometimes
// dump whole blocks on one line; longer lines are skipped.
const maxLine = 1 << 20

// A Reader reads benchmark logs.
//
// Its API is modeled on bufio.Scanner. To minimize allocation, a
// Reader retains ownership of everything it creates; a caller should
// copy anything it needs to retain.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	br  *bufio.Reader
	buf []byte // current line
	err error  // current I/O error

	fileName string
	line     int

	rec    Record
	event  Event
	config Config

	json fastjson.Parser
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse benchmark logs from r.
// fileName is used in record positions and error messages; it is
// purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if r.br == nil {
		r.br = bufio.NewReaderSize(ior, 64<<10)
	} else {
		r.br.Reset(ior)
	}
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.rec = nil
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Scan advances the reader to the next record and reports whether a
// record was read.
// The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for {
		line, tooLong, err := r.readLine()
		if err == io.EOF {
			break
		} else if err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			return false
		}
		r.line++
		if tooLong {
			// Noise, such as a dumped block. Nothing we
			// recognize is this long.
			continue
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] == '{' {
			if rec := r.parseJSONLine(line); rec != nil {
				r.rec = rec
				return true
			}
			continue
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			r.config = Config{string(key), string(val), r.fileName, r.line}
			r.rec = &r.config
			return true
		}
		if rec := r.parseEventLine(line); rec != nil {
			r.rec = rec
			return true
		}
		// Ignore the line.
	}

	r.err = nil
	return false
}

// readLine reads the next line, including its newline, if any. If the
// line is longer than maxLine, its content is discarded and tooLong is
// true. At the end of the input, readLine returns io.EOF.
func (r *Reader) readLine() (line []byte, tooLong bool, err error) {
	r.buf = r.buf[:0]
	n := 0
	for {
		chunk, err := r.br.ReadSlice('\n')
		n += len(chunk)
		if !tooLong {
			if len(r.buf)+len(chunk) > maxLine+1 {
				tooLong = true
				r.buf = r.buf[:0]
			} else {
				r.buf = append(r.buf, chunk...)
			}
		}
		switch err {
		case bufio.ErrBufferFull:
			continue
		case nil:
			return r.buf, tooLong, nil
		case io.EOF:
			if n == 0 {
				return nil, false, io.EOF
			}
			return r.buf, tooLong, nil
		}
		return nil, false, err
	}
}

// Result returns the record that was just read by Scan. This is either
// an *Event, a *Config, or a *SyntaxError indicating a line that looks
// like an event but is malformed.
//
// Syntax errors are non-fatal, so the caller can continue to call
// Scan.
//
// If this returns an *Event or a *Config, the caller should not retain
// it, as it will be overwritten by the next call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// A marker is the text that identifies an event line. The event ID
// immediately follows the marker.
type marker struct {
	text []byte
	kind Kind
}

var markers = []marker{
	{[]byte("Sending sample transaction "), Submit},
	{[]byte("Committed sample transaction "), Deliver},
	{[]byte("Created B"), Propose},
	{[]byte("Committed B"), Commit},
}

var nodePrefix = []byte("node=")

// parseEventLine parses line as an event line. It returns nil if the
// line carries no event marker.
func (r *Reader) parseEventLine(line []byte) Record {
	var m *marker
	var at int
	for i := range markers {
		if at = bytes.Index(line, markers[i].text); at >= 0 {
			m = &markers[i]
			break
		}
	}
	if m == nil {
		return nil
	}

	id, _ := splitDigits(line[at+len(m.text):])
	if len(id) == 0 {
		// "Created Block" and the like are not events.
		return nil
	}
	idVal, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return r.newSyntaxError("parsing event id: " + err.(*strconv.NumError).Err.Error())
	}

	ts, ok, err := parseTimestamp(line)
	if err != nil {
		return r.newSyntaxError("parsing timestamp: " + err.Error())
	}
	if !ok {
		return r.newSyntaxError("missing timestamp")
	}

	r.event = Event{Time: ts, Kind: m.kind, ID: idVal, fileName: r.fileName, line: r.line}
	if i := bytes.Index(line, nodePrefix); i >= 0 {
		node, _ := splitField(line[i+len(nodePrefix):])
		r.event.Node = string(node)
	}
	return &r.event
}

// parseTimestamp extracts the timestamp that starts line. The timestamp
// is either an RFC 3339 time as the first field inside a leading
// bracket, as in "[2021-05-10T12:00:00.123Z INFO core] ...", or a bare
// number of milliseconds. It returns ok == false if line does not start
// with something that looks like a timestamp.
func parseTimestamp(line []byte) (ms float64, ok bool, err error) {
	if line[0] == '[' {
		f, _ := splitField(line[1:])
		f = bytes.TrimSuffix(f, []byte("]"))
		if len(f) == 0 {
			return 0, false, nil
		}
		t, err := time.Parse(time.RFC3339Nano, string(f))
		if err != nil {
			return 0, false, err
		}
		return float64(t.UnixNano()) / 1e6, true, nil
	}
	if line[0] < '0' || line[0] > '9' {
		return 0, false, nil
	}
	f, _ := splitField(line)
	ms, err = strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0, false, err.(*strconv.NumError).Err
	}
	return ms, true, nil
}

// parseJSONLine parses line as a JSON event. It returns nil for JSON
// objects that do not describe an event.
func (r *Reader) parseJSONLine(line []byte) Record {
	v, err := r.json.ParseBytes(line)
	if err != nil {
		return r.newSyntaxError("parsing JSON: " + err.Error())
	}
	kind, ok := ParseKind(string(v.GetStringBytes("event")))
	if !ok {
		return nil
	}

	idVal := v.Get("id")
	if idVal == nil {
		return r.newSyntaxError("missing event id")
	}
	id, err := idVal.Uint64()
	if err != nil {
		return r.newSyntaxError("parsing event id: " + err.Error())
	}

	var ts float64
	switch {
	case v.Exists("ts"):
		if ts, err = v.Get("ts").Float64(); err != nil {
			return r.newSyntaxError("parsing timestamp: " + err.Error())
		}
	case v.Exists("time"):
		t, err := time.Parse(time.RFC3339Nano, string(v.GetStringBytes("time")))
		if err != nil {
			return r.newSyntaxError("parsing timestamp: " + err.Error())
		}
		ts = float64(t.UnixNano()) / 1e6
	default:
		return r.newSyntaxError("missing timestamp")
	}

	r.event = Event{
		Time:     ts,
		Kind:     kind,
		ID:       id,
		Node:     string(v.GetStringBytes("node")),
		fileName: r.fileName,
		line:     r.line,
	}
	return &r.event
}

// parseKeyValueLine attempts to parse line as a key: val pair,
// with ok reporting whether the line could be parsed.
func parseKeyValueLine(line []byte) (key, val []byte, ok bool) {
	for i := 0; i < len(line); {
		r, n := utf8.DecodeRune(line[i:])
		// key begins with a lower case character ...
		if i == 0 && !unicode.IsLower(r) {
			return
		}
		// and contains no space characters nor upper case
		// characters.
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return
		}
		if i > 0 && r == ':' {
			key, val = line[:i], line[i+1:]
			break
		}

		i += n
	}
	if len(key) == 0 {
		return
	}
	// Unlike benchmark files, a log configuration line always
	// has a value.
	for len(val) > 0 && (val[0] == ' ' || val[0] == '\t') {
		val = val[1:]
		ok = true
	}
	if len(val) == 0 {
		ok = false
	}
	return
}

// splitDigits returns the leading ASCII digits of x and the rest.
func splitDigits(x []byte) (digits, rest []byte) {
	i := 0
	for i < len(x) && '0' <= x[i] && x[i] <= '9' {
		i++
	}
	return x[:i], x[i:]
}

const isSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

// splitField consumes and returns non-whitespace in x as field,
// and returns the remaining bytes of x starting at the whitespace.
func splitField(x []byte) (field, rest []byte) {
	var i int
	for i = 0; i < len(x); {
		if x[i] < utf8.RuneSelf {
			// Fast path for ASCII
			if (isSpace>>x[i])&1 != 0 {
				break
			}
			i++
		} else {
			r, n := utf8.DecodeRune(x[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += n
		}
	}
	return x[:i], x[i:]
}
