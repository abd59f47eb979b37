// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package gff reads and writes GFF3 feature tables line by line.  Rows are
// kept as their raw tab-separated fields so that a filtered table can be
// written back without any reformatting of columns the caller did not look
// at.
package gff

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// Column indexes of the fixed GFF3 columns.
const (
	SeqidCol = iota
	SourceCol
	TypeCol
	StartCol
	EndCol
	ScoreCol
	StrandCol
	PhaseCol
	AttributesCol
)

// Row is one data line of a GFF table.
type Row struct {
	// Fields are the tab-separated columns, unmodified.
	Fields []string
	// LineNum is the 1-based line number in the input.
	LineNum int
}

// Seqid returns column 0, or "" if the row is too short.
func (r Row) Seqid() string { return r.field(SeqidCol) }

// Type returns column 2 (the feature type), or "" if the row is too short.
func (r Row) Type() string { return r.field(TypeCol) }

func (r Row) field(i int) string {
	if i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Span returns the 1-based closed interval in columns 3 and 4.
func (r Row) Span() (start, end int, err error) {
	if len(r.Fields) <= EndCol {
		return 0, 0, errors.Errorf("gff line %d: expect at least %d columns, found %d", r.LineNum, EndCol+1, len(r.Fields))
	}
	if start, err = strconv.Atoi(r.Fields[StartCol]); err != nil {
		return 0, 0, errors.Wrapf(err, "gff line %d: start", r.LineNum)
	}
	if end, err = strconv.Atoi(r.Fields[EndCol]); err != nil {
		return 0, 0, errors.Wrapf(err, "gff line %d: end", r.LineNum)
	}
	if start <= 0 || end < start {
		return 0, 0, errors.Errorf("gff line %d: invalid range %d-%d", r.LineNum, start, end)
	}
	return start, end, nil
}

// Attr returns the value of the given tag in column 8.  GFF3 attributes are
// "tag=value" pairs separated by ';'.
func (r Row) Attr(tag string) (string, bool) {
	for _, kv := range strings.Split(r.field(AttributesCol), ";") {
		kv = strings.TrimSpace(kv)
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		if kv[:eq] == tag {
			return kv[eq+1:], true
		}
	}
	return "", false
}

// Scanner reads a GFF table.  The comment lines ('#') before the first data
// line are collected as the header; comment lines after it are treated as
// data, and are usually dropped by callers because they have too few columns.
type Scanner struct {
	b       *bufio.Scanner
	header  []string
	pending *Row
	row     Row
	lineNum int
	err     error
}

// NewScanner creates a Scanner and reads the header block.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{b: bufio.NewScanner(r)}
	s.b.Buffer(nil, 64<<20)
	s.b.Split(scanRawLines)
	for s.b.Scan() {
		s.lineNum++
		line := s.b.Text()
		if strings.HasPrefix(line, "#") {
			s.header = append(s.header, line)
			continue
		}
		s.pending = s.newRow(line)
		break
	}
	s.err = s.b.Err()
	return s
}

// Header returns the leading comment lines, verbatim (a trailing '\r' is
// kept) and without the '\n'.
func (s *Scanner) Header() []string { return s.header }

// Scan reads the next row.  Blank lines yield a row with one empty field.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.pending != nil {
		s.row, s.pending = *s.pending, nil
		return true
	}
	if !s.b.Scan() {
		s.err = s.b.Err()
		return false
	}
	s.lineNum++
	s.row = *s.newRow(s.b.Text())
	return true
}

func (s *Scanner) newRow(line string) *Row {
	return &Row{Fields: strings.Split(strings.TrimRight(line, "\r"), "\t"), LineNum: s.lineNum}
}

// scanRawLines is bufio.ScanLines without the removal of a trailing '\r'.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Row returns the row read by the last successful Scan.
func (s *Scanner) Row() Row { return s.row }

// Err returns the read error, if any.
func (s *Scanner) Err() error {
	if s.err != nil {
		return errors.Wrap(s.err, "couldn't read GFF data")
	}
	return nil
}

// Writer writes GFF header lines and rows.
type Writer struct {
	w  *tsv.Writer
	bw *bufio.Writer
}

// NewWriter creates a Writer on out.
func NewWriter(out io.Writer) *Writer {
	bw := bufio.NewWriter(out)
	return &Writer{w: tsv.NewWriter(bw), bw: bw}
}

// WriteHeader writes comment lines verbatim.
func (w *Writer) WriteHeader(lines []string) error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := w.bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes the row's fields, tab-separated.
func (w *Writer) Write(r Row) error {
	for _, f := range r.Fields {
		w.w.WriteString(f)
	}
	return w.w.EndLine()
}

// Flush flushes buffered output.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.bw.Flush()
}
