// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fasta contains code for reading FASTA headers and FASTA index
// (.fai) files.  See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
//
// Record-level reading and writing (ID, description, sequence) is done with
// github.com/biogo/biogo/io/seqio/fasta.
package fasta

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Index files consist of one tab-separated line per sequence in the associated
// FASTA file.  The format is: "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
// For example: "chr3\t12345\t9000\t80\t81".
var indexRegExp = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

// IndexEntry is one line of a FASTA index.
type IndexEntry struct {
	// Name is the sequence name.
	Name string
	// Length is the number of bases in the sequence.
	Length uint64
	// Offset is the byte offset of the first base.
	Offset uint64
	// LineBases is the number of bases on each full line.
	LineBases uint64
	// LineWidth is the number of bytes on each full line, newline included.
	LineWidth uint64
}

// ReadIndex parses a FASTA index.  Entries are returned in file order.
func ReadIndex(index io.Reader) ([]IndexEntry, error) {
	var entries []IndexEntry
	scanner := bufio.NewScanner(index)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		matches := indexRegExp.FindStringSubmatch(line)
		if len(matches) != 6 {
			return nil, errors.Errorf("invalid index line: %s", line)
		}
		ent := IndexEntry{Name: matches[1]}
		ent.Length, _ = strconv.ParseUint(matches[2], 10, 64)
		ent.Offset, _ = strconv.ParseUint(matches[3], 10, 64)
		ent.LineBases, _ = strconv.ParseUint(matches[4], 10, 64)
		ent.LineWidth, _ = strconv.ParseUint(matches[5], 10, 64)
		entries = append(entries, ent)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read FASTA index")
	}
	return entries, nil
}

// WriteIndex writes entries in the format read by ReadIndex.
func WriteIndex(out io.Writer, entries []IndexEntry) error {
	w := tsv.NewWriter(out)
	for _, ent := range entries {
		w.WriteString(ent.Name)
		w.WriteInt64(int64(ent.Length))
		w.WriteInt64(int64(ent.Offset))
		w.WriteInt64(int64(ent.LineBases))
		w.WriteInt64(int64(ent.LineWidth))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// HeaderScanner yields the header lines of FASTA data, '>' included.
// Sequence lines are skipped without being retained.
type HeaderScanner struct {
	b      *bufio.Scanner
	header string
}

// NewHeaderScanner creates a HeaderScanner reading from r.
func NewHeaderScanner(r io.Reader) *HeaderScanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, bufferInitSize)
	return &HeaderScanner{b: b}
}

// Scan advances to the next header line.  It returns false at the end of the
// input or on error.
func (s *HeaderScanner) Scan() bool {
	for s.b.Scan() {
		line := s.b.Text()
		if len(line) > 0 && line[0] == '>' {
			s.header = strings.TrimRight(line, "\r")
			return true
		}
	}
	return false
}

// Header returns the header found by the last successful Scan.
func (s *HeaderScanner) Header() string { return s.header }

// Err returns the read error, if any.
func (s *HeaderScanner) Err() error {
	if err := s.b.Err(); err != nil {
		return errors.Wrap(err, "couldn't read FASTA data")
	}
	return nil
}
