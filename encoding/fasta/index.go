// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fasta

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
)

// BuildIndex scans FASTA data and computes its index entries, in order of
// appearance.
//
// The index format is defined by "samtool faidx"
// (http://www.htslib.org/doc/faidx.html).
func BuildIndex(in io.Reader) (entries []IndexEntry, err error) {
	var (
		r       = bufio.NewReader(in)
		cur     IndexEntry
		started bool
		cumByte int64
		eof     bool
	)
	setErr := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	for !eof && err == nil {
		fullLine, e := r.ReadBytes('\n')
		if e == io.EOF { // Process fullLine, then exit the loop
			eof = true
		} else if e != nil {
			setErr(e)
		}
		cumByte += int64(len(fullLine))
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if started {
				if cur.Name == "" {
					setErr(errors.E("malformed FASTA file"))
				}
				entries = append(entries, cur)
			}
			started = true
			cur = IndexEntry{
				Name:   strings.Split(string(line[1:]), " ")[0],
				Offset: uint64(cumByte),
			}
			continue
		}
		if cur.LineWidth == 0 {
			cur.LineWidth = uint64(len(fullLine))
			cur.LineBases = uint64(len(line))
		}
		cur.Length += uint64(len(line))
	}
	if cumByte == 0 {
		setErr(errors.E("empty FASTA file"))
	}
	if started {
		entries = append(entries, cur)
	}
	return
}
