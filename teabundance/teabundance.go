// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package teabundance extracts per-class transposable-element counts from an
// EDTA annotation summary (*.TEanno.sum).
//
// The summary interleaves data lines of the form
//
//   ID  Count  bpMasked  %masked
//
// with separators ("====="), column headings ("ID ...") and totals
// ("total ...").  Only the data lines are kept, and only their ID and Count
// columns are written, as CSV with an "ID,Count" header.
package teabundance

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// NumFields is the number of space-separated fields of a data line.
const NumFields = 4

// Record is one data line of the summary.
type Record struct {
	ID        string
	Count     string
	BpMasked  string
	PctMasked string
	// LineNum is the 1-based line number in the input.
	LineNum int
}

// Opts controls the handling of malformed data lines.
type Opts struct {
	// Lenient skips data lines that do not have exactly NumFields fields,
	// logging a warning for each, instead of failing the run.
	Lenient bool
}

// DefaultOpts is the default Opts: malformed lines are fatal.
var DefaultOpts = Opts{}

// Normalize collapses every run of whitespace to a single space and trims the
// ends.
func Normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// IsDataLine reports whether a normalized line carries data.  The prefixes
// are matched literally and case-sensitively.
func IsDataLine(norm string) bool {
	return norm != "" &&
		!strings.HasPrefix(norm, "=") &&
		!strings.HasPrefix(norm, "ID") &&
		!strings.HasPrefix(norm, "total")
}

// ParseLine parses one raw line.  It returns ok=false for lines that are not
// data lines, and an error for data lines without exactly NumFields fields.
func ParseLine(line string, lineNum int) (rec Record, ok bool, err error) {
	norm := Normalize(line)
	if !IsDataLine(norm) {
		return Record{}, false, nil
	}
	fields := strings.Split(norm, " ")
	if len(fields) != NumFields {
		return Record{}, false, errors.E(errors.Invalid,
			fmt.Sprintf("line %d: expect %d fields, found %d: %q", lineNum, NumFields, len(fields), norm))
	}
	return Record{
		ID:        fields[0],
		Count:     fields[1],
		BpMasked:  fields[2],
		PctMasked: fields[3],
		LineNum:   lineNum,
	}, true, nil
}

// Extract reads the summary and returns its data records in input order.
func Extract(r io.Reader, opts Opts) ([]Record, error) {
	var (
		recs    []Record
		lineNum int
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		lineNum++
		rec, ok, err := ParseLine(scanner.Text(), lineNum)
		if err != nil {
			if !opts.Lenient {
				return nil, err
			}
			log.Error.Printf("teabundance: skipping %v", err)
			continue
		}
		if ok {
			recs = append(recs, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// WriteCounts writes the ID and Count columns of recs as CSV, with a header.
func WriteCounts(out io.Writer, recs []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"ID", "Count"}); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := w.Write([]string{rec.ID, rec.Count}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Run extracts the counts of the summary at inPath into outPath.
func Run(ctx context.Context, inPath, outPath string, opts Opts) error {
	return util.Transform(ctx, inPath, outPath, func(r io.Reader, w io.Writer) error {
		recs, err := Extract(r, opts)
		if err != nil {
			return errors.E(err, inPath)
		}
		if err := WriteCounts(w, recs); err != nil {
			return errors.E(err, outPath)
		}
		log.Printf("teabundance: wrote %d records to %s", len(recs), outPath)
		return nil
	})
}
