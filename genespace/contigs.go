// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package genespace

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/annopipe/encoding/fasta"
	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// ReadContigNames returns the set of first whitespace-separated tokens of the
// lines of a contig index (typically a .fai).  Blank lines are ignored.
func ReadContigNames(r io.Reader) (IDSet, error) {
	names := IDSet{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		names.Add(fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// LongestContigs returns the n longest entries, longest first.  Entries of
// equal length keep their index order.  If n exceeds len(entries), all
// entries are returned.
func LongestContigs(entries []fasta.IndexEntry, n int) []fasta.IndexEntry {
	sorted := append([]fasta.IndexEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// readIndexEntries loads the index of the FASTA at path.  A path ending in
// ".fai" is read as an index; anything else is read as FASTA and indexed on
// the fly.
func readIndexEntries(ctx context.Context, path string) (entries []fasta.IndexEntry, err error) {
	err = util.ReadPath(ctx, path, func(r io.Reader) error {
		if strings.HasSuffix(strings.TrimSuffix(path, ".gz"), ".fai") {
			entries, err = fasta.ReadIndex(r)
		} else {
			entries, err = fasta.BuildIndex(r)
		}
		return err
	})
	if err != nil {
		return nil, errors.E(err, path)
	}
	return entries, nil
}

// SelectLongestContigs writes the index lines of the opts.NumContigs longest
// sequences of inPath (FASTA or .fai) to outPath.
func SelectLongestContigs(ctx context.Context, inPath, outPath string, opts Opts) (err error) {
	if opts.NumContigs <= 0 {
		return errors.E(errors.Invalid, "number of contigs must be positive")
	}
	entries, err := readIndexEntries(ctx, inPath)
	if err != nil {
		return err
	}
	longest := LongestContigs(entries, opts.NumContigs)
	out, err := util.CreateOutput(ctx, outPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if err = fasta.WriteIndex(out, longest); err != nil {
		return errors.E(err, outPath)
	}
	log.Printf("genespace: kept %d of %d contigs in %s", len(longest), len(entries), outPath)
	return nil
}
