// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package genespace

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/annopipe/encoding/gff"
	"github.com/grailbio/annopipe/interval"
	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// minGFFCols is the number of columns a row needs to be considered at all.
const minGFFCols = gff.TypeCol + 1

// FilterGenes copies the leading comment lines of a GFF table, then the rows
// that lie on one of contigs and whose type is featureType.  Rows with fewer
// than three columns are dropped.  Kept rows are written unchanged and in
// input order.
func FilterGenes(r io.Reader, w io.Writer, contigs IDSet, featureType string) (Stats, error) {
	var stats Stats
	s := gff.NewScanner(r)
	gw := gff.NewWriter(w)
	if err := gw.WriteHeader(s.Header()); err != nil {
		return stats, err
	}
	for s.Scan() {
		row := s.Row()
		stats.Read++
		if len(row.Fields) < minGFFCols {
			continue
		}
		if !contigs.Has(row.Seqid()) || row.Type() != featureType {
			continue
		}
		if err := gw.Write(row); err != nil {
			return stats, err
		}
		stats.Kept++
	}
	if err := s.Err(); err != nil {
		return stats, err
	}
	return stats, gw.Flush()
}

// GeneEntries returns one BED interval per row of type featureType, named by
// the row's ID attribute (or Name, if there is no ID).  GFF coordinates are
// 1-based and closed; the returned intervals are 0-based and half-open.
func GeneEntries(r io.Reader, featureType string) ([]interval.Entry, error) {
	var entries []interval.Entry
	s := gff.NewScanner(r)
	for s.Scan() {
		row := s.Row()
		if len(row.Fields) < minGFFCols || row.Type() != featureType {
			continue
		}
		start, end, err := row.Span()
		if err != nil {
			return nil, err
		}
		name, ok := row.Attr("ID")
		if !ok {
			if name, ok = row.Attr("Name"); !ok {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("gff line %d: %s feature has neither ID nor Name", row.LineNum, featureType))
			}
		}
		entries = append(entries, interval.Entry{
			ChrName: row.Seqid(),
			Start0:  interval.PosType(start - 1),
			End:     interval.PosType(end),
			Name:    name,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// FilterGeneFiles keeps the opts.FeatureType rows of the GFF at gffPath that
// lie on a contig listed in contigPath, writing them to outPath.
func FilterGeneFiles(ctx context.Context, contigPath, gffPath, outPath string, opts Opts) error {
	var contigs IDSet
	if err := util.ReadPath(ctx, contigPath, func(r io.Reader) (err error) {
		contigs, err = ReadContigNames(r)
		return
	}); err != nil {
		return errors.E(err, contigPath)
	}
	log.Printf("genespace: %d contigs selected by %s", len(contigs), contigPath)
	return util.Transform(ctx, gffPath, outPath, func(r io.Reader, w io.Writer) error {
		stats, err := FilterGenes(r, w, contigs, opts.FeatureType)
		if err != nil {
			return errors.E(err, gffPath)
		}
		log.Printf("genespace: %s rows: %v, written to %s", gffPath, stats, outPath)
		return nil
	})
}

// WriteGeneBED converts the opts.FeatureType rows of the GFF at gffPath into
// a BED file at outPath.
func WriteGeneBED(ctx context.Context, gffPath, outPath string, opts Opts) error {
	return util.Transform(ctx, gffPath, outPath, func(r io.Reader, w io.Writer) error {
		entries, err := GeneEntries(r, opts.FeatureType)
		if err != nil {
			return errors.E(err, gffPath)
		}
		if err := interval.WriteBED(w, entries); err != nil {
			return errors.E(err, outPath)
		}
		log.Printf("genespace: wrote %d intervals to %s", len(entries), outPath)
		return nil
	})
}
