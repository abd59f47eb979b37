// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package genespace

import (
	"context"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/grailbio/annopipe/interval"
	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// fastaWidth is the number of residues per output FASTA line.
const fastaWidth = 60

// ReadGeneIDs returns the gene IDs named in the last column of a BED file,
// each cut at its first '-'.
func ReadGeneIDs(r io.Reader) (IDSet, error) {
	names, err := interval.ReadBEDNames(r)
	if err != nil {
		return nil, err
	}
	ids := IDSet{}
	for _, name := range names {
		ids.Add(GeneID(name))
	}
	return ids, nil
}

// FilterProteins copies the protein records whose gene ID (see GeneID) is in
// geneIDs.  Copied records are renamed to their gene ID and lose their
// description.  Records keep their input order.
func FilterProteins(r io.Reader, w io.Writer, geneIDs IDSet) (Stats, error) {
	var stats Stats
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	fw := fasta.NewWriter(w, fastaWidth)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		stats.Read++
		gene := GeneID(s.ID)
		if !geneIDs.Has(gene) {
			continue
		}
		s.ID = gene
		s.Desc = ""
		if _, err := fw.Write(s); err != nil {
			return stats, err
		}
		stats.Kept++
	}
	if err := sc.Error(); err != nil {
		return stats, err
	}
	return stats, nil
}

// FilterProteinFiles keeps the proteins of the FASTA at fastaPath whose gene
// is listed in the BED at bedPath, writing them to outPath.
func FilterProteinFiles(ctx context.Context, bedPath, fastaPath, outPath string) error {
	var geneIDs IDSet
	if err := util.ReadPath(ctx, bedPath, func(r io.Reader) (err error) {
		geneIDs, err = ReadGeneIDs(r)
		return
	}); err != nil {
		return errors.E(err, bedPath)
	}
	log.Printf("genespace: %d gene IDs in %s", len(geneIDs), bedPath)
	return util.Transform(ctx, fastaPath, outPath, func(r io.Reader, w io.Writer) error {
		stats, err := FilterProteins(r, w, geneIDs)
		if err != nil {
			return errors.E(err, fastaPath)
		}
		log.Printf("genespace: %s records: %v, written to %s", fastaPath, stats, outPath)
		return nil
	})
}
