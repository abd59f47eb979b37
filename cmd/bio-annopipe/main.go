// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-annopipe runs the file transforms that prepare a genome annotation for
downstream tools: TE clade coloring, TE abundance extraction, isoform
grouping, and the contig/gene/protein selection that feeds GENESPACE.

Each subcommand reads its inputs and writes one output file. Paths may be
anything github.com/grailbio/base/file can open; compressed inputs are
detected automatically and outputs ending in .gz are gzipped.

Sample usage:
bio-annopipe longest-contigs -n 20 assembly.fasta longest_contigs.fai
bio-annopipe filter-genes longest_contigs.fai genes.gff3 genes_in_longest_contigs.gff3
bio-annopipe gff2bed genes_in_longest_contigs.gff3 bed/ice1.bed
bio-annopipe filter-proteins bed/ice1.bed longest_isoforms.fasta peptide/ice1.fa
*/
package main

import "github.com/grailbio/annopipe/cmd/bio-annopipe/cmd"

func main() {
	cmd.Run()
}
