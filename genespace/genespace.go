// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package genespace prepares the inputs of a GENESPACE run for one assembly:
//
//   - the N longest contigs of the assembly, as a FASTA index (.fai);
//   - the gene features of a GFF3 table that lie on those contigs;
//   - a BED file of those genes, named by their GFF3 ID;
//   - the longest-isoform proteins of the genes in that BED, renamed to the
//     gene ID.
//
// Each step reads one file (plus an identifier set) and writes one file;
// steps are chained by the caller through the filesystem.
package genespace

import (
	"fmt"
	"strings"
)

// Opts configures the genespace steps.
type Opts struct {
	// FeatureType is the GFF column-2 value kept by FilterGenes and
	// GeneEntries.
	FeatureType string
	// NumContigs is the number of contigs kept by SelectLongestContigs.
	NumContigs int
}

// DefaultOpts keeps gene features on the 20 longest contigs.
var DefaultOpts = Opts{
	FeatureType: "gene",
	NumContigs:  20,
}

// Stats counts the records seen and kept by a filtering step.
type Stats struct {
	Read int
	Kept int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d kept", s.Kept, s.Read)
}

// GeneID returns the part of an identifier before the first '-', e.g.
// "ice0001" for "ice0001-RA".
func GeneID(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}

// IDSet is a set of identifiers.
type IDSet map[string]struct{}

// Add inserts id into the set.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
