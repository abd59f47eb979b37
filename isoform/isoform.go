// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package isoform groups protein isoforms by gene, producing the isoform list
// consumed by OMArk: one line per gene, its isoform IDs joined by ';'.
//
// Isoform IDs are read from FASTA headers of the form ">ice0009061-RA ...":
// the ID is the leading "<prefix><digits>[-word chars]" token and the gene
// is the part of the ID before the first '-'.
package isoform

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/grailbio/annopipe/encoding/fasta"
	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Opts configures the header grammar.
type Opts struct {
	// Prefix is the literal that starts every gene ID.
	Prefix string
}

// DefaultOpts matches MAKER-renamed IDs, e.g. "ice0009061-RA".
var DefaultOpts = Opts{Prefix: "ice"}

// Isoform is an isoform ID together with its gene.
type Isoform struct {
	Gene string
	ID   string
}

// HeaderParser recognizes isoform IDs in FASTA header lines.
type HeaderParser struct {
	re *regexp.Regexp
}

// NewHeaderParser builds the parser for opts.Prefix.
func NewHeaderParser(opts Opts) (*HeaderParser, error) {
	if opts.Prefix == "" {
		return nil, errors.E(errors.Invalid, "isoform: empty ID prefix")
	}
	// \d and \w are ASCII-only in Go; the classes below also take non-ASCII
	// digits and letters.
	re, err := regexp.Compile(`^>(` + regexp.QuoteMeta(opts.Prefix) + `\p{Nd}+[-\p{L}\p{N}_]*)`)
	if err != nil {
		return nil, err
	}
	return &HeaderParser{re: re}, nil
}

// Parse returns the isoform named by a header line ('>' included).  ok is
// false if the line does not match the grammar.
func (p *HeaderParser) Parse(header string) (iso Isoform, ok bool) {
	m := p.re.FindStringSubmatch(header)
	if m == nil {
		return Isoform{}, false
	}
	id := m[1]
	gene := id
	if i := strings.IndexByte(id, '-'); i >= 0 {
		gene = id[:i]
	}
	return Isoform{Gene: gene, ID: id}, true
}

// Groups maps genes to their isoform IDs.  Both genes and isoforms keep the
// order in which they were added.
type Groups struct {
	genes    []string
	isoforms map[string][]string
}

// NewGroups creates an empty Groups.
func NewGroups() *Groups {
	return &Groups{isoforms: make(map[string][]string)}
}

// Add appends iso to its gene's list, creating the gene on first sight.
func (g *Groups) Add(iso Isoform) {
	list, ok := g.isoforms[iso.Gene]
	if !ok {
		g.genes = append(g.genes, iso.Gene)
	}
	g.isoforms[iso.Gene] = append(list, iso.ID)
}

// Genes returns the genes in order of first appearance.
func (g *Groups) Genes() []string { return g.genes }

// Isoforms returns the isoform IDs of gene.
func (g *Groups) Isoforms(gene string) []string { return g.isoforms[gene] }

// WriteTo writes one line per gene, isoforms joined by ';'.
func (g *Groups) WriteTo(out io.Writer) (int64, error) {
	w := bufio.NewWriter(out)
	var n int64
	for _, gene := range g.genes {
		k, err := w.WriteString(strings.Join(g.isoforms[gene], ";") + "\n")
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, w.Flush()
}

// Group reads FASTA data and groups the isoforms named by its headers.
// Headers that do not match the grammar are skipped.
func Group(r io.Reader, opts Opts) (*Groups, error) {
	p, err := NewHeaderParser(opts)
	if err != nil {
		return nil, err
	}
	g := NewGroups()
	s := fasta.NewHeaderScanner(r)
	nSkipped := 0
	for s.Scan() {
		iso, ok := p.Parse(s.Header())
		if !ok {
			nSkipped++
			continue
		}
		g.Add(iso)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if nSkipped > 0 {
		log.Debug.Printf("isoform: %d headers did not match prefix %q", nSkipped, opts.Prefix)
	}
	return g, nil
}

// Run groups the isoforms of the FASTA at inPath and writes the list to
// outPath.
func Run(ctx context.Context, inPath, outPath string, opts Opts) error {
	return util.Transform(ctx, inPath, outPath, func(r io.Reader, w io.Writer) error {
		g, err := Group(r, opts)
		if err != nil {
			return errors.E(err, inPath)
		}
		if _, err := g.WriteTo(w); err != nil {
			return errors.E(err, outPath)
		}
		log.Printf("isoform: wrote %d genes to %s", len(g.Genes()), outPath)
		return nil
	})
}
