// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cladecolor assigns display colors to transposable-element clades.
//
// The input is a whitespace-delimited table with a header row, where column 0
// is the element ID and column 3 is its clade.  Every distinct clade gets one
// color from a shuffled CSS4 palette; the output lists "id color clade" for
// every input row, space-delimited and without a header.
package cladecolor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/annopipe/util"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

const (
	idCol    = 0
	cladeCol = 3
	minCols  = cladeCol + 1
)

// Annotation is one data row of the input table.
type Annotation struct {
	ID    string
	Clade string
}

// Opts controls how the palette is permuted.
type Opts struct {
	// Seed, if nonzero, seeds the palette shuffle.
	Seed int64
	// Stable derives the seed from the distinct clade list when Seed is zero,
	// so that the same table is always colored the same way.
	Stable bool
}

// DefaultOpts is the default Opts: a different permutation on every run.
var DefaultOpts = Opts{}

// ReadAnnotations parses the annotation table.  Blank lines are ignored.  The
// first nonblank line is the header; it and every data row must have at least
// four columns.
func ReadAnnotations(r io.Reader) ([]Annotation, error) {
	var (
		anns      []Annotation
		seenHdr   bool
		lineNum   int
		scanner   = bufio.NewScanner(r)
		shortLine = func(n int) error {
			return errors.E(errors.Invalid, fmt.Sprintf("annotation table line %d: expect at least %d columns, found %d", lineNum, minCols, n))
		}
	)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < minCols {
			return nil, shortLine(len(fields))
		}
		if !seenHdr {
			seenHdr = true
			continue
		}
		anns = append(anns, Annotation{ID: fields[idCol], Clade: fields[cladeCol]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenHdr {
		return nil, errors.E(errors.Invalid, "annotation table has no header row")
	}
	return anns, nil
}

// DistinctClades returns the clades of anns in order of first appearance.
func DistinctClades(anns []Annotation) []string {
	seen := make(map[string]bool)
	var clades []string
	for _, a := range anns {
		if !seen[a.Clade] {
			seen[a.Clade] = true
			clades = append(clades, a.Clade)
		}
	}
	return clades
}

// Shuffle returns a uniformly permuted copy of palette.
func Shuffle(palette []Color, rng *rand.Rand) []Color {
	p := append([]Color(nil), palette...)
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Assign maps the i'th clade to palette[i % len(palette)].  Colors repeat
// once there are more clades than colors.
func Assign(clades []string, palette []Color) (map[string]Color, error) {
	if len(palette) == 0 && len(clades) > 0 {
		return nil, errors.E(errors.Invalid, "empty color palette")
	}
	m := make(map[string]Color, len(clades))
	for i, c := range clades {
		if _, ok := m[c]; ok {
			continue
		}
		m[c] = palette[i%len(palette)]
	}
	return m, nil
}

// StableSeed hashes the clade list into a shuffle seed.
func StableSeed(clades []string) int64 {
	return int64(farm.Hash64([]byte(strings.Join(clades, "\x00"))))
}

// seed picks the shuffle seed for the given clades.
func (o Opts) seed(clades []string) int64 {
	switch {
	case o.Seed != 0:
		return o.Seed
	case o.Stable:
		return StableSeed(clades)
	default:
		return time.Now().UnixNano()
	}
}

// Colorize assigns colors to the clades of anns, drawing from a permutation
// of palette produced by rng.
func Colorize(anns []Annotation, palette []Color, rng *rand.Rand) (map[string]Color, error) {
	return Assign(DistinctClades(anns), Shuffle(palette, rng))
}

// WriteTable writes "id color clade" for every annotation, in input order.
// Colors are written as hex values.
func WriteTable(out io.Writer, anns []Annotation, colors map[string]Color) error {
	w := bufio.NewWriter(out)
	for _, a := range anns {
		c, ok := colors[a.Clade]
		if !ok {
			return errors.E(errors.Invalid, "no color assigned to clade", a.Clade)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", a.ID, c.Hex, a.Clade); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Run reads the annotation table at inPath and writes the colored table to
// outPath.
func Run(ctx context.Context, inPath, outPath string, opts Opts) error {
	return util.Transform(ctx, inPath, outPath, func(r io.Reader, w io.Writer) error {
		anns, err := ReadAnnotations(r)
		if err != nil {
			return errors.E(err, inPath)
		}
		clades := DistinctClades(anns)
		seed := opts.seed(clades)
		log.Debug.Printf("cladecolor: %d clades, seed %d", len(clades), seed)
		colors, err := Colorize(anns, CSS4Palette, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}
		if len(clades) > len(CSS4Palette) {
			log.Printf("cladecolor: %d clades but only %d colors; colors will repeat", len(clades), len(CSS4Palette))
		}
		if err := WriteTable(w, anns, colors); err != nil {
			return errors.E(err, outPath)
		}
		log.Printf("cladecolor: wrote %d rows, %d clades to %s", len(anns), len(clades), outPath)
		return nil
	})
}
