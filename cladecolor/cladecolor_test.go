// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cladecolor

import (
	"bytes"
	"context"
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const gypsyTable = `id order superfamily clade complete strand domains
TE_00001 LTR Gypsy Tekay yes + GAG|PROT|RT
TE_00002 LTR Gypsy Athila yes - GAG|RT
12345 LTR Gypsy Tekay no + RT

TE_00004 LTR Gypsy CRM yes + RT|INT
TE_00005 LTR Gypsy Athila yes + RT
`

func TestReadAnnotations(t *testing.T) {
	anns, err := ReadAnnotations(strings.NewReader(gypsyTable))
	assert.NoError(t, err)
	expect.EQ(t, anns, []Annotation{
		{"TE_00001", "Tekay"},
		{"TE_00002", "Athila"},
		{"12345", "Tekay"},
		{"TE_00004", "CRM"},
		{"TE_00005", "Athila"},
	})
	expect.EQ(t, DistinctClades(anns), []string{"Tekay", "Athila", "CRM"})
}

func TestReadAnnotationsErrors(t *testing.T) {
	tests := []struct {
		table string
		re    string
	}{
		{"id order clade\nTE_1 LTR Tekay\n", "line 1: expect at least 4 columns, found 3"},
		{"id order superfamily clade\nTE_1 LTR Gypsy Tekay\nTE_2 LTR\n", "line 3: expect at least 4 columns, found 2"},
		{"", "no header row"},
		{"\n\n", "no header row"},
	}
	for _, test := range tests {
		_, err := ReadAnnotations(strings.NewReader(test.table))
		assert.Regexp(t, err, test.re)
		expect.True(t, errors.Is(errors.Invalid, err))
	}
}

func TestColorCoverage(t *testing.T) {
	anns, err := ReadAnnotations(strings.NewReader(gypsyTable))
	assert.NoError(t, err)
	inPalette := make(map[Color]bool)
	for _, c := range CSS4Palette {
		inPalette[c] = true
	}
	for seed := int64(1); seed < 20; seed++ {
		colors, err := Colorize(anns, CSS4Palette, rand.New(rand.NewSource(seed)))
		assert.NoError(t, err)
		assert.EQ(t, len(colors), 3)
		for _, c := range colors {
			expect.True(t, inPalette[c])
		}
		// Fewer clades than colors: no two clades share a palette slot.
		names := map[string]bool{}
		for _, c := range colors {
			names[c.Name] = true
		}
		expect.EQ(t, len(names), 3)

		var buf bytes.Buffer
		assert.NoError(t, WriteTable(&buf, anns, colors))
		rowColor := make(map[string]string)
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			fields := strings.Split(line, " ")
			assert.EQ(t, len(fields), 3)
			if prev, ok := rowColor[fields[2]]; ok {
				expect.EQ(t, fields[1], prev)
			}
			rowColor[fields[2]] = fields[1]
			expect.EQ(t, fields[1], colors[fields[2]].Hex)
		}
	}
}

func TestColorWrapAround(t *testing.T) {
	palette := []Color{{"red", "#FF0000"}, {"green", "#008000"}, {"blue", "#0000FF"}}
	clades := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"}
	rng := rand.New(rand.NewSource(42))
	shuffled := Shuffle(palette, rng)
	colors, err := Assign(clades, shuffled)
	assert.NoError(t, err)
	for i, c := range clades {
		expect.EQ(t, colors[c], shuffled[i%len(shuffled)])
		expect.EQ(t, colors[c], colors[clades[i%len(palette)]])
	}
	seen := make(map[string]bool)
	for _, c := range clades[:3] {
		seen[colors[c].Name] = true
	}
	expect.EQ(t, len(seen), 3)

	_, err = Assign(clades, nil)
	expect.NotNil(t, err)
	m, err := Assign(nil, nil)
	expect.NoError(t, err)
	expect.EQ(t, len(m), 0)
}

func TestShuffleIsPermutation(t *testing.T) {
	shuffled := Shuffle(CSS4Palette, rand.New(rand.NewSource(7)))
	assert.EQ(t, len(shuffled), len(CSS4Palette))
	count := make(map[Color]int)
	for _, c := range CSS4Palette {
		count[c]++
	}
	for _, c := range shuffled {
		count[c]--
	}
	for c, n := range count {
		expect.EQ(t, n, 0, "color %v", c)
	}
	// The input palette is left alone.
	expect.EQ(t, CSS4Palette[0].Name, "aliceblue")
}

func TestSeed(t *testing.T) {
	clades := []string{"Tekay", "Athila", "CRM"}
	expect.EQ(t, Opts{Seed: 5}.seed(clades), int64(5))
	expect.EQ(t, Opts{Stable: true}.seed(clades), StableSeed(clades))
	expect.EQ(t, StableSeed(clades), StableSeed([]string{"Tekay", "Athila", "CRM"}))
	expect.True(t, StableSeed(clades) != StableSeed([]string{"Athila", "Tekay", "CRM"}))
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	inPath := filepath.Join(dir, "Gypsy_combined_rexdb.txt")
	assert.NoError(t, ioutil.WriteFile(inPath, []byte(gypsyTable), 0644))

	run := func(name string, opts Opts) string {
		outPath := filepath.Join(dir, name)
		assert.NoError(t, Run(ctx, inPath, outPath, opts))
		data, err := ioutil.ReadFile(outPath)
		assert.NoError(t, err)
		return string(data)
	}
	out1 := run("out1.txt", Opts{Stable: true})
	out2 := run("out2.txt", Opts{Stable: true})
	expect.EQ(t, out1, out2)

	lines := strings.Split(strings.TrimSuffix(out1, "\n"), "\n")
	assert.EQ(t, len(lines), 5)
	expect.True(t, strings.HasPrefix(lines[0], "TE_00001 #"))
	expect.True(t, strings.HasSuffix(lines[0], " Tekay"))
	expect.True(t, strings.HasPrefix(lines[2], "12345 #"))
	expect.EQ(t, strings.Split(lines[0], " ")[1], strings.Split(lines[2], " ")[1])

	expect.NotNil(t, Run(ctx, filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out3.txt"), DefaultOpts))
}
