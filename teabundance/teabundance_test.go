// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package teabundance_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/annopipe/teabundance"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		want   teabundance.Record
		ok     bool
		hasErr bool
	}{
		{"=====", teabundance.Record{}, false, false},
		{"ID Count bpMasked %masked", teabundance.Record{}, false, false},
		{"total 500 900000 10.0", teabundance.Record{}, false, false},
		{"   \t ", teabundance.Record{}, false, false},
		{"", teabundance.Record{}, false, false},
		{"LTR 120   45000 1.2", teabundance.Record{"LTR", "120", "45000", "1.2", 7}, true, false},
		{"  Copia\t\t88 12000  0.31%  ", teabundance.Record{"Copia", "88", "12000", "0.31%", 7}, true, false},
		// Prefix matching is case-sensitive.
		{"Total 500 900000 10.0", teabundance.Record{"Total", "500", "900000", "10.0", 7}, true, false},
		{"id 1 2 3", teabundance.Record{"id", "1", "2", "3", 7}, true, false},
		{"LTR 120 45000", teabundance.Record{}, false, true},
		{"LTR 120 45000 1.2 extra", teabundance.Record{}, false, true},
	}
	for _, test := range tests {
		got, ok, err := teabundance.ParseLine(test.line, 7)
		if test.hasErr {
			assert.Error(t, err, test.line)
			continue
		}
		assert.NoError(t, err, test.line)
		assert.Equal(t, test.ok, ok, test.line)
		assert.Equal(t, test.want, got, test.line)
	}
}

func TestExtract(t *testing.T) {
	report := strings.Join([]string{
		"=====",
		"ID Count bpMasked %masked",
		"LTR 120   45000 1.2",
		"total 500 900000 10.0",
	}, "\n")
	recs, err := teabundance.Extract(strings.NewReader(report), teabundance.DefaultOpts)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].LineNum)

	var buf bytes.Buffer
	require.NoError(t, teabundance.WriteCounts(&buf, recs))
	assert.Equal(t, "ID,Count\nLTR,120\n", buf.String())
}

func TestExtractMalformed(t *testing.T) {
	report := "ID Count bpMasked %masked\nLTR 120 45000 1.2\nTotal Sequence Length: 123 bp\nLINE 7 300 0.01\n"

	_, err := teabundance.Extract(strings.NewReader(report), teabundance.DefaultOpts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	recs, err := teabundance.Extract(strings.NewReader(report), teabundance.Opts{Lenient: true})
	require.NoError(t, err)
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"LTR", "LINE"}, ids)
}

func TestWriteCountsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, teabundance.WriteCounts(&buf, nil))
	assert.Equal(t, "ID,Count\n", buf.String())
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	inPath := filepath.Join(dir, "contigs.fasta.mod.EDTA.TEanno.sum")
	outPath := filepath.Join(dir, "TE_abundance.txt")
	report := `Repeat Classes
==============
ID        Count      bpMasked    %masked
=====     =====      ========     =======
LTR       --         --           --
`
	require.NoError(t, ioutil.WriteFile(inPath, []byte(report), 0644))
	assert.Error(t, teabundance.Run(ctx, inPath, outPath, teabundance.DefaultOpts))

	report = `==============
ID        Count      bpMasked    %masked
=====     =====      ========     =======
Copia     1234       567890       1.23%
Gypsy     2345       678901       2.34%
--------------------------------------
total     3579       1246791      3.57%
`
	require.NoError(t, ioutil.WriteFile(inPath, []byte(report), 0644))
	assert.Error(t, teabundance.Run(ctx, inPath, outPath, teabundance.DefaultOpts))
	require.NoError(t, teabundance.Run(ctx, inPath, outPath, teabundance.Opts{Lenient: true}))
	data, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ID,Count\nCopia,1234\nGypsy,2345\n", string(data))
}
