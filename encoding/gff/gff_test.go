// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package gff_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/annopipe/encoding/gff"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const table = `##gff-version 3
#!processor maker
ctg1	maker	gene	100	900	.	+	.	ID=ice001;Name=ice001
ctg1	maker	mRNA	100	900	.	+	.	ID=ice001-RA;Parent=ice001
# trailing comment

ctg2	maker	gene	5	50	.	-	.	Name=ice002
`

func TestScanner(t *testing.T) {
	s := gff.NewScanner(strings.NewReader(table))
	expect.EQ(t, s.Header(), []string{"##gff-version 3", "#!processor maker"})

	var rows []gff.Row
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	assert.NoError(t, s.Err())
	assert.EQ(t, len(rows), 5)

	expect.EQ(t, rows[0].Seqid(), "ctg1")
	expect.EQ(t, rows[0].Type(), "gene")
	expect.EQ(t, rows[0].LineNum, 3)
	expect.EQ(t, rows[2].Fields, []string{"# trailing comment"})
	expect.EQ(t, rows[2].Type(), "")
	expect.EQ(t, rows[3].Fields, []string{""})
	expect.EQ(t, rows[4].LineNum, 7)

	id, ok := rows[0].Attr("ID")
	expect.True(t, ok)
	expect.EQ(t, id, "ice001")
	_, ok = rows[4].Attr("ID")
	expect.False(t, ok)
	name, ok := rows[4].Attr("Name")
	expect.True(t, ok)
	expect.EQ(t, name, "ice002")

	start, end, err := rows[4].Span()
	assert.NoError(t, err)
	expect.EQ(t, start, 5)
	expect.EQ(t, end, 50)
	_, _, err = rows[2].Span()
	assert.Regexp(t, err, "line 5")
}

func TestScannerHeaderOnly(t *testing.T) {
	s := gff.NewScanner(strings.NewReader("##gff-version 3\n"))
	expect.EQ(t, s.Header(), []string{"##gff-version 3"})
	expect.False(t, s.Scan())
	expect.NoError(t, s.Err())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := gff.NewWriter(&buf)
	assert.NoError(t, w.WriteHeader([]string{"##gff-version 3"}))
	assert.NoError(t, w.Write(gff.Row{Fields: []string{"ctg1", "maker", "gene", "1", "9", ".", "+", ".", "ID=a"}}))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), "##gff-version 3\nctg1\tmaker\tgene\t1\t9\t.\t+\t.\tID=a\n")
}

func TestScannerCRLF(t *testing.T) {
	s := gff.NewScanner(strings.NewReader("##gff-version 3\r\n#!processor maker\r\nctg1\tmaker\tgene\t1\t9\t.\t+\t.\tID=a\r\n"))
	expect.EQ(t, s.Header(), []string{"##gff-version 3\r", "#!processor maker\r"})
	assert.True(t, s.Scan())
	expect.EQ(t, s.Row().Fields[gff.AttributesCol], "ID=a")
	expect.EQ(t, s.Row().LineNum, 3)
	expect.False(t, s.Scan())
	expect.NoError(t, s.Err())

	var buf bytes.Buffer
	w := gff.NewWriter(&buf)
	assert.NoError(t, w.WriteHeader(s.Header()))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), "##gff-version 3\r\n#!processor maker\r\n")
}
