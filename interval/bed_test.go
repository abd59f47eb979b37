package interval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestReadBEDNames(t *testing.T) {
	tests := []struct {
		bed  string
		want []string
	}{
		{"chr1\t10\t20\tice001-RA\nchr2\t5\t9\tice002-RB\n", []string{"ice001-RA", "ice002-RB"}},
		{"chr1\t10\t20\tice001-RA\r\n\n   \nchr1\t30\t40\tice003\n", []string{"ice001-RA", "ice003"}},
		{"single\n", []string{"single"}},
		{"", nil},
	}
	for _, test := range tests {
		got, err := ReadBEDNames(strings.NewReader(test.bed))
		expect.NoError(t, err)
		expect.EQ(t, got, test.want, "bed=%q", test.bed)
	}
}

func TestWriteBED(t *testing.T) {
	var buf bytes.Buffer
	expect.NoError(t, WriteBED(&buf, []Entry{
		{ChrName: "chr1", Start0: 99, End: 200, Name: "ice001"},
		{ChrName: "chr2", Start0: 0, End: 50},
	}))
	expect.EQ(t, buf.String(), "chr1\t99\t200\tice001\nchr2\t0\t50\t\n")

	buf.Reset()
	expect.NoError(t, WriteBED(&buf, []Entry{{ChrName: "chr1", Start0: 1, End: 2}}))
	expect.EQ(t, buf.String(), "chr1\t1\t2\n")

	buf.Reset()
	expect.NotNil(t, WriteBED(&buf, []Entry{{ChrName: "chr1", Start0: 5, End: 2}}))
	expect.NotNil(t, WriteBED(&buf, []Entry{{ChrName: "chr1", Start0: -1, End: 2}}))
}
