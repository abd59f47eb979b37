package interval

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/grailbio/base/tsv"
)

// PosType is the coordinate type of an Entry.
type PosType int32

const posTypeMax = math.MaxInt32

// Entry represents a single named interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
	// Name is the optional fourth BED column.
	Name string
}

// Validate checks that the entry's coordinates form a valid BED interval.
func (e Entry) Validate() error {
	if e.ChrName == "" {
		return fmt.Errorf("interval.Entry: empty chromosome name")
	}
	if e.Start0 < 0 {
		return fmt.Errorf("interval.Entry: negative start coordinate %d", e.Start0)
	}
	if e.End < e.Start0 || e.End >= posTypeMax {
		return fmt.Errorf("interval.Entry: invalid coordinate pair [%d, %d)", e.Start0, e.End)
	}
	return nil
}

// ReadBEDNames returns the last tab-separated column of every nonblank line of
// a BED file, in file order.  No other column is interpreted, so this accepts
// any BED-like table whose rows end in a name.
func ReadBEDNames(reader io.Reader) ([]string, error) {
	// Note that Scanner does not handle very long lines unless we specify an
	// adequate buffer size in advance; it does not auto-resize.
	// Shouldn't matter for BED files, though.
	scanner := bufio.NewScanner(reader)
	var names []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line[strings.LastIndexByte(line, '\t')+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// WriteBED writes entries as BED lines.  The name column is written only when
// at least one entry has a name, so that every line has the same width.
func WriteBED(out io.Writer, entries []Entry) error {
	withName := false
	for _, e := range entries {
		if e.Name != "" {
			withName = true
			break
		}
	}
	w := tsv.NewWriter(out)
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		w.WriteString(e.ChrName)
		w.WriteInt64(int64(e.Start0))
		w.WriteInt64(int64(e.End))
		if withName {
			w.WriteString(e.Name)
		}
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
