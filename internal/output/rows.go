// Package output renders query results: tab-separated entity rows, arrow
// notation for paths and cycles, and D3-compatible graph JSON.
//
// Diagnostics honor the NO_COLOR environment variable and suppress color
// when the stream is not a TTY, keeping piped output and CI logs clean.
package output

import (
	"fmt"
	"io"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// WriteEntityRows writes one "<name>\t<kind>\t<file>" line per entity.
func WriteEntityRows(w io.Writer, entities []types.EntityRecord) {
	for _, e := range entities {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Kind, e.File)
	}
}

// RankedEntity pairs an entity with its dependency count.
type RankedEntity struct {
	Degree int
	Entity types.EntityRecord
}

// WriteRankedRows writes rank output: the numeric metric, then the entity
// row.
func WriteRankedRows(w io.Writer, rows []RankedEntity) {
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Degree, r.Entity.Name, r.Entity.Kind, r.Entity.File)
	}
}

// WritePathLines writes one path per line in arrow notation:
// "A -> B -> C".
func WritePathLines(w io.Writer, paths [][]string) {
	for _, p := range paths {
		writeArrowLine(w, p, false)
	}
}

// WriteCycleLines writes one cycle per line, closed back to its first
// entity: "A -> B -> C -> A".
func WriteCycleLines(w io.Writer, cycles [][]string) {
	for _, c := range cycles {
		writeArrowLine(w, c, true)
	}
}

// WriteLines writes one plain string per line (directory and test-file
// listings).
func WriteLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func writeArrowLine(w io.Writer, names []string, closed bool) {
	for i, n := range names {
		if i > 0 {
			fmt.Fprint(w, " -> ")
		}
		fmt.Fprint(w, n)
	}
	if closed && len(names) > 0 {
		fmt.Fprintf(w, " -> %s", names[0])
	}
	fmt.Fprintln(w)
}
