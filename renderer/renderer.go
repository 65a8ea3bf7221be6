// Package renderer turns report structs into markdown, the common
// output format of both the command line and the dashboard.
package renderer

import (
	"fmt"
	"strings"
)

// table accumulates markdown table rows with a fixed header.
type table struct {
	b *strings.Builder
}

func newTable(b *strings.Builder, headers ...string) *table {
	fmt.Fprintf(b, "| %s |\n", strings.Join(headers, " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---:"
	}
	seps[0] = ":---"
	fmt.Fprintf(b, "|%s|\n", strings.Join(seps, "|"))
	return &table{b: b}
}

func (t *table) row(cells ...string) {
	fmt.Fprintf(t.b, "| %s |\n", strings.Join(cells, " | "))
}

func (t *table) bold(cells ...string) {
	for i, c := range cells {
		if c != "" {
			cells[i] = "**" + c + "**"
		}
	}
	t.row(cells...)
}
