package formatter

import (
	"io"
	"text/tabwriter"
	"time"
)

// now is replaced in tests.
var now = time.Now

// newTableWriter returns a tabwriter with kubectl style spacing.
func newTableWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
}

// orNone returns "<none>" for empty values.
func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
