package renderer

import (
	"fmt"
	"strings"

	"github.com/finreport/finreport"
)

// RawMarkdown lists every normalized operation in chronological order. It is
// the document to eyeball when a report figure looks suspicious.
func RawMarkdown(ops []finreport.Operation) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Normalized Operations\n\n")
	if len(ops) == 0 {
		fmt.Fprintln(&b, "No operations.")
		return b.String()
	}
	for _, op := range finreport.SortOperations(ops) {
		fmt.Fprintf(&b, "- %s\n", op)
	}
	return b.String()
}
