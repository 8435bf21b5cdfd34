package reporters

import (
	"fmt"
	"io"
	"os"

	"github.com/reaandrew/rewritestats/core"
)

// TextReporter prints the four summary lines. The format strings are part of
// the tool's contract; downstream scripts scrape them.
type TextReporter struct {
	Writer io.Writer
}

func NewTextReporter() TextReporter {
	return TextReporter{Writer: os.Stdout}
}

func (t TextReporter) Report(summary *core.Summary, repository core.FunctionRepository) error {
	out := t.Writer
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "pointwise:  %5d/%d functions passed (%.1f%%)\n",
		summary.PointwisePassed, summary.TotalFunctions, summary.PointwisePct)
	fmt.Fprintf(out, "unmodified: %5d/%d functions passed (%.1f%%)\n",
		summary.UnmodifiedPassed, summary.TotalFunctions, summary.UnmodifiedPct)
	fmt.Fprintf(out, "improved:   %5d/%d functions (%.1f%%)\n",
		len(summary.Improved), summary.UnmodifiedFailed(), summary.ImprovedPct)
	fmt.Fprintf(out, "broke:      %5d/%d functions (%.1f%%)\n",
		len(summary.Broke), summary.UnmodifiedPassed, summary.BrokePct)

	return nil
}
