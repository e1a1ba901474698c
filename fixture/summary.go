package fixture

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headerFmt = color.New(color.FgBlue, color.Bold).SprintFunc()
	passFmt   = color.New(color.FgGreen).SprintfFunc()
	failFmt   = color.New(color.FgRed).SprintfFunc()
)

// PrintSummary writes a human readable report of summary to w.
func PrintSummary(w io.Writer, summary *Summary, verbose bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerFmt("=== Fixture Summary ==="))
	fmt.Fprintf(w, "Fixtures: %d total, %s, %s\n",
		summary.Total, passFmt("%d passed", summary.Passed), failFmt("%d failed", summary.Failed))
	fmt.Fprintf(w, "Duration: %.3fs\n", summary.Duration.Seconds())

	for _, result := range summary.Results {
		switch {
		case result.Success && verbose:
			fmt.Fprintln(w, passFmt("  ✅ %s", result.Name))
		case !result.Success:
			fmt.Fprintln(w, failFmt("  ❌ %s", result.Name))

			if result.Error != nil {
				fmt.Fprintf(w, "    Error: %v\n", result.Error)
			}
		}
	}

	if summary.Failed == 0 {
		fmt.Fprintln(w, passFmt("\nAll fixtures passed! ✅"))
	} else {
		fmt.Fprintln(w, failFmt("\nSome fixtures failed! ❌"))
	}
}
