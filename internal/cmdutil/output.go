package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/scaffold"
)

// WriteOutcome writes the result of a scaffolding operation to w: a summary
// line, the affected entries as a tree, and counts.
func WriteOutcome(w io.Writer, o *scaffold.Outcome) {
	entries := o.TreeEntries()

	// A single file gets a single line.
	if len(entries) == 1 && !entries[0].IsDir {
		e := entries[0]
		switch e.Annotation {
		case output.StatusSkipped:
			fmt.Fprintf(w, "Skipped %s (already exists)\n", output.StyleNoun.Render(e.Path))
		case output.StatusPlanned:
			fmt.Fprintf(w, "Would create %s\n", output.StyleNoun.Render(e.Path))
		default:
			fmt.Fprintln(w, output.FormatCheckmark("Created "+output.StyleNoun.Render(e.Path)))
		}
		return
	}

	label := o.Target
	if label == "" {
		label = o.Source
	}

	if o.DryRun {
		fmt.Fprintf(w, "Would create %s in %s (dry run, nothing written)\n\n",
			output.StyleNoun.Render(label), o.Root)
	} else {
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s in %s", output.StyleNoun.Render(label), o.Root)))
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, output.RenderFileTree(".", entries))

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Annotation]++
	}
	var parts []string
	for _, status := range []string{output.StatusPlanned, output.StatusCreated, output.StatusSkipped, output.StatusExists} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.StyleSummary.Render(strings.Join(parts, ", ")))
	}
}

// FormatError renders err for stderr. Structured errors keep their own
// layout; anything else gets an "Error:" prefix.
func FormatError(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return strings.TrimRight(detail.Error(), "\n")
	}
	return "Error: " + err.Error()
}

// PrintError writes err to w and marks it printed so main does not repeat it.
func PrintError(w io.Writer, err error) *oerrors.ExitError {
	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) {
		exitErr = oerrors.NewExitError(err)
	}
	if !exitErr.Printed {
		fmt.Fprintln(w, FormatError(exitErr.Err))
		exitErr.Printed = true
	}
	return exitErr
}
