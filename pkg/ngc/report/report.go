// Package report renders result rows and the statistics banner as printed
// lines. Formatting is intentionally thin; all ordering decisions happen in
// the engine.
package report

import (
	"fmt"
	"strings"

	"github.com/cognicore/ngc/pkg/ngc"
	"github.com/cognicore/ngc/pkg/ngc/ngram"
	"github.com/cognicore/ngc/pkg/ngc/query"
	"github.com/cognicore/ngc/pkg/ngc/stats"
)

// Render formats a complete report for the given display mode.
func Render(rep ngc.Report, view query.Display) string {
	var b strings.Builder

	rawBySize := make(map[int]ngc.SizeStats, len(rep.Raw))
	for _, raw := range rep.Raw {
		rawBySize[raw.Size] = raw
	}

	for _, res := range rep.Sizes {
		writeSection(&b, fmt.Sprintf("%d-grams", res.Size), res.Entries, rawBySize[res.Size], view)
	}
	if rep.Merged != nil {
		var raw ngc.SizeStats
		if rep.MergedRaw != nil {
			raw = *rep.MergedRaw
		}
		writeSection(&b, "merged", rep.Merged.Entries, raw, view)
	}

	fmt.Fprintf(&b, "%d chars, %d lines, %d words\n",
		rep.Text.Chars, rep.Text.Lines, rep.Text.Words)

	return b.String()
}

func writeSection(b *strings.Builder, label string, entries []*ngram.Entry, raw ngc.SizeStats, view query.Display) {
	fmt.Fprintf(b, "[%s] %d shown, %d unique, %d positions\n", label, len(entries), raw.Unique, raw.Total)

	if view != query.ViewStats {
		for _, e := range entries {
			b.WriteString(Row(e, view))
			b.WriteByte('\n')
		}
	}
	if view.Rich() {
		writeBanner(b, raw)
	}
	b.WriteByte('\n')
}

// Row formats a single result row for the display mode.
func Row(e *ngram.Entry, view query.Display) string {
	switch view {
	case query.ViewMinimal:
		return e.Text
	case query.ViewFull:
		return fmt.Sprintf("%7d %12.2f %8.3f  %s", e.Count, e.PPM, e.Z, e.Text)
	default:
		return fmt.Sprintf("%7d  %s", e.Count, e.Text)
	}
}

// writeBanner prints the distribution summary of a population's raw counts
// and ppm values.
func writeBanner(b *strings.Builder, raw ngc.SizeStats) {
	counts := stats.Summarize(raw.Counts)
	ppms := stats.Summarize(raw.PPMs)

	fmt.Fprintf(b, "counts  min=%.0f max=%.0f median=%.1f avg=%.2f p90=%.0f\n",
		counts.Min, counts.Max, counts.Median, counts.Avg, counts.P90)
	fmt.Fprintf(b, "ppm     min=%.2f max=%.2f median=%.2f avg=%.2f p90=%.2f\n",
		ppms.Min, ppms.Max, ppms.Median, ppms.Avg, ppms.P90)
}
