// Package layout reconstructs table rows from positioned text fragments.
// It works on spatial gaps only: fragments are banded into rows by Y
// coordinate and joined left to right with separators sized by the horizontal
// gap between them. No OCR and no font-based inference.
package layout

import (
	"sort"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// ColumnBreak is the marker inserted between fragments separated by a large
// horizontal gap. Downstream line grammars key on runs of 3+ spaces to
// recognize column boundaries in multi-column tables.
const ColumnBreak = "   "

// Options tune row banding and separator thresholds, in PDF layout units.
type Options struct {
	// YTolerance is the maximum |y - rowY| for a fragment to join a row,
	// measured against the row's first fragment (not a running average,
	// which would drift on slightly sloped baselines).
	YTolerance float64
	// SmallGap and below: fragments are joined with no separator.
	SmallGap float64
	// LargeGap and above: fragments are joined with ColumnBreak.
	// Gaps in (SmallGap, LargeGap) get a single space.
	LargeGap float64
}

// DefaultOptions returns thresholds that work for the statement layouts this
// pipeline recognizes.
func DefaultOptions() Options {
	return Options{
		YTolerance: 2.5,
		SmallGap:   4.0,
		LargeGap:   14.0,
	}
}

// Row is an ordered run of fragments sharing a Y band, sorted by X.
type Row struct {
	Y         float64
	Fragments []statement.Fragment
}

// Rows groups one page's fragments into rows, top of page first.
// The grouping is deterministic: sorting is stable and ties keep the
// original fragment order. An empty page yields an empty slice.
func Rows(fragments []statement.Fragment, opts Options) []Row {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]statement.Fragment, len(fragments))
	copy(sorted, fragments)
	// Descending Y (PDF Y grows upward, so top of page first), then
	// ascending X. Stable so identical coordinates keep input order.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []Row
	for _, frag := range sorted {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		n := len(rows)
		if n > 0 && abs(frag.Y-rows[n-1].Y) <= opts.YTolerance {
			rows[n-1].Fragments = append(rows[n-1].Fragments, frag)
			continue
		}
		rows = append(rows, Row{Y: frag.Y, Fragments: []statement.Fragment{frag}})
	}

	// Fragments within a band can arrive out of X order when their Y values
	// differ slightly; re-sort each row by X, stable on ties.
	for i := range rows {
		frags := rows[i].Fragments
		sort.SliceStable(frags, func(a, b int) bool {
			return frags[a].X < frags[b].X
		})
	}
	return rows
}

// Lines renders one page's fragments into reconstructed text lines.
func Lines(fragments []statement.Fragment, opts Options) []string {
	rows := Rows(fragments, opts)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := joinRow(row, opts)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// joinRow joins a row's fragments with gap-sized separators.
func joinRow(row Row, opts Options) string {
	var b strings.Builder
	var prevEnd float64
	for i, frag := range row.Fragments {
		if i > 0 {
			gap := frag.X - prevEnd
			switch {
			case gap > opts.LargeGap:
				b.WriteString(ColumnBreak)
			case gap > opts.SmallGap:
				b.WriteString(" ")
			}
		}
		b.WriteString(frag.Text)
		prevEnd = frag.X + frag.Width
	}
	return strings.TrimSpace(b.String())
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
