package pipeline

import (
	"regexp"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// firstPageRe marks the start of a statement inside a combined PDF: each
// bundled statement restarts its own page numbering at "Page 1 of N".
var firstPageRe = regexp.MustCompile(`(?i)^page 1 of \d+`)

// splitStatements cuts the line stream into per-statement segments. A
// standalone PDF comes back as a single segment. Documents that never print
// page markers cannot be split, so they are treated as one statement.
func splitStatements(lines []statement.RawLine) [][]statement.RawLine {
	var starts []int
	for i, line := range lines {
		if firstPageRe.MatchString(line.Text) {
			starts = append(starts, i)
		}
	}
	if len(starts) <= 1 {
		return [][]statement.RawLine{lines}
	}

	// Lines before the first marker (cover sheets, bundle indexes) attach
	// to the first statement.
	starts[0] = 0
	segments := make([][]statement.RawLine, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		segments = append(segments, lines[start:end])
	}
	return segments
}
