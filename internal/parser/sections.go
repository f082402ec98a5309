package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

// walkState is the explicit state of the pending-transaction accumulator.
type walkState int

const (
	stateIdle walkState = iota
	stateAccumulating
)

// sectionMarker maps a printed section header to the canonical section.
type sectionMarker struct {
	re      *regexp.Regexp
	section statement.Section
}

// grammar is everything a dialect contributes to the shared line walker.
type grammar struct {
	// transaction matches a transaction seed line and captures, in order:
	// date, description, amount. extract may override the capture layout.
	transaction *regexp.Regexp
	// extract pulls the raw tuple out of a transaction match. Defaults to
	// groups 1..3 as (date, description, amount).
	extract func(m []string) statement.RawTransaction
	// checkLine, when set, matches the compact (date, check number, amount)
	// rows printed inside a checks section.
	checkLine *regexp.Regexp
	// sections are tested in order against every line.
	sections []sectionMarker
	// total matches a section-closing "Total …" line; group 1 is the
	// printed subtotal. A total line also resets the section.
	total *regexp.Regexp
	// skip lines are ignored without touching the accumulator.
	skip []*regexp.Regexp
	// defaultSection applies before any header is seen.
	defaultSection statement.Section
}

// headerWords start lines that are never continuations of a transaction.
var headerWords = []string{
	"total", "subtotal", "date", "description", "amount", "page",
	"beginning", "ending", "previous", "account", "continued", "daily",
	"important", "questions", "customer", "statement",
}

var (
	confirmationLineRe = regexp.MustCompile(`(?i)^conf(irmation)?\s*#?\s*:?\s*\w+`)
	trailingAmountRe   = regexp.MustCompile(`-?\$?[\d,]+\.\d{2}-?\s*$`)
	leadingDateRe      = regexp.MustCompile(`^\d{2}/\d{2}(/\d{2,4})?\b`)
)

// looksLikeContinuation applies the continuation heuristic: a short line with
// no date of its own, no trailing amount, and no leading header word extends
// the pending transaction's description. Known limitation: a genuine new
// transaction with a very short description and no printed amount column can
// be misread as a continuation; the threshold is deliberately left alone so
// output stays stable for existing documents.
func looksLikeContinuation(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 60 {
		return false
	}
	if confirmationLineRe.MatchString(text) {
		return true
	}
	if leadingDateRe.MatchString(text) {
		return false
	}
	if trailingAmountRe.MatchString(text) {
		return false
	}
	first := strings.ToLower(strings.Fields(text)[0])
	first = strings.TrimRight(first, ":")
	for _, w := range headerWords {
		if first == w {
			return false
		}
	}
	// Mostly-numeric fragments are reference noise, not location text —
	// except long digit runs, which are confirmation numbers worth keeping.
	digits := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits*2 > len(text) && len(text) < 12 {
		return false
	}
	return true
}

// walk runs the two-state accumulator over all lines, returning completed raw
// transactions, printed section subtotals, and the count of lines that
// matched nothing (dropped silently per the lossy-tolerant contract).
func walk(lines []statement.RawLine, g grammar) ([]statement.RawTransaction, map[statement.Section]decimal.Decimal, int) {
	var (
		out     []statement.RawTransaction
		pending *statement.RawTransaction
		state   = stateIdle
		section = g.defaultSection
		totals  = make(map[statement.Section]decimal.Decimal)
		dropped int
	)

	flush := func() {
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
		state = stateIdle
	}

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		// Section headers and totals win over everything else.
		if marker, ok := matchSection(g.sections, text); ok {
			flush()
			section = marker
			continue
		}
		if g.total != nil {
			if m := g.total.FindStringSubmatch(text); m != nil {
				flush()
				if amt, err := money.ParseAmount(m[1]); err == nil {
					totals[section] = amt
				}
				section = g.defaultSection
				continue
			}
		}
		if matchAny(g.skip, text) {
			continue
		}

		// Compact check rows only exist inside a checks section.
		if g.checkLine != nil && section == statement.SectionChecks {
			if m := g.checkLine.FindStringSubmatch(text); m != nil {
				flush()
				out = append(out, statement.RawTransaction{
					Date:         m[1],
					Description:  "Check #" + strings.TrimSuffix(m[2], "*"),
					Amount:       m[3],
					Page:         line.Page,
					LineIndex:    line.Index,
					Section:      section,
					OriginalLine: text,
				})
				continue
			}
		}

		if m := g.transaction.FindStringSubmatch(text); m != nil {
			flush()
			raw := g.extractTuple(m)
			raw.Page = line.Page
			raw.LineIndex = line.Index
			raw.Section = section
			raw.OriginalLine = text
			pending = &raw
			state = stateAccumulating
			continue
		}

		if state == stateAccumulating && looksLikeContinuation(text) {
			pending.Description += " " + text
			pending.OriginalLine += " " + text
			continue
		}

		// Only lines inside a transaction table count as drops; header
		// furniture outside any section is parsed separately.
		if section != g.defaultSection || state == stateAccumulating {
			dropped++
		}
	}
	flush()

	return out, totals, dropped
}

func (g grammar) extractTuple(m []string) statement.RawTransaction {
	if g.extract != nil {
		return g.extract(m)
	}
	return statement.RawTransaction{
		Date:        m[1],
		Description: strings.TrimSpace(m[2]),
		Amount:      m[3],
	}
}

func matchSection(markers []sectionMarker, text string) (statement.Section, bool) {
	for _, m := range markers {
		if m.re.MatchString(text) {
			return m.section, true
		}
	}
	return statement.SectionNone, false
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// warnf appends a formatted warning to a result.
func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
