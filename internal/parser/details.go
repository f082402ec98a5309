package parser

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// detailsGrammar recognizes the online-banking "transaction details" export:
// a four-digit-year date, description, signed amount, and an optional running
// balance column that is captured and discarded. The export prints no
// sections, so direction comes entirely from the amount's sign.
var detailsGrammar = grammar{
	transaction: regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(-?[\d,]+\.\d{2})(?:\s+-?[\d,]+\.\d{2})?$`),
	extract: func(m []string) statement.RawTransaction {
		return statement.RawTransaction{
			Date:        m[1],
			Description: strings.TrimSpace(m[2]),
			Amount:      m[3],
		}
	},
	sections: nil,
	total:    regexp.MustCompile(`(?i)^total transactions\s+(-?\$?[\d,]+\.\d{2})$`),
	skip: append([]*regexp.Regexp{
		regexp.MustCompile(`(?i)^transaction details`),
		regexp.MustCompile(`(?i)^date\s+description\s+amount(\s+balance)?$`),
		regexp.MustCompile(`(?i)^(beginning|ending) balance as of`),
		regexp.MustCompile(`(?i)^online banking download`),
	}, sharedSkips...),
	defaultSection: statement.SectionNone,
}

var savingsExportRe = regexp.MustCompile(`(?i)savings`)

// detailsParser parses the export for a deposit account; the account type on
// the export header decides checking vs savings, defaulting to checking.
type detailsParser struct{}

func (p *detailsParser) Dialect() Dialect                   { return DialectDetails }
func (p *detailsParser) AccountType() statement.AccountType { return statement.AccountChecking }

func (p *detailsParser) Parse(lines []statement.RawLine) (*Result, error) {
	res := &Result{}
	accountType := p.AccountType()
	if savingsExportRe.MatchString(FullText(lines)) {
		accountType = statement.AccountSavings
	}
	parseHeaders(lines, accountType, res)

	txns, totals, dropped := walk(lines, detailsGrammar)
	res.Transactions = txns
	res.SectionTotals = totals
	res.DroppedLines = dropped
	if dropped > 0 {
		res.warnf("%d lines matched no transaction, continuation, or skip pattern", dropped)
	}
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}
	return res, nil
}
