package parser

import (
	"regexp"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// sharedSkips are ignored by every printed-statement dialect: page furniture,
// column headers, and daily balance tables.
var sharedSkips = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page \d+ of \d+`),
	regexp.MustCompile(`(?i)^continued on (the )?next page`),
	regexp.MustCompile(`(?i)^date\s+(check #\s+)?(description|transaction description)\s+amount`),
	regexp.MustCompile(`(?i)^daily ledger balances`),
	regexp.MustCompile(`(?i)^\d{2}/\d{2}/\d{2,4}\s+\d{1,2}:\d{2}(:\d{2})?\s*(am|pm)?$`),
	regexp.MustCompile(`(?i)customer service information`),
	regexp.MustCompile(`(?i)member fdic`),
}

// checkingGrammar recognizes the deposit-account statement layout: one
// MM/DD/YY date, free-text description, trailing amount; compact check rows
// inside a checks section; five printed sections.
var checkingGrammar = grammar{
	transaction: regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(.+?)\s+(-?[\d,]+\.\d{2}-?)$`),
	checkLine:   regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(\d{3,6}\*?)\s+(-?[\d,]+\.\d{2})$`),
	sections: []sectionMarker{
		{regexp.MustCompile(`(?i)^deposits and other additions`), statement.SectionDeposits},
		{regexp.MustCompile(`(?i)^atm and debit card subtractions`), statement.SectionATMDebit},
		{regexp.MustCompile(`(?i)^other subtractions`), statement.SectionOtherSubtractions},
		{regexp.MustCompile(`(?i)^checks\b`), statement.SectionChecks},
		{regexp.MustCompile(`(?i)^service fees`), statement.SectionFees},
	},
	total:          regexp.MustCompile(`(?i)^total [a-z][a-z ]*?\s+(-?\$?[\d,]+\.\d{2}-?)$`),
	skip:           sharedSkips,
	defaultSection: statement.SectionNone,
}

type checkingParser struct{}

func (p *checkingParser) Dialect() Dialect                  { return DialectChecking }
func (p *checkingParser) AccountType() statement.AccountType { return statement.AccountChecking }

func (p *checkingParser) Parse(lines []statement.RawLine) (*Result, error) {
	return parseDepositAccount(lines, p.AccountType(), checkingGrammar)
}

// parseDepositAccount is the shared checking/savings parse: headers first,
// then the section walker.
func parseDepositAccount(lines []statement.RawLine, accountType statement.AccountType, g grammar) (*Result, error) {
	res := &Result{}
	parseHeaders(lines, accountType, res)

	txns, totals, dropped := walk(lines, g)
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
