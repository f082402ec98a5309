package parser

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// creditGrammar recognizes card statement lines: transaction date and posting
// date (both MM/DD, year comes from the statement period), description with
// an optional trailing reference number, and the ledger amount. On a card
// statement a positive ledger amount is a charge; the normalizer's
// credit-card direction rule inverts it into a canonical debit.
var creditGrammar = grammar{
	transaction: regexp.MustCompile(`^(\d{2}/\d{2})\s+(\d{2}/\d{2})\s+(.+?)\s+(-?[\d,]+\.\d{2})$`),
	extract: func(m []string) statement.RawTransaction {
		return statement.RawTransaction{
			Date:        m[1],
			PostedDate:  m[2],
			Description: strings.TrimSpace(m[3]),
			Amount:      m[4],
		}
	},
	sections: []sectionMarker{
		{regexp.MustCompile(`(?i)^payments and other credits`), statement.SectionDeposits},
		{regexp.MustCompile(`(?i)^purchases and adjustments`), statement.SectionATMDebit},
		{regexp.MustCompile(`(?i)^fees(\s+charged)?$`), statement.SectionFees},
		{regexp.MustCompile(`(?i)^interest charged`), statement.SectionFees},
	},
	total: regexp.MustCompile(`(?i)^total [a-z][a-z ]*?(?: for this period)?\s+(-?\$?[\d,]+\.\d{2}-?)$`),
	skip: append([]*regexp.Regexp{
		regexp.MustCompile(`(?i)^transaction\s+posting`),
		regexp.MustCompile(`(?i)^date\s+date\s+description`),
		regexp.MustCompile(`(?i)^account#\s`),
	}, sharedSkips...),
	defaultSection: statement.SectionNone,
}

type creditParser struct{}

func (p *creditParser) Dialect() Dialect                   { return DialectCredit }
func (p *creditParser) AccountType() statement.AccountType { return statement.AccountCredit }

func (p *creditParser) Parse(lines []statement.RawLine) (*Result, error) {
	res := &Result{}
	parseHeaders(lines, p.AccountType(), res)

	txns, totals, dropped := walk(lines, creditGrammar)
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
