package parser

import (
	"regexp"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// savingsGrammar differs from checking only in its section vocabulary:
// savings statements print a single "Withdrawals and other subtractions"
// table instead of split ATM/other sections, and rarely carry checks.
var savingsGrammar = grammar{
	transaction: checkingGrammar.transaction,
	checkLine:   checkingGrammar.checkLine,
	sections: []sectionMarker{
		{regexp.MustCompile(`(?i)^deposits and other additions`), statement.SectionDeposits},
		{regexp.MustCompile(`(?i)^withdrawals and other subtractions`), statement.SectionOtherSubtractions},
		{regexp.MustCompile(`(?i)^atm and debit card subtractions`), statement.SectionATMDebit},
		{regexp.MustCompile(`(?i)^checks\b`), statement.SectionChecks},
		{regexp.MustCompile(`(?i)^service fees`), statement.SectionFees},
	},
	total:          checkingGrammar.total,
	skip:           sharedSkips,
	defaultSection: statement.SectionNone,
}

type savingsParser struct{}

func (p *savingsParser) Dialect() Dialect                   { return DialectSavings }
func (p *savingsParser) AccountType() statement.AccountType { return statement.AccountSavings }

func (p *savingsParser) Parse(lines []statement.RawLine) (*Result, error) {
	return parseDepositAccount(lines, p.AccountType(), savingsGrammar)
}
