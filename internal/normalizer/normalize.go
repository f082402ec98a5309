// Package normalizer turns raw transaction tuples into canonical
// transactions: parsed dates, signed amounts, channel classification, bank
// reference and merchant extraction, and trait flags.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

// Context carries the per-statement facts normalization depends on.
type Context struct {
	StatementID   string
	StatementYear int
	// StatementEndMonth lets MM/DD dates near a year boundary resolve to
	// the right year (a December transaction on a January statement).
	StatementEndMonth time.Month
	IsCreditCard      bool
}

// Normalize converts one raw tuple into a fully populated transaction,
// except Categorization, which the caller fills from the categorizer.
// It is a pure function of its inputs.
func Normalize(raw statement.RawTransaction, ctx Context) (statement.Transaction, error) {
	date, err := parseTransactionDate(raw.Date, ctx)
	if err != nil {
		return statement.Transaction{}, fmt.Errorf("transaction date: %w", err)
	}
	postedDate := ""
	if raw.PostedDate != "" {
		if pd, perr := parseTransactionDate(raw.PostedDate, ctx); perr == nil {
			postedDate = pd
		}
	}

	amt, err := money.ParseAmount(raw.Amount)
	if err != nil {
		return statement.Transaction{}, fmt.Errorf("transaction amount: %w", err)
	}

	direction := DirectionFor(ctx.IsCreditCard, raw.Section, amt)
	signed := statement.SignedAmount(amt, direction)

	channel, subtype := ClassifyChannel(raw.Description, raw.Section)
	canonical := CanonicalDescription(raw.Description)

	txn := statement.Transaction{
		Date:           date,
		PostedDate:     postedDate,
		Amount:         signed,
		Direction:      direction,
		Description:    canonical,
		DescriptionRaw: raw.Description,
		Merchant:       ExtractMerchant(raw.Description, channel),
		BankReference:  ExtractBankReference(raw.Description, channel),
		Channel:        channel,
		ChannelSubtype: subtype,
		Page:           raw.Page,
		OriginalText:   raw.OriginalLine,
	}
	txn.Flags = ComputeFlags(channel, canonical)
	return txn, nil
}

// DirectionFor maps (isCreditCard, section, raw ledger sign) to the canonical
// direction, per the dialect rule table.
func DirectionFor(isCreditCard bool, section statement.Section, raw decimal.Decimal) statement.Direction {
	if isCreditCard {
		return creditCardDirection(section, raw)
	}
	return depositAccountDirection(section, raw)
}

// depositAccountDirection: on checking/savings statements the section decides
// direction; outside any section the printed sign does.
func depositAccountDirection(section statement.Section, raw decimal.Decimal) statement.Direction {
	switch section {
	case statement.SectionDeposits:
		return statement.Credit
	case statement.SectionATMDebit, statement.SectionOtherSubtractions,
		statement.SectionChecks, statement.SectionFees:
		return statement.Debit
	}
	if raw.IsNegative() {
		return statement.Debit
	}
	return statement.Credit
}

// creditCardDirection is the named card-ledger inversion rule: a positive
// ledger entry on a card statement is a charge, which is a canonical debit.
// The payments-and-credits section and negative rows (refunds) stay credits.
func creditCardDirection(section statement.Section, raw decimal.Decimal) statement.Direction {
	if section == statement.SectionDeposits {
		return statement.Credit
	}
	if raw.IsNegative() {
		return statement.Credit
	}
	return statement.Debit
}

var (
	traceSuffixRe = regexp.MustCompile(`\s+\d{15,}\s*$`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
)

// CanonicalDescription strips trailing trace-number digit runs and collapses
// whitespace. The same cleanup feeds both the categorizer input and the
// identity hash, so cosmetically different descriptions converge.
func CanonicalDescription(desc string) string {
	desc = traceSuffixRe.ReplaceAllString(desc, "")
	desc = multiSpaceRe.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}

// transactionDateFormats are the printed date layouts, longest first.
var transactionDateFormats = []string{
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
}

func parseTransactionDate(s string, ctx Context) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range transactionDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	// MM/DD with the year inferred from the statement period.
	if t, err := time.Parse("01/02", s); err == nil {
		year := ctx.StatementYear
		if year == 0 {
			return "", fmt.Errorf("date %q has no year and statement year is unknown", s)
		}
		// Year-boundary: a December transaction on a January statement
		// belongs to the previous year, and vice versa.
		if ctx.StatementEndMonth == time.January && t.Month() == time.December {
			year--
		} else if ctx.StatementEndMonth == time.December && t.Month() == time.January {
			year++
		}
		return fmt.Sprintf("%d-%02d-%02d", year, t.Month(), t.Day()), nil
	}

	return "", fmt.Errorf("unrecognized date format: %q", s)
}
