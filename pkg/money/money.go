// Package money parses and formats the monetary amounts printed on bank
// statements. Parsing returns shopspring decimals so pipeline arithmetic stays
// exact; display formatting goes through go-money for correct symbol and
// grouping.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only currency US statement dialects print.
const USD = "USD"

// ParseAmount parses an amount as printed on a statement: optional currency
// symbol, thousands separators, and a leading '-' or accounting parentheses
// for negatives. Returns the signed decimal value.
//
//	"1,300.00"  -> 1300.00
//	"-45.17"    -> -45.17
//	"($250.00)" -> -250.00
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}
	// Some statements print debits with a trailing minus.
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}

	for _, sym := range []string{"$", "€", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// LooksLikeAmount reports whether s parses as a statement amount. Used by the
// line classifiers to tell amounts from reference numbers.
func LooksLikeAmount(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}

// Format renders a decimal amount as a human display string ("-$1,234.56").
func Format(d decimal.Decimal) string {
	cents := d.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return money.New(cents, USD).Display()
}

// FormatFixed renders the amount with exactly two decimals and no symbol, the
// canonical form used for identity hashing.
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
