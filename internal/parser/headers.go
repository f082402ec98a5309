package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

var (
	acctNumRe = regexp.MustCompile(`(?i)account\s*(?:number|#)\s*:?\s*([\dXx*\s-]*\d{4})\b`)

	longPeriodRe  = regexp.MustCompile(`([A-Z][a-z]+ \d{1,2}, \d{4})\s*(?:to|through|-)\s*([A-Z][a-z]+ \d{1,2}, \d{4})`)
	slashPeriodRe = regexp.MustCompile(`(\d{2}/\d{2}/\d{2,4})\s*(?:to|through|-)\s*(\d{2}/\d{2}/\d{2,4})`)

	beginningBalRe = regexp.MustCompile(`(?i)(?:beginning|previous) balance(?: on [A-Za-z]+ \d{1,2}, \d{4})?\s+(-?\$?[\d,]+\.\d{2})`)
	endingBalRe    = regexp.MustCompile(`(?i)(?:ending|new) balance(?: total)?(?: on [A-Za-z]+ \d{1,2}, \d{4})?\s+(-?\$?[\d,]+\.\d{2})`)
	totalCredRe    = regexp.MustCompile(`(?i)total (?:deposits and other additions|payments and other credits)\s+(-?\$?[\d,]+\.\d{2})`)
	totalDebRe     = regexp.MustCompile(`(?i)total (?:withdrawals and other subtractions|purchases and adjustments|subtractions)\s+(-?\$?[\d,]+\.\d{2}-?)`)
)

// periodFormats are the date layouts statement headers print periods in.
var periodFormats = []string{
	"January 2, 2006",
	"01/02/2006",
	"01/02/06",
}

func parsePeriodDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range periodFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// maskAccount reduces a printed account number to its masked form, keeping
// only the last four digits.
func maskAccount(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return "****" + string(digits[len(digits)-4:])
}

// parseHeaders scans all lines for the account, period and balance headers
// shared by every printed-statement dialect. Missing headers become warnings
// on the result, not errors.
func parseHeaders(lines []statement.RawLine, accountType statement.AccountType, res *Result) {
	full := FullText(lines)

	res.Account.Type = accountType
	res.Account.Institution = DetectInstitution(full)

	if m := acctNumRe.FindStringSubmatch(full); m != nil {
		res.Account.NumberMasked = maskAccount(m[1])
	}
	if res.Account.NumberMasked == "" {
		res.warnf("account number not found in statement header")
	}

	start, end, ok := findPeriod(full)
	if ok {
		if end.Before(start) {
			res.warnf("statement period end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
			start, end = end, start
		}
		res.Account.PeriodStart = start
		res.Account.PeriodEnd = end
	} else {
		res.warnf("statement period not found in header")
	}

	if m := beginningBalRe.FindStringSubmatch(full); m != nil {
		if amt, err := money.ParseAmount(m[1]); err == nil {
			res.Balance.Starting = amt
			res.Balance.HasStarting = true
		}
	}
	if m := endingBalRe.FindStringSubmatch(full); m != nil {
		if amt, err := money.ParseAmount(m[1]); err == nil {
			res.Balance.Ending = amt
			res.Balance.HasEnding = true
		}
	}
	if !res.Balance.HasStarting || !res.Balance.HasEnding {
		res.warnf("statement balances incomplete: starting=%v ending=%v", res.Balance.HasStarting, res.Balance.HasEnding)
	}
	if m := totalCredRe.FindStringSubmatch(full); m != nil {
		if amt, err := money.ParseAmount(m[1]); err == nil {
			res.Balance.TotalCredits = amt.Abs()
		}
	}
	if m := totalDebRe.FindStringSubmatch(full); m != nil {
		if amt, err := money.ParseAmount(strings.TrimSuffix(m[1], "-")); err == nil {
			res.Balance.TotalDebits = amt.Abs()
		}
	}
}

func findPeriod(full string) (time.Time, time.Time, bool) {
	if m := longPeriodRe.FindStringSubmatch(full); m != nil {
		if start, ok1 := parsePeriodDate(m[1]); ok1 {
			if end, ok2 := parsePeriodDate(m[2]); ok2 {
				return start, end, true
			}
		}
	}
	if m := slashPeriodRe.FindStringSubmatch(full); m != nil {
		if start, ok1 := parsePeriodDate(m[1]); ok1 {
			if end, ok2 := parsePeriodDate(m[2]); ok2 {
				return start, end, true
			}
		}
	}
	return time.Time{}, time.Time{}, false
}
