// Package reconcile checks a parsed statement's arithmetic: starting balance
// plus credits minus debits must land on the ending balance. It is a pure
// validator and never mutates the statement it inspects.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// DefaultTolerance absorbs cent-level rounding in printed balances.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Breakdown itemizes the figures that went into a reconciliation.
type Breakdown struct {
	StartingBalance decimal.Decimal `json:"starting_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	TotalCredits    decimal.Decimal `json:"total_credits"`
	TotalDebits     decimal.Decimal `json:"total_debits"`
	TransactionNet  decimal.Decimal `json:"transaction_net"`
}

// Result is one reconciliation verdict.
type Result struct {
	Passed     bool            `json:"passed"`
	Skipped    bool            `json:"skipped,omitempty"`
	SkipReason string          `json:"skip_reason,omitempty"`
	Expected   decimal.Decimal `json:"expected_ending_balance"`
	Difference decimal.Decimal `json:"difference"`
	Breakdown  Breakdown       `json:"breakdown"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// Validate checks starting + credits - debits against the ending balance.
// Credits and debits are magnitudes; the difference is |expected - ending|
// and passes when it is within tolerance.
func Validate(starting, ending, credits, debits, tolerance decimal.Decimal) Result {
	expected := starting.Add(credits).Sub(debits)
	diff := expected.Sub(ending).Abs()
	return Result{
		Passed:     diff.LessThanOrEqual(tolerance),
		Expected:   expected,
		Difference: diff,
		Breakdown: Breakdown{
			StartingBalance: starting,
			EndingBalance:   ending,
			TotalCredits:    credits,
			TotalDebits:     debits,
		},
	}
}

// ValidateStatement reconciles a statement using the sum of its own parsed
// transactions. Statements missing a printed starting or ending balance are
// skipped rather than failed since the arithmetic cannot be checked.
func ValidateStatement(st *statement.Statement, tolerance decimal.Decimal) Result {
	if !st.Balance.HasStarting || !st.Balance.HasEnding {
		return Result{
			Skipped:    true,
			SkipReason: "statement is missing a printed starting or ending balance",
		}
	}

	var credits, debits decimal.Decimal
	for _, txn := range st.Transactions {
		if txn.Direction == statement.Credit {
			credits = credits.Add(txn.Amount)
		} else {
			debits = debits.Add(txn.Amount.Abs())
		}
	}

	res := Validate(st.Balance.Starting, st.Balance.Ending, credits, debits, tolerance)
	res.Breakdown.TransactionNet = credits.Sub(debits)
	res.Warnings = crossCheck(st, credits, debits)
	return res
}

// crossCheck compares the summed transactions against the statement's own
// printed section totals, when present. A mismatch does not fail
// reconciliation on its own but flags which side to distrust.
func crossCheck(st *statement.Statement, credits, debits decimal.Decimal) []string {
	var warnings []string
	if !st.Balance.TotalCredits.IsZero() && !st.Balance.TotalCredits.Equal(credits) {
		warnings = append(warnings,
			"parsed credits "+credits.StringFixed(2)+
				" disagree with printed total credits "+st.Balance.TotalCredits.StringFixed(2))
	}
	if !st.Balance.TotalDebits.IsZero() && !st.Balance.TotalDebits.Equal(debits) {
		warnings = append(warnings,
			"parsed debits "+debits.StringFixed(2)+
				" disagree with printed total debits "+st.Balance.TotalDebits.StringFixed(2))
	}
	return warnings
}
