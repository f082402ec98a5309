package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidate(t *testing.T) {
	t.Run("balances line up", func(t *testing.T) {
		res := Validate(dec("1000"), dec("1200"), dec("500"), dec("300"), DefaultTolerance)
		assert.True(t, res.Passed)
		assert.True(t, res.Expected.Equal(dec("1200")))
		assert.True(t, res.Difference.IsZero())
	})

	t.Run("balances off by fifty", func(t *testing.T) {
		res := Validate(dec("1000"), dec("1250"), dec("500"), dec("300"), DefaultTolerance)
		assert.False(t, res.Passed)
		assert.True(t, res.Expected.Equal(dec("1200")))
		assert.True(t, res.Difference.Equal(dec("50")))
	})

	t.Run("within tolerance passes", func(t *testing.T) {
		res := Validate(dec("1000"), dec("1200.01"), dec("500"), dec("300"), DefaultTolerance)
		assert.True(t, res.Passed)
	})

	t.Run("just past tolerance fails", func(t *testing.T) {
		res := Validate(dec("1000"), dec("1200.02"), dec("500"), dec("300"), DefaultTolerance)
		assert.False(t, res.Passed)
	})
}

func reconciledStatement() *statement.Statement {
	return &statement.Statement{
		ID: "s1",
		Balance: statement.BalanceInfo{
			Starting:    dec("1000"),
			Ending:      dec("1200"),
			HasStarting: true,
			HasEnding:   true,
		},
		Transactions: []statement.Transaction{
			{Amount: dec("500"), Direction: statement.Credit},
			{Amount: dec("-300"), Direction: statement.Debit},
		},
	}
}

func TestValidateStatement(t *testing.T) {
	st := reconciledStatement()
	res := ValidateStatement(st, DefaultTolerance)

	assert.True(t, res.Passed)
	assert.False(t, res.Skipped)
	assert.True(t, res.Breakdown.TransactionNet.Equal(dec("200")))
	assert.Empty(t, res.Warnings)
}

func TestValidateStatement_DoesNotMutate(t *testing.T) {
	st := reconciledStatement()
	before := len(st.Transactions)
	startBefore := st.Balance.Starting

	_ = ValidateStatement(st, DefaultTolerance)

	assert.Equal(t, before, len(st.Transactions))
	assert.True(t, st.Balance.Starting.Equal(startBefore))
}

func TestValidateStatement_MissingBalancesSkips(t *testing.T) {
	st := reconciledStatement()
	st.Balance.HasStarting = false

	res := ValidateStatement(st, DefaultTolerance)
	assert.True(t, res.Skipped)
	assert.False(t, res.Passed)
	assert.NotEmpty(t, res.SkipReason)
}

func TestValidateStatement_CrossCheckWarnings(t *testing.T) {
	st := reconciledStatement()
	// The statement prints totals that disagree with the parsed rows.
	st.Balance.TotalCredits = dec("600")
	st.Balance.TotalDebits = dec("300")

	res := ValidateStatement(st, DefaultTolerance)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "printed total credits")
}
