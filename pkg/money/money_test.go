package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "45.17", "45.17"},
		{"thousands separator", "1,300.00", "1300"},
		{"dollar symbol", "$2,500.10", "2500.1"},
		{"leading minus", "-45.17", "-45.17"},
		{"trailing minus", "123.45-", "-123.45"},
		{"accounting parens", "($250.00)", "-250"},
		{"euro symbol", "€99.99", "99.99"},
		{"whitespace", "  12.00  ", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12.34.56", "$"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmount(input)
			assert.Error(t, err)
		})
	}
}

func TestLooksLikeAmount(t *testing.T) {
	assert.True(t, LooksLikeAmount("1,234.56"))
	assert.True(t, LooksLikeAmount("-10.00"))
	assert.False(t, LooksLikeAmount("CHECKCARD"))
	assert.False(t, LooksLikeAmount("03/20/25"))
}

func TestFormat(t *testing.T) {
	d := decimal.RequireFromString("1234.56")
	assert.Equal(t, "$1,234.56", Format(d))
	assert.Equal(t, "-$1,234.56", Format(d.Neg()))
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "1300.00", FormatFixed(decimal.RequireFromString("1300")))
	assert.Equal(t, "-45.17", FormatFixed(decimal.RequireFromString("-45.17")))
}
