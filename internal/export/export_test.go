package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

func samplePayload() *Payload {
	txn := statement.Transaction{
		ID:          "tx_0123456789abcdef01234567",
		Date:        "2025-03-20",
		Amount:      decimal.RequireFromString("1300"),
		Direction:   statement.Credit,
		Description: "Online Banking transfer from CHK 3529",
		Channel:     statement.ChannelOnlineBankingTransfer,
		Categorization: statement.Categorization{
			Category:   "Transfers",
			Confidence: 0.6,
		},
		Page: 2,
	}
	st := &statement.Statement{
		ID: "boa_checking_1234_2025-03-01_2025-03-31",
		Account: statement.AccountInfo{
			Institution:  "boa",
			Type:         statement.AccountChecking,
			NumberMasked: "****1234",
			PeriodStart:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Transactions: []statement.Transaction{txn},
		SourceFile:   "march.pdf",
	}
	return &Payload{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		Version:     "test",
		Merge: &statement.MergeResult{
			Statements:        []*statement.Statement{st},
			TotalTransactions: 1,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "CSV", " xlsx "} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONExporter{}).Export(&buf, samplePayload()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])

	// The signed amount and the statement nest survive the round trip.
	assert.Contains(t, buf.String(), `"transaction_id": "tx_0123456789abcdef01234567"`)
	assert.Contains(t, buf.String(), `"boa_checking_1234_2025-03-01_2025-03-31"`)
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, samplePayload()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "statement_id")
	assert.Contains(t, lines[0], "amount")
	assert.Contains(t, lines[1], "1300.00")
	assert.Contains(t, lines[1], "credit")
	assert.Contains(t, lines[1], "march.pdf")
}

func TestExcelExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ExcelExporter{}).Export(&buf, samplePayload()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Statements")
	assert.Contains(t, sheets, "Transactions")
	assert.NotContains(t, sheets, "Sheet1")

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "statement_id", rows[0][0])
	assert.Equal(t, "tx_0123456789abcdef01234567", rows[1][1])
}
