package export

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

// transactionRow is the flattened per-transaction CSV record.
type transactionRow struct {
	StatementID   string `csv:"statement_id"`
	TransactionID string `csv:"transaction_id"`
	Date          string `csv:"date"`
	PostedDate    string `csv:"posted_date"`
	Amount        string `csv:"amount"`
	Direction     string `csv:"direction"`
	Description   string `csv:"description"`
	Merchant      string `csv:"merchant"`
	Channel       string `csv:"channel"`
	BankReference string `csv:"bank_reference"`
	Category      string `csv:"category"`
	Subcategory   string `csv:"subcategory"`
	Confidence    string `csv:"confidence"`
	Page          int    `csv:"page"`
	SourceFile    string `csv:"source_file"`
}

// CSVExporter writes one row per transaction across all statements. Run
// metadata and reconciliation live only in the JSON output.
type CSVExporter struct{}

func (e *CSVExporter) Export(w io.Writer, p *Payload) error {
	rows := make([]transactionRow, 0, p.Merge.TotalTransactions)
	for _, st := range p.Merge.Statements {
		for _, txn := range st.Transactions {
			rows = append(rows, flattenTransaction(st, txn))
		}
	}
	return gocsv.Marshal(&rows, w)
}

func flattenTransaction(st *statement.Statement, txn statement.Transaction) transactionRow {
	return transactionRow{
		StatementID:   st.ID,
		TransactionID: txn.ID,
		Date:          txn.Date,
		PostedDate:    txn.PostedDate,
		Amount:        money.FormatFixed(txn.Amount),
		Direction:     string(txn.Direction),
		Description:   txn.Description,
		Merchant:      txn.Merchant,
		Channel:       string(txn.Channel),
		BankReference: txn.BankReference,
		Category:      txn.Categorization.Category,
		Subcategory:   txn.Categorization.Subcategory,
		Confidence:    strconv.FormatFloat(txn.Categorization.Confidence, 'f', 2, 64),
		Page:          txn.Page,
		SourceFile:    st.SourceFile,
	}
}
