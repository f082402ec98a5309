package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

// ExcelExporter writes a workbook with a Statements sheet and a
// Transactions sheet.
type ExcelExporter struct{}

const (
	statementsSheet   = "Statements"
	transactionsSheet = "Transactions"
)

var statementHeaders = []interface{}{
	"statement_id", "institution", "account_type", "account_number",
	"period_start", "period_end", "starting_balance", "ending_balance",
	"transactions", "source_file", "from_combined_pdf",
}

var transactionHeaders = []interface{}{
	"statement_id", "transaction_id", "date", "posted_date", "amount",
	"direction", "description", "merchant", "channel", "bank_reference",
	"category", "subcategory", "confidence", "page", "source_file",
}

func (e *ExcelExporter) Export(w io.Writer, p *Payload) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeStatementsSheet(f, p); err != nil {
		return err
	}
	if err := writeTransactionsSheet(f, p); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on Statements.
	idx, err := f.GetSheetIndex(statementsSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.Write(w)
}

func writeStatementsSheet(f *excelize.File, p *Payload) error {
	if _, err := f.NewSheet(statementsSheet); err != nil {
		return err
	}
	if err := setRow(f, statementsSheet, 1, statementHeaders); err != nil {
		return err
	}
	for i, st := range p.Merge.Statements {
		row := []interface{}{
			st.ID,
			st.Account.Institution,
			string(st.Account.Type),
			st.Account.NumberMasked,
			st.Account.PeriodStart.Format("2006-01-02"),
			st.Account.PeriodEnd.Format("2006-01-02"),
			money.FormatFixed(st.Balance.Starting),
			money.FormatFixed(st.Balance.Ending),
			len(st.Transactions),
			st.SourceFile,
			st.FromCombinedPDF,
		}
		if err := setRow(f, statementsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, p *Payload) error {
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}
	if err := setRow(f, transactionsSheet, 1, transactionHeaders); err != nil {
		return err
	}
	rowNum := 2
	for _, st := range p.Merge.Statements {
		for _, txn := range st.Transactions {
			r := flattenTransaction(st, txn)
			row := []interface{}{
				r.StatementID, r.TransactionID, r.Date, r.PostedDate,
				r.Amount, r.Direction, r.Description, r.Merchant,
				r.Channel, r.BankReference, r.Category, r.Subcategory,
				r.Confidence, r.Page, r.SourceFile,
			}
			if err := setRow(f, transactionsSheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
