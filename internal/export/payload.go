package export

import (
	"time"

	"github.com/FACorreiaa/bank-statement-parser/internal/reconcile"
	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// Payload is the top-level document every exporter renders: the deduplicated
// statements plus run metadata, per-statement reconciliation verdicts, and
// per-file failures.
type Payload struct {
	RunID          string                      `json:"run_id"`
	GeneratedAt    time.Time                   `json:"generated_at"`
	Version        string                      `json:"version"`
	Merge          *statement.MergeResult      `json:"result"`
	Reconciliation map[string]reconcile.Result `json:"reconciliation,omitempty"`
	Errors         []FileError                 `json:"errors,omitempty"`
	Summary        Summary                     `json:"summary"`
}

// FileError records one source file that could not be processed.
type FileError struct {
	Filename  string    `json:"filename"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Summary is the human-oriented batch rollup.
type Summary struct {
	FilesProcessed       int    `json:"files_processed"`
	FilesFailed          int    `json:"files_failed"`
	Statements           int    `json:"statements"`
	Transactions         int    `json:"transactions"`
	TotalCreditsDisplay  string `json:"total_credits"`
	TotalDebitsDisplay   string `json:"total_debits"`
	ReconciliationPassed int    `json:"reconciliation_passed"`
	ReconciliationFailed int    `json:"reconciliation_failed"`
}
