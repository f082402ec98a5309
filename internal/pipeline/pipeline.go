// Package pipeline orchestrates the full run: extract each PDF, reconstruct
// lines, detect the dialect, parse, normalize, categorize, assign identities,
// then merge everything and reconcile. Files are processed sequentially; one
// bad file is recorded and never aborts the batch.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank-statement-parser/internal/categorize"
	"github.com/FACorreiaa/bank-statement-parser/internal/export"
	"github.com/FACorreiaa/bank-statement-parser/internal/extract"
	"github.com/FACorreiaa/bank-statement-parser/internal/identity"
	"github.com/FACorreiaa/bank-statement-parser/internal/layout"
	"github.com/FACorreiaa/bank-statement-parser/internal/merge"
	"github.com/FACorreiaa/bank-statement-parser/internal/normalizer"
	"github.com/FACorreiaa/bank-statement-parser/internal/parser"
	"github.com/FACorreiaa/bank-statement-parser/internal/reconcile"
	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

// Options configure one pipeline run.
type Options struct {
	Layout    layout.Options
	Tolerance decimal.Decimal
	// Strict escalates per-file warnings and reconciliation failures into
	// run failure instead of just reporting them.
	Strict    bool
	Reconcile bool
	Version   string
}

// Pipeline processes batches of statement PDFs into one merged result.
type Pipeline struct {
	extractor extract.Extractor
	engine    *categorize.Engine
	opts      Options
	log       *slog.Logger
}

// New builds a pipeline. A nil logger disables logging.
func New(extractor extract.Extractor, engine *categorize.Engine, opts Options, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Tolerance.IsZero() {
		opts.Tolerance = reconcile.DefaultTolerance
	}
	return &Pipeline{extractor: extractor, engine: engine, opts: opts, log: log}
}

// BatchResult is the outcome of one run over a set of files.
type BatchResult struct {
	RunID   string
	Payload *export.Payload
	// StrictViolations lists what would have been tolerated outside
	// strict mode.
	StrictViolations []string
}

// Failed reports whether the run should exit nonzero. Partial failure is
// tolerated: the run fails only when every file failed, or in strict mode
// when any file failed or any violation was recorded.
func (r *BatchResult) Failed(strict bool) bool {
	s := r.Payload.Summary
	if s.FilesFailed > 0 && s.FilesProcessed == 0 {
		return true
	}
	return strict && (s.FilesFailed > 0 || len(r.StrictViolations) > 0)
}

// Run processes every file in order and merges the survivors.
func (p *Pipeline) Run(paths []string) *BatchResult {
	runID := uuid.New().String()
	log := p.log.With("run_id", runID)
	log.Info("starting run", "files", len(paths))

	var batches []merge.Batch
	var fileErrors []export.FileError

	for _, path := range paths {
		batch, err := p.ProcessFile(path)
		if err != nil {
			log.Error("file failed", "file", path, "error", err)
			fileErrors = append(fileErrors, export.FileError{
				Filename:  path,
				Error:     err.Error(),
				Timestamp: time.Now().UTC(),
			})
			continue
		}
		log.Info("file parsed", "file", path,
			"statements", len(batch.Statements), "combined", batch.IsCombinedPDF)
		batches = append(batches, batch)
	}

	merged := merge.Merge(batches)
	log.Info("merged", "statements", len(merged.Statements),
		"transactions", merged.TotalTransactions,
		"duplicate_statements", merged.DuplicateStatementsRemoved,
		"duplicate_transactions", merged.DuplicateTransactionsRemoved)

	result := &BatchResult{
		RunID: runID,
		Payload: &export.Payload{
			RunID:       runID,
			GeneratedAt: time.Now().UTC(),
			Version:     p.opts.Version,
			Merge:       merged,
			Errors:      fileErrors,
		},
	}

	if p.opts.Reconcile {
		p.reconcileAll(result, log)
	}
	p.collectViolations(result)
	p.summarize(result, len(paths))
	return result
}

// ProcessFile runs one source file through extract, layout, and parse. A
// combined PDF yields one batch holding every statement found inside it.
func (p *Pipeline) ProcessFile(path string) (merge.Batch, error) {
	batch := merge.Batch{SourceFile: path}

	doc, err := p.extractor.Extract(path)
	if err != nil {
		return batch, err
	}
	if extract.IsEmpty(doc) {
		return batch, fmt.Errorf("%s: %w", path, ErrPDFUnreadable)
	}

	lines := p.reconstruct(doc)
	segments := splitStatements(lines)
	batch.IsCombinedPDF = len(segments) > 1

	for _, segment := range segments {
		st, err := p.parseStatement(segment)
		if err != nil {
			// One unparseable segment fails the file; partial output
			// from a combined PDF would silently lose statements.
			return batch, err
		}
		batch.Statements = append(batch.Statements, st)
	}
	return batch, nil
}

// reconstruct flattens all pages into ordered lines.
func (p *Pipeline) reconstruct(doc *statement.Document) []statement.RawLine {
	var lines []statement.RawLine
	for _, page := range doc.Pages {
		for _, text := range layout.Lines(page.Fragments, p.opts.Layout) {
			lines = append(lines, statement.RawLine{
				Text:  text,
				Page:  page.Number,
				Index: len(lines),
			})
		}
	}
	return lines
}

// parseStatement runs one statement's lines through the dialect parser and
// the per-transaction stages.
func (p *Pipeline) parseStatement(lines []statement.RawLine) (*statement.Statement, error) {
	fullText := parser.FullText(lines)
	dialect, err := parser.DetectDialect(fullText)
	if err != nil {
		return nil, err
	}
	dp, err := parser.New(dialect)
	if err != nil {
		return nil, err
	}
	res, err := dp.Parse(lines)
	if err != nil {
		return nil, err
	}

	institution := parser.DetectInstitution(fullText)
	st := &statement.Statement{
		ID:       identity.ComputeStatementID(institution, res.Account),
		Account:  res.Account,
		Balance:  res.Balance,
		Warnings: res.Warnings,
	}
	st.Account.Institution = institution

	ctx := normalizer.Context{
		StatementID:       st.ID,
		StatementYear:     res.Account.PeriodEnd.Year(),
		StatementEndMonth: res.Account.PeriodEnd.Month(),
		IsCreditCard:      res.Account.Type == statement.AccountCredit,
	}
	for _, raw := range res.Transactions {
		txn, err := normalizer.Normalize(raw, ctx)
		if err != nil {
			st.Warnings = append(st.Warnings,
				fmt.Sprintf("dropped line %d: %v", raw.LineIndex, err))
			continue
		}
		txn.Categorization = p.engine.Categorize(txn.Description, txn.Channel)
		txn.ID = identity.ComputeTransactionID(st.ID, txn)
		st.Transactions = append(st.Transactions, txn)
	}
	if len(st.Transactions) == 0 {
		return nil, ErrNoTransactions
	}
	return st, nil
}

func (p *Pipeline) reconcileAll(result *BatchResult, log *slog.Logger) {
	verdicts := make(map[string]reconcile.Result, len(result.Payload.Merge.Statements))
	for _, st := range result.Payload.Merge.Statements {
		v := reconcile.ValidateStatement(st, p.opts.Tolerance)
		verdicts[st.ID] = v
		switch {
		case v.Skipped:
			log.Warn("reconciliation skipped", "statement", st.ID, "reason", v.SkipReason)
		case !v.Passed:
			log.Warn("reconciliation failed", "statement", st.ID,
				"expected", v.Expected, "difference", v.Difference)
		default:
			log.Debug("reconciliation passed", "statement", st.ID)
		}
	}
	result.Payload.Reconciliation = verdicts
}

func (p *Pipeline) collectViolations(result *BatchResult) {
	for _, st := range result.Payload.Merge.Statements {
		for _, w := range st.Warnings {
			result.StrictViolations = append(result.StrictViolations,
				fmt.Sprintf("%s: %s", st.ID, w))
		}
		if !identity.IsValidStatementID(st.ID) {
			result.StrictViolations = append(result.StrictViolations,
				fmt.Sprintf("malformed statement id %q", st.ID))
		}
		for _, txn := range st.Transactions {
			if !identity.IsValidTransactionID(txn.ID) {
				result.StrictViolations = append(result.StrictViolations,
					fmt.Sprintf("%s: malformed transaction id %q", st.ID, txn.ID))
			}
		}
	}
	// Map order would make violation reporting vary run to run.
	ids := make([]string, 0, len(result.Payload.Reconciliation))
	for id := range result.Payload.Reconciliation {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if v := result.Payload.Reconciliation[id]; !v.Skipped && !v.Passed {
			result.StrictViolations = append(result.StrictViolations,
				fmt.Sprintf("%s: reconciliation off by %s", id, v.Difference.StringFixed(2)))
		}
	}
}

func (p *Pipeline) summarize(result *BatchResult, totalFiles int) {
	var credits, debits decimal.Decimal
	for _, st := range result.Payload.Merge.Statements {
		for _, txn := range st.Transactions {
			if txn.Direction == statement.Credit {
				credits = credits.Add(txn.Amount)
			} else {
				debits = debits.Add(txn.Amount.Abs())
			}
		}
	}

	s := export.Summary{
		FilesProcessed:      totalFiles - len(result.Payload.Errors),
		FilesFailed:         len(result.Payload.Errors),
		Statements:          len(result.Payload.Merge.Statements),
		Transactions:        result.Payload.Merge.TotalTransactions,
		TotalCreditsDisplay: money.Format(credits),
		TotalDebitsDisplay:  money.Format(debits),
	}
	for _, v := range result.Payload.Reconciliation {
		if v.Skipped {
			continue
		}
		if v.Passed {
			s.ReconciliationPassed++
		} else {
			s.ReconciliationFailed++
		}
	}
	result.Payload.Summary = s
}
