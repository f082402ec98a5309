// Package merge combines statements parsed from many source files into one
// deduplicated result. The same statement often appears twice, once as a
// standalone PDF and once inside a combined year-end PDF; identity-based
// deduplication collapses them deterministically.
package merge

import (
	"sort"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// Batch is everything parsed out of one source file.
type Batch struct {
	SourceFile    string
	IsCombinedPDF bool
	Statements    []*statement.Statement
}

// Merge folds all batches into a single result. Statements sharing an ID are
// collapsed to one survivor; transactions sharing an ID within a statement
// are collapsed likewise. The output ordering and every tie-break are
// deterministic, so merging the same batches in any order gives the same
// result, and merging a result with itself changes nothing.
func Merge(batches []Batch) *statement.MergeResult {
	byID := make(map[string]*statement.Statement)
	var order []string
	dupStatements := 0

	for _, b := range batches {
		for _, st := range b.Statements {
			st.SourceFile = b.SourceFile
			st.FromCombinedPDF = b.IsCombinedPDF

			existing, ok := byID[st.ID]
			if !ok {
				byID[st.ID] = st
				order = append(order, st.ID)
				continue
			}
			dupStatements++
			if prefer(st, existing) {
				byID[st.ID] = st
			}
		}
	}

	dupTxns := 0
	result := &statement.MergeResult{DuplicateStatementsRemoved: dupStatements}
	for _, id := range order {
		st := byID[id]
		dupTxns += dedupeTransactions(st)
		result.Statements = append(result.Statements, st)
		result.TotalTransactions += len(st.Transactions)
	}
	result.DuplicateTransactionsRemoved = dupTxns

	// Stable output order: period start, then statement ID.
	sort.SliceStable(result.Statements, func(i, j int) bool {
		a, b := result.Statements[i], result.Statements[j]
		if !a.Account.PeriodStart.Equal(b.Account.PeriodStart) {
			return a.Account.PeriodStart.Before(b.Account.PeriodStart)
		}
		return a.ID < b.ID
	})
	return result
}

// prefer reports whether candidate should replace current as the survivor
// for a duplicated statement ID. Standalone files beat combined PDFs because
// a dedicated statement extraction is cleaner than a slice of a year-end
// bundle; after that, more transactions wins, then the lexicographically
// smaller source filename.
func prefer(candidate, current *statement.Statement) bool {
	if candidate.FromCombinedPDF != current.FromCombinedPDF {
		return !candidate.FromCombinedPDF
	}
	if len(candidate.Transactions) != len(current.Transactions) {
		return len(candidate.Transactions) > len(current.Transactions)
	}
	return candidate.SourceFile < current.SourceFile
}

// dedupeTransactions removes repeated transaction IDs in place, keeping the
// first occurrence, and returns how many were dropped.
func dedupeTransactions(st *statement.Statement) int {
	seen := make(map[string]bool, len(st.Transactions))
	kept := st.Transactions[:0]
	dropped := 0
	for _, txn := range st.Transactions {
		if seen[txn.ID] {
			dropped++
			continue
		}
		seen[txn.ID] = true
		kept = append(kept, txn)
	}
	st.Transactions = kept
	return dropped
}
