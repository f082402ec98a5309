package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/bank-statement-parser/internal/categorize"
	"github.com/FACorreiaa/bank-statement-parser/internal/identity"
	"github.com/FACorreiaa/bank-statement-parser/internal/layout"
	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// fakeExtractor serves pre-built documents keyed by path.
type fakeExtractor struct {
	docs map[string]*statement.Document
}

func (f *fakeExtractor) Extract(path string) (*statement.Document, error) {
	doc, ok := f.docs[path]
	if !ok {
		return &statement.Document{PageCount: 1, Pages: []statement.Page{{Number: 1}}}, nil
	}
	return doc, nil
}

// docFromLines builds a one-page document with one fragment per line, spaced
// so layout reconstruction returns the lines verbatim.
func docFromLines(lines ...string) *statement.Document {
	page := statement.Page{Number: 1}
	for i, text := range lines {
		page.Fragments = append(page.Fragments, statement.Fragment{
			Text: text, X: 10, Y: 700 - float64(i)*15, Width: 400, Page: 1,
		})
	}
	return &statement.Document{PageCount: 1, Pages: []statement.Page{page}}
}

func checkingLines() []string {
	return []string{
		"Bank of America",
		"Your checking account",
		"Account number: 4479 8001 1234",
		"March 1, 2025 to March 31, 2025",
		"Beginning balance on March 1, 2025 $1,000.00",
		"Ending balance on March 31, 2025 $2,282.55",
		"Deposits and other additions",
		"03/20/25 Online Banking transfer from CHK 3529 1,300.00",
		"Total deposits and other additions 1,300.00",
		"ATM and debit card subtractions",
		"03/23/25 CHECKCARD 0322 STARBUCKS STORE 00123 SEATTLE WA 12.50",
		"Service fees",
		"03/31/25 Monthly maintenance fee 4.95",
		"Total service fees 4.95",
	}
}

func newTestPipeline(docs map[string]*statement.Document, opts Options) *Pipeline {
	if opts.Layout == (layout.Options{}) {
		opts.Layout = layout.DefaultOptions()
	}
	return New(&fakeExtractor{docs: docs}, categorize.NewEngine(), opts, nil)
}

func TestPipeline_Run(t *testing.T) {
	p := newTestPipeline(map[string]*statement.Document{
		"march.pdf": docFromLines(checkingLines()...),
	}, Options{Reconcile: true, Version: "test"})

	result := p.Run([]string{"march.pdf"})

	require.Empty(t, result.Payload.Errors)
	require.Len(t, result.Payload.Merge.Statements, 1)

	st := result.Payload.Merge.Statements[0]
	assert.Equal(t, "boa_checking_1234_2025-03-01_2025-03-31", st.ID)
	require.Len(t, st.Transactions, 3)

	transfer := st.Transactions[0]
	assert.Equal(t, "2025-03-20", transfer.Date)
	assert.Equal(t, statement.Credit, transfer.Direction)
	assert.True(t, transfer.Amount.Equal(decimal.RequireFromString("1300")), "got %s", transfer.Amount)
	assert.Equal(t, statement.ChannelOnlineBankingTransfer, transfer.Channel)
	assert.True(t, identity.IsValidTransactionID(transfer.ID))
	assert.NotEmpty(t, transfer.Categorization.Category)

	card := st.Transactions[1]
	assert.Equal(t, statement.Debit, card.Direction)
	assert.Equal(t, "Dining", card.Categorization.Category)

	verdict, ok := result.Payload.Reconciliation[st.ID]
	require.True(t, ok)
	assert.True(t, verdict.Passed, "1000 + 1300 - 12.50 - 4.95 = 2282.55")

	assert.Equal(t, 1, result.Payload.Summary.FilesProcessed)
	assert.Equal(t, 3, result.Payload.Summary.Transactions)
	assert.False(t, result.Failed(false))
}

func TestPipeline_RunIdempotent(t *testing.T) {
	docs := map[string]*statement.Document{
		"march.pdf": docFromLines(checkingLines()...),
	}

	first := newTestPipeline(docs, Options{}).Run([]string{"march.pdf"})
	second := newTestPipeline(docs, Options{}).Run([]string{"march.pdf"})

	require.Len(t, first.Payload.Merge.Statements, 1)
	require.Len(t, second.Payload.Merge.Statements, 1)

	a := first.Payload.Merge.Statements[0]
	b := second.Payload.Merge.Statements[0]
	assert.Equal(t, a.ID, b.ID)
	require.Equal(t, len(a.Transactions), len(b.Transactions))
	for i := range a.Transactions {
		assert.Equal(t, a.Transactions[i].ID, b.Transactions[i].ID)
	}
}

func TestPipeline_UnreadablePDFRecordedNotFatal(t *testing.T) {
	p := newTestPipeline(map[string]*statement.Document{
		"march.pdf": docFromLines(checkingLines()...),
		// empty.pdf falls through to the extractor's fragment-free default.
	}, Options{})

	result := p.Run([]string{"empty.pdf", "march.pdf"})

	require.Len(t, result.Payload.Errors, 1)
	assert.Equal(t, "empty.pdf", result.Payload.Errors[0].Filename)
	assert.Contains(t, result.Payload.Errors[0].Error, "no extractable text")
	// The good file still parsed and partial failure is tolerated.
	assert.Len(t, result.Payload.Merge.Statements, 1)
	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true), "strict escalates any file error")
}

func TestPipeline_AllFilesFailedFailsRun(t *testing.T) {
	p := newTestPipeline(nil, Options{})

	result := p.Run([]string{"empty.pdf", "another.pdf"})

	require.Len(t, result.Payload.Errors, 2)
	assert.True(t, result.Failed(false))
}

func TestPipeline_StrictEscalatesWarnings(t *testing.T) {
	lines := append(checkingLines(),
		"ATM and debit card subtractions",
		"¤¤ an unrecognizable line inside a table that is way too long to pass for a continuation of anything ¤¤",
	)
	docs := map[string]*statement.Document{"march.pdf": docFromLines(lines...)}

	result := newTestPipeline(docs, Options{}).Run([]string{"march.pdf"})

	assert.NotEmpty(t, result.StrictViolations)
	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true))
}

func TestPipeline_ViolationOrderIsDeterministic(t *testing.T) {
	march := checkingLines()
	march[5] = "Ending balance on March 31, 2025 $2,292.55" // off by 10.00

	april := []string{
		"Bank of America",
		"Your checking account",
		"Account number: 4479 8001 1234",
		"April 1, 2025 to April 30, 2025",
		"Beginning balance on April 1, 2025 $2,282.55",
		"Ending balance on April 30, 2025 $2,200.55", // off by 18.00
		"Other subtractions",
		"04/12/25 Online Banking transfer to SAV 8810 100.00",
		"Total other subtractions 100.00",
	}

	docs := map[string]*statement.Document{
		"march.pdf": docFromLines(march...),
		"april.pdf": docFromLines(april...),
	}

	result := newTestPipeline(docs, Options{Reconcile: true}).Run([]string{"april.pdf", "march.pdf"})

	require.Empty(t, result.Payload.Errors)
	require.Len(t, result.StrictViolations, 2)
	// Reconciliation violations come out in statement-ID order regardless of
	// map iteration.
	assert.Contains(t, result.StrictViolations[0], "2025-03-01_2025-03-31")
	assert.Contains(t, result.StrictViolations[0], "off by 10.00")
	assert.Contains(t, result.StrictViolations[1], "2025-04-01_2025-04-30")
	assert.Contains(t, result.StrictViolations[1], "off by 18.00")
}

func TestPipeline_CombinedPDFDeduplicatesAgainstStandalone(t *testing.T) {
	var combined []string
	combined = append(combined, "Page 1 of 2")
	combined = append(combined, checkingLines()...)
	combined = append(combined, "Page 1 of 2")
	combined = append(combined,
		"Bank of America",
		"Your checking account",
		"Account number: 4479 8001 1234",
		"April 1, 2025 to April 30, 2025",
		"Beginning balance on April 1, 2025 $2,282.55",
		"Ending balance on April 30, 2025 $2,182.55",
		"Other subtractions",
		"04/12/25 Online Banking transfer to SAV 8810 100.00",
		"Total other subtractions 100.00",
	)

	docs := map[string]*statement.Document{
		"bundle.pdf": docFromLines(combined...),
		"march.pdf":  docFromLines(checkingLines()...),
	}

	result := newTestPipeline(docs, Options{}).Run([]string{"bundle.pdf", "march.pdf"})

	require.Empty(t, result.Payload.Errors)
	require.Len(t, result.Payload.Merge.Statements, 2)
	assert.Equal(t, 1, result.Payload.Merge.DuplicateStatementsRemoved)

	// The standalone extraction wins over the slice of the bundle.
	marchStmt := result.Payload.Merge.Statements[0]
	assert.Equal(t, "boa_checking_1234_2025-03-01_2025-03-31", marchStmt.ID)
	assert.Equal(t, "march.pdf", marchStmt.SourceFile)
	assert.False(t, marchStmt.FromCombinedPDF)

	aprilStmt := result.Payload.Merge.Statements[1]
	assert.Equal(t, "bundle.pdf", aprilStmt.SourceFile)
	assert.True(t, aprilStmt.FromCombinedPDF)
}

func TestSplitStatements(t *testing.T) {
	t.Run("no markers is one segment", func(t *testing.T) {
		lines := []statement.RawLine{{Text: "a"}, {Text: "b"}}
		assert.Len(t, splitStatements(lines), 1)
	})

	t.Run("single marker is one segment", func(t *testing.T) {
		lines := []statement.RawLine{{Text: "Page 1 of 4"}, {Text: "body"}}
		assert.Len(t, splitStatements(lines), 1)
	})

	t.Run("two markers split with preamble attached to first", func(t *testing.T) {
		lines := []statement.RawLine{
			{Text: "bundle cover sheet"},
			{Text: "Page 1 of 2"},
			{Text: "march body"},
			{Text: "Page 1 of 2"},
			{Text: "april body"},
		}
		segs := splitStatements(lines)
		require.Len(t, segs, 2)
		assert.Len(t, segs[0], 3)
		assert.Equal(t, "bundle cover sheet", segs[0][0].Text)
		assert.Equal(t, "Page 1 of 2", segs[1][0].Text)
	})
}
