package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/bank-statement-parser/internal/export"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNew_EnabledOnlyWhenConfigured(t *testing.T) {
	assert.False(t, New("", "a@example.com", []string{"b@example.com"}, discard()).Enabled())
	assert.False(t, New("re_key", "a@example.com", nil, discard()).Enabled())
	assert.True(t, New("re_key", "a@example.com", []string{"b@example.com"}, discard()).Enabled())
}

func TestNotifyRun_NoopWhenDisabled(t *testing.T) {
	n := New("", "a@example.com", nil, discard())
	assert.NoError(t, n.NotifyRun(&export.Payload{}))
}

func TestBuildRunEmail(t *testing.T) {
	p := &export.Payload{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		Version:     "test",
		Errors: []export.FileError{
			{Filename: "bad.pdf", Error: "no extractable text <locked?>"},
		},
		Summary: export.Summary{
			FilesProcessed:       2,
			FilesFailed:          1,
			Statements:           2,
			Transactions:         10,
			TotalCreditsDisplay:  "$1,300.00",
			TotalDebitsDisplay:   "$17.45",
			ReconciliationPassed: 2,
		},
	}

	subject, body := buildRunEmail(p)

	assert.Equal(t, "bankparse run: 2 statements, 10 transactions, 1 failed", subject)
	assert.Contains(t, body, "run-1")
	assert.Contains(t, body, "$1,300.00")
	assert.Contains(t, body, "bad.pdf")
	// Error text is escaped before it lands in HTML.
	assert.Contains(t, body, "&lt;locked?&gt;")
	assert.NotContains(t, body, "<locked?>")
}

func TestBuildRunEmail_NoFailuresSection(t *testing.T) {
	_, body := buildRunEmail(&export.Payload{
		GeneratedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		Summary:     export.Summary{FilesProcessed: 1, Statements: 1},
	})
	assert.NotContains(t, body, "Failed files")
}
