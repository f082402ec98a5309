// Package notify emails per-run reports through Resend. Watch mode uses it
// so unattended runs still surface failures somewhere a human reads.
package notify

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/FACorreiaa/bank-statement-parser/internal/export"
)

// Notifier sends run report emails. Without an API key and recipients it is
// a no-op, so watch mode works unconfigured.
type Notifier struct {
	client *resend.Client
	logger *slog.Logger
	from   string
	to     []string
}

// New builds a notifier. An empty API key or recipient list disables sending.
func New(apiKey, from string, to []string, logger *slog.Logger) *Notifier {
	var client *resend.Client
	if apiKey != "" && len(to) > 0 {
		client = resend.NewClient(apiKey)
	}
	return &Notifier{
		client: client,
		logger: logger,
		from:   from,
		to:     to,
	}
}

// Enabled reports whether a report will actually be sent.
func (n *Notifier) Enabled() bool { return n.client != nil }

// NotifyRun emails the summary of one completed run.
func (n *Notifier) NotifyRun(p *export.Payload) error {
	if n.client == nil {
		n.logger.Warn("resend client not configured, skipping run report email")
		return nil
	}

	subject, body := buildRunEmail(p)
	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("sending run report: %w", err)
	}

	n.logger.Info("run report sent",
		slog.String("run_id", p.RunID),
		slog.Int("recipients", len(n.to)),
	)
	return nil
}

// buildRunEmail renders the subject and HTML body for one run report.
func buildRunEmail(p *export.Payload) (string, string) {
	s := p.Summary
	subject := fmt.Sprintf("bankparse run: %d statements, %d transactions, %d failed",
		s.Statements, s.Transactions, s.FilesFailed)

	var failures strings.Builder
	if len(p.Errors) > 0 {
		failures.WriteString("<h3>Failed files</h3>\n<ul>\n")
		for _, fe := range p.Errors {
			fmt.Fprintf(&failures, "  <li><b>%s</b>: %s</li>\n",
				html.EscapeString(fe.Filename), html.EscapeString(fe.Error))
		}
		failures.WriteString("</ul>\n")
	}

	body := fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>bankparse run %s</h2>
  <p>Generated %s (version %s)</p>
  <table cellpadding="4">
    <tr><td>Files processed</td><td>%d</td></tr>
    <tr><td>Files failed</td><td>%d</td></tr>
    <tr><td>Statements</td><td>%d</td></tr>
    <tr><td>Transactions</td><td>%d</td></tr>
    <tr><td>Total credits</td><td>%s</td></tr>
    <tr><td>Total debits</td><td>%s</td></tr>
    <tr><td>Reconciliation passed</td><td>%d</td></tr>
    <tr><td>Reconciliation failed</td><td>%d</td></tr>
  </table>
%s</body>
</html>
`, p.RunID, p.GeneratedAt.Format("2006-01-02 15:04:05 MST"), p.Version,
		s.FilesProcessed, s.FilesFailed, s.Statements, s.Transactions,
		s.TotalCreditsDisplay, s.TotalDebitsDisplay,
		s.ReconciliationPassed, s.ReconciliationFailed,
		failures.String())

	return subject, body
}
