// Package identity derives stable, content-addressed identifiers for
// statements and transactions. The same logical input always hashes to the
// same ID, so re-parsing a file or parsing it from a combined PDF converges
// on identical identifiers.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
	"github.com/FACorreiaa/bank-statement-parser/pkg/money"
)

const fieldSep = "|"

var (
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
	transactionIDRe = regexp.MustCompile(`^tx_[0-9a-f]{24}$`)
	statementIDRe   = regexp.MustCompile(`^[a-z0-9]+_[a-z]+_[a-z0-9]+_\d{4}-\d{2}-\d{2}_\d{4}-\d{2}-\d{2}$`)
)

// ComputeStatementID builds the human-readable statement identifier:
// institution, account type, account-number suffix, and the period bounds,
// e.g. "boa_checking_1234_2025-03-01_2025-03-31".
func ComputeStatementID(institution string, acct statement.AccountInfo) string {
	parts := []string{
		slug(institution),
		slug(string(acct.Type)),
		slug(acct.NumberMasked),
		acct.PeriodStart.Format("2006-01-02"),
		acct.PeriodEnd.Format("2006-01-02"),
	}
	return strings.Join(parts, "_")
}

// ComputeTransactionID hashes the canonical transaction fields into a
// "tx_"-prefixed identifier. Text fields are uppercased and
// whitespace-collapsed first, and the amount is rendered at fixed two-decimal
// precision, so case, spacing, and formatting noise never split identities.
// The bank reference stays out of the hash: the canonical description already
// has trace numbers stripped, and the ID must not change between renderings
// of the same transaction with and without a trace suffix.
func ComputeTransactionID(statementID string, txn statement.Transaction) string {
	fields := []string{
		statementID,
		txn.Date,
		money.FormatFixed(txn.Amount),
		canonText(txn.Description),
		canonText(txn.Merchant),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, fieldSep)))
	return "tx_" + hex.EncodeToString(sum[:])[:24]
}

// IsValidTransactionID reports whether s is a well-formed transaction ID.
func IsValidTransactionID(s string) bool {
	return transactionIDRe.MatchString(s)
}

// IsValidStatementID reports whether s is a well-formed statement ID.
func IsValidStatementID(s string) bool {
	return statementIDRe.MatchString(s)
}

// slug lowercases and strips everything outside [a-z0-9], so the masked
// account number "****1234" contributes just "1234".
func slug(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

func canonText(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
