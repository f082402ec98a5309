package normalizer

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

var (
	// traceRe matches the long card-network trace number printed after
	// CHECKCARD descriptions. Only that channel carries one; matching it on
	// other channels would misread account or phone digits as references.
	traceRe = regexp.MustCompile(`\b(\d{17,25})\b`)

	confirmationRe = regexp.MustCompile(`(?i)\bconf(?:irmation)?#?\s*:?\s*([0-9a-z]{6,14})\b`)
	atmSeqRe       = regexp.MustCompile(`#\s*(\d{6,12})\b`)
	checkNumRe     = regexp.MustCompile(`(?i)\bcheck\s*#?\s*(\d{3,6})\b`)
	checkOnlyRe    = regexp.MustCompile(`^(\d{3,6})\*?$`)
)

// ExtractBankReference pulls the bank-assigned identifier out of the
// description for channels that carry one. It returns "" when the channel has
// no reference or the pattern is absent.
func ExtractBankReference(description string, channel statement.Channel) string {
	switch channel {
	case statement.ChannelCheckcard:
		if m := traceRe.FindStringSubmatch(description); m != nil {
			return m[1]
		}
	case statement.ChannelOnlineBankingTransfer, statement.ChannelZelle:
		if m := confirmationRe.FindStringSubmatch(description); m != nil {
			return strings.ToUpper(m[1])
		}
	case statement.ChannelATMDeposit, statement.ChannelATMWithdrawal,
		statement.ChannelFinancialCenterDeposit:
		if m := atmSeqRe.FindStringSubmatch(description); m != nil {
			return m[1]
		}
	case statement.ChannelCheck:
		if m := checkNumRe.FindStringSubmatch(description); m != nil {
			return strings.TrimSuffix(m[1], "*")
		}
		// Compact check rows print just the number.
		if m := checkOnlyRe.FindStringSubmatch(strings.TrimSpace(description)); m != nil {
			return m[1]
		}
	}
	return ""
}
