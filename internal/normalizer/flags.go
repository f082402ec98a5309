package normalizer

import (
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// subscriptionKeywords are description substrings that identify a recurring
// service charge. Matching is case-insensitive on the canonical description.
var subscriptionKeywords = []string{
	"netflix",
	"spotify",
	"hulu",
	"disney plus",
	"disneyplus",
	"youtube premium",
	"apple.com/bill",
	"prime video",
	"amazon prime",
	"audible",
	"membership fee",
	"subscription",
	"recurring",
}

// ComputeFlags derives the sparse trait flags for a transaction. It returns
// nil when no flag is set so flagless transactions serialize without the
// field at all.
func ComputeFlags(channel statement.Channel, description string) *statement.Flags {
	lower := strings.ToLower(description)

	var f statement.Flags
	set := false

	for _, kw := range subscriptionKeywords {
		if strings.Contains(lower, kw) {
			f.IsSubscription = true
			set = true
			break
		}
	}
	if strings.Contains(lower, "recurring") {
		f.IsRecurring = true
		set = true
	}
	switch channel {
	case statement.ChannelATMWithdrawal:
		f.IsCashWithdrawal = true
		set = true
	case statement.ChannelATMDeposit, statement.ChannelFinancialCenterDeposit:
		f.IsCashDeposit = true
		set = true
	case statement.ChannelOnlineBankingTransfer, statement.ChannelZelle:
		f.IsTransfer = true
		set = true
	}

	if !set {
		return nil
	}
	return &f
}
