package normalizer

import (
	"regexp"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// channelRule pairs a description pattern with the channel it implies.
// Rules are checked in order and the first match wins, so more specific
// patterns must come before the generic ones they overlap with.
type channelRule struct {
	re      *regexp.Regexp
	channel statement.Channel
	subtype string
}

var channelRules = []channelRule{
	{regexp.MustCompile(`(?i)\bzelle\b`), statement.ChannelZelle, ""},
	{regexp.MustCompile(`(?i)online banking transfer|online scheduled transfer|online transfer`), statement.ChannelOnlineBankingTransfer, ""},
	{regexp.MustCompile(`(?i)\batm\b.*\bdeposit\b|\bdeposit\b.*\batm\b`), statement.ChannelATMDeposit, ""},
	{regexp.MustCompile(`(?i)\batm\b.*\b(withdrwl|withdrawal)\b|\b(withdrwl|withdrawal)\b.*\batm\b`), statement.ChannelATMWithdrawal, ""},
	{regexp.MustCompile(`(?i)financial center deposit|counter credit|branch deposit`), statement.ChannelFinancialCenterDeposit, ""},
	{regexp.MustCompile(`(?i)^checkcard\b.*\brecurring\b`), statement.ChannelCheckcard, "recurring"},
	{regexp.MustCompile(`(?i)^checkcard\b`), statement.ChannelCheckcard, ""},
	{regexp.MustCompile(`(?i)^purchase\b`), statement.ChannelPurchase, ""},
	{regexp.MustCompile(`(?i)^(check|cashed check)\b`), statement.ChannelCheck, ""},
	{regexp.MustCompile(`(?i)\b(monthly maintenance fee|service fee|overdraft.*fee|fee\b.*charge|wire.*fee)\b`), statement.ChannelFee, ""},
}

// ClassifyChannel decides which channel a transaction moved through. The
// checks and fees sections are authoritative and override the description;
// for everything else the first matching description rule decides, falling
// back to OTHER.
func ClassifyChannel(description string, section statement.Section) (statement.Channel, string) {
	switch section {
	case statement.SectionChecks:
		return statement.ChannelCheck, ""
	case statement.SectionFees:
		return statement.ChannelFee, ""
	}
	for _, rule := range channelRules {
		if rule.re.MatchString(description) {
			return rule.channel, rule.subtype
		}
	}
	return statement.ChannelOther, ""
}
