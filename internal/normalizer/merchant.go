package normalizer

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

var (
	checkcardPrefixRe = regexp.MustCompile(`(?i)^checkcard\s+(\d{4}\s+)?`)
	purchasePrefixRe  = regexp.MustCompile(`(?i)^purchase\s+(authorized\s+on\s+\d{2}/\d{2}\s+)?`)
	achNoiseRe        = regexp.MustCompile(`(?i)\b(des|id|indn|co id|web|ppd|ccd)\s*:\s*\S*`)
	recurringRe       = regexp.MustCompile(`(?i)\brecurring\b`)
	trailingDigitsRe  = regexp.MustCompile(`\s+\d{4,}\s*$`)
	// Trailing "<city> ST" or bare "ST". The city is a single plain word so
	// multi-word merchant names never get eaten.
	cityStateRe  = regexp.MustCompile(`\s+(?:[A-Za-z][A-Za-z.'-]*\s+)?[A-Z]{2}$`)
	cardSuffixRe = regexp.MustCompile(`(?i)\s+card\s+\d{4}\s*$`)
)

// merchantChannels are the channels whose descriptions name a counterparty.
// Transfers, ATM traffic, checks, and fees have none.
var merchantChannels = map[statement.Channel]bool{
	statement.ChannelCheckcard: true,
	statement.ChannelPurchase:  true,
	statement.ChannelOther:     true,
}

// ExtractMerchant recovers the counterparty name from a card or ACH
// description: channel boilerplate, trace numbers, card suffixes, and the
// trailing city/state are stripped, and whatever survives is the merchant.
// Returns "" when the channel has no counterparty or too little text remains.
func ExtractMerchant(description string, channel statement.Channel) string {
	if !merchantChannels[channel] {
		return ""
	}

	s := description
	s = checkcardPrefixRe.ReplaceAllString(s, "")
	s = purchasePrefixRe.ReplaceAllString(s, "")
	s = achNoiseRe.ReplaceAllString(s, "")
	s = recurringRe.ReplaceAllString(s, "")
	s = cardSuffixRe.ReplaceAllString(s, "")
	// Trace numbers first, then any remaining shorter digit runs.
	s = traceSuffixRe.ReplaceAllString(s, "")
	s = trailingDigitsRe.ReplaceAllString(s, "")
	s = cityStateRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if len(s) < 3 {
		return ""
	}
	return titleCase(s)
}

// titleCase normalizes shouty all-caps merchant text, keeping short tokens
// (AMZN, A&W) as printed since they are usually intentional.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 3 && w == strings.ToUpper(w) && !strings.ContainsAny(w, ".&/") {
			words[i] = string(w[0]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
