// Package categorize assigns a spending category to each transaction. Exact
// substring rules are matched in a single pass with an Aho-Corasick
// automaton; descriptions no rule hits fall through to a fuzzy matcher and
// finally to channel defaults. Categorization never fails.
package categorize

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// Uncategorized is the verdict when nothing matches.
const (
	Uncategorized          = "Uncategorized"
	defaultConfidence      = 0.5
	fuzzyMinScore          = 70
	fuzzyConfidencePenalty = 0.15
)

// Engine matches a rule set against descriptions. The automaton is built
// once and matching is a single O(n) pass regardless of rule count, so batch
// categorization stays cheap even with large custom rule files.
type Engine struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	// metadata is grouped per pattern since two rules may share one.
	metadata [][]Rule
	fuzzy    *fuzzyMatcher
	minFuzzy int
	mu       sync.RWMutex
}

// NewEngine builds an engine over the built-in rule set plus any extras.
func NewEngine(extra ...Rule) *Engine {
	e := &Engine{minFuzzy: fuzzyMinScore}
	rules := make([]Rule, 0, len(builtinRules)+len(extra))
	rules = append(rules, builtinRules...)
	rules = append(rules, extra...)
	e.Build(rules)
	return e
}

// Build (re)constructs the automaton from the given rules.
func (e *Engine) Build(rules []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	patternIndex := make(map[string]int, len(rules))
	patterns := make([]string, 0, len(rules))
	metadata := make([][]Rule, 0, len(rules))

	for _, rule := range rules {
		p := strings.ToUpper(strings.TrimSpace(rule.Pattern))
		if p == "" {
			continue
		}
		if idx, ok := patternIndex[p]; ok {
			metadata[idx] = append(metadata[idx], rule)
			continue
		}
		patternIndex[p] = len(patterns)
		patterns = append(patterns, p)
		metadata = append(metadata, []Rule{rule})
	}

	e.patterns = patterns
	e.metadata = metadata
	e.matcher = nil
	if len(patterns) > 0 {
		byteParts := make([][]byte, len(patterns))
		for i, p := range patterns {
			byteParts[i] = []byte(p)
		}
		e.matcher = ahocorasick.NewMatcher(byteParts)
	}
	e.fuzzy = newFuzzyMatcher(rules)
}

// Categorize returns a verdict for the description. It tries exact rules,
// then fuzzy matching, then the channel default, and never returns an error:
// the floor is {Uncategorized, 0.5}.
func (e *Engine) Categorize(description string, channel statement.Channel) statement.Categorization {
	if match := e.matchExact(description); match != nil {
		return statement.Categorization{
			Category:    match.Category,
			Subcategory: match.Subcategory,
			Confidence:  match.Confidence,
			RuleID:      match.ID,
			Rationale:   "matched pattern " + match.Pattern,
		}
	}

	if fm := e.fuzzyMatch(description); fm != nil {
		conf := fm.rule.Confidence - fuzzyConfidencePenalty
		if conf < defaultConfidence {
			conf = defaultConfidence
		}
		return statement.Categorization{
			Category:    fm.rule.Category,
			Subcategory: fm.rule.Subcategory,
			Confidence:  conf,
			RuleID:      fm.rule.ID,
			Rationale:   "fuzzy match on " + fm.rule.Pattern,
		}
	}

	if cat, sub, ok := channelDefault(channel); ok {
		return statement.Categorization{
			Category:    cat,
			Subcategory: sub,
			Confidence:  0.6,
			Rationale:   "channel default",
		}
	}

	return statement.Categorization{Category: Uncategorized, Confidence: defaultConfidence}
}

func (e *Engine) matchExact(description string) *Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return nil
	}
	hits := e.matcher.Match([]byte(strings.ToUpper(description)))
	if len(hits) == 0 {
		return nil
	}

	var best *Rule
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.metadata) {
			continue
		}
		for i := range e.metadata[idx] {
			r := &e.metadata[idx][i]
			if best == nil || r.Priority > best.Priority {
				best = r
			}
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}

func (e *Engine) fuzzyMatch(description string) *fuzzyResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.fuzzy == nil {
		return nil
	}
	return e.fuzzy.match(description, e.minFuzzy)
}

// SetFuzzyThreshold overrides the minimum score (0..100) a fuzzy candidate
// must reach before it counts as a match.
func (e *Engine) SetFuzzyThreshold(score int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.minFuzzy = score
}

// RuleCount returns the number of distinct patterns loaded.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}

// channelDefault gives a category for channels whose meaning is unambiguous
// even when the description matches no merchant rule.
func channelDefault(channel statement.Channel) (string, string, bool) {
	switch channel {
	case statement.ChannelFee:
		return "Bank Fees", "", true
	case statement.ChannelCheck:
		return "Checks", "", true
	case statement.ChannelATMWithdrawal:
		return "Cash", "Withdrawal", true
	case statement.ChannelATMDeposit, statement.ChannelFinancialCenterDeposit:
		return "Cash", "Deposit", true
	case statement.ChannelOnlineBankingTransfer, statement.ChannelZelle:
		return "Transfers", "", true
	}
	return "", "", false
}
