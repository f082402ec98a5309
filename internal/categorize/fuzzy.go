package categorize

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// fuzzyMatcher is the fallback for descriptions the automaton misses:
// merchant variations like "STARBUCKS STORE 00123" vs a plain "STARBUCKS"
// rule, or OCR-mangled text a few edits away from a known pattern.
type fuzzyMatcher struct {
	patterns []fuzzyPattern
}

type fuzzyPattern struct {
	normalized string
	rule       Rule
}

type fuzzyResult struct {
	rule  Rule
	score int
}

func newFuzzyMatcher(rules []Rule) *fuzzyMatcher {
	fm := &fuzzyMatcher{patterns: make([]fuzzyPattern, 0, len(rules))}
	for _, r := range rules {
		p := strings.ToUpper(strings.TrimSpace(r.Pattern))
		if p == "" {
			continue
		}
		fm.patterns = append(fm.patterns, fuzzyPattern{normalized: p, rule: r})
	}
	return fm
}

// match returns the best-scoring pattern at or above threshold, or nil.
// Priority breaks score ties so the ordering is deterministic.
func (fm *fuzzyMatcher) match(description string, threshold int) *fuzzyResult {
	normalized := strings.ToUpper(description)

	var best *fuzzyResult
	for _, p := range fm.patterns {
		score := fuzzyScore(normalized, p.normalized)
		if score < threshold {
			continue
		}
		if best == nil || score > best.score ||
			(score == best.score && p.rule.Priority > best.rule.Priority) {
			best = &fuzzyResult{rule: p.rule, score: score}
		}
	}
	return best
}

// fuzzyScore rates similarity 0-100: exact, containment, then the better of
// a Levenshtein ratio and a subsequence rank.
func fuzzyScore(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	if strings.Contains(s1, s2) {
		return 75 + (25 * len(s2) / len(s1))
	}
	if strings.Contains(s2, s1) {
		return 75 + (25 * len(s1) / len(s2))
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 0
	}
	levScore := 100 * (maxLen - distance) / maxLen

	rankScore := 0
	if rank := fuzzy.RankMatch(s2, s1); rank >= 0 && rank < len(s1) {
		rankScore = 60 - (rank * 40 / len(s1))
	}

	if levScore > rankScore {
		return levScore
	}
	return rankScore
}

// levenshteinDistance is the rune-wise edit distance, two-row variant.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}
