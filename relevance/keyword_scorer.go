package relevance

import "strings"

// Score weights. Full-term matches dominate, partial word matches
// stack, listings with a rating get a small boost.
const (
	fullMatchScore    = 100
	wordMatchScore    = 50
	ratingBonus       = 10
	minWordMatchRunes = 3
)

// KeywordScorer scores titles by substring matching. It is a
// heuristic ranker, not an exact-match filter.
type KeywordScorer struct{}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

// Score returns the additive relevance of title against term:
// +100 when the lowered title contains the lowered full term,
// +50 for each distinct term word of 3+ runes found in the title,
// +10 when the listing carries a rating.
func (s *KeywordScorer) Score(title, term, rating string) int {
	titleLower := strings.ToLower(title)
	termLower := strings.ToLower(strings.TrimSpace(term))
	if titleLower == "" || termLower == "" {
		return 0
	}

	score := 0
	if strings.Contains(titleLower, termLower) {
		score += fullMatchScore
	}

	seen := make(map[string]struct{})
	for _, word := range strings.Fields(termLower) {
		if len([]rune(word)) < minWordMatchRunes {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if strings.Contains(titleLower, word) {
			score += wordMatchScore
		}
	}

	if rating != "" {
		score += ratingBonus
	}
	return score
}
