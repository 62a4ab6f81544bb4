package enrich

import (
	"strings"

	"github.com/optica-labs/frame-intake/internal/entity"
)

// Matcher scores candidate variants against a parsed item's identifying
// attributes. Scoring is additive over independent attribute matches and
// fully deterministic: identical input always yields identical output,
// and the first-seen candidate wins ties.
type Matcher struct {
	// Threshold gates the validated flag; best-effort matches below it are
	// still returned so callers never silently lose an item.
	Threshold int
}

// MatchResult is the matcher's verdict for one item.
type MatchResult struct {
	Variant   *entity.Variant
	Score     int
	Validated bool
	Reason    string
}

const (
	scoreColorCode = 50
	scoreEyeSize   = 40
	scoreColorName = 25
	scoreBridge    = 10
	scoreMax       = 100
)

// Match picks the best candidate for the item. With no candidates it
// returns an empty result; with candidates but no attribute signal it
// returns the first as a best-effort match with a zero score.
func (m Matcher) Match(item entity.LineItem, candidates []entity.Variant) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Reason: "no candidates in vendor catalog"}
	}

	bestIdx := 0
	bestScore := -1
	bestReason := ""
	for i := range candidates {
		score, reason := m.score(item, &candidates[i])
		if score > bestScore {
			bestIdx, bestScore, bestReason = i, score, reason
		}
	}

	res := MatchResult{
		Variant: &candidates[bestIdx],
		Score:   bestScore,
		Reason:  bestReason,
	}
	if bestScore >= m.Threshold {
		res.Validated = true
	} else {
		res.Reason = "low confidence: " + bestReason
	}
	return res
}

func (m Matcher) score(item entity.LineItem, v *entity.Variant) (int, string) {
	score := 0
	var reasons []string

	colorMatched := false
	if item.ColorCode != "" && normalizeCode(item.ColorCode) == normalizeCode(v.ColorCode) {
		score += scoreColorCode
		colorMatched = true
		reasons = append(reasons, "color code match")
	}
	if item.EyeSize > 0 && item.EyeSize == v.EyeSize {
		score += scoreEyeSize
		reasons = append(reasons, "eye size match")
	}
	if item.Bridge > 0 && item.Bridge == v.Bridge {
		score += scoreBridge
		reasons = append(reasons, "bridge match")
	}
	if !colorMatched && colorNameOverlap(item.ColorName, v.ColorName) {
		score += scoreColorName
		reasons = append(reasons, "color name overlap")
	}

	if score > scoreMax {
		score = scoreMax
	}
	if len(reasons) == 0 {
		return 0, "no attribute signal; first candidate taken"
	}
	return score, strings.Join(reasons, "; ")
}

// normalizeCode uppercases and drops leading zeros so "001" and "1" agree.
func normalizeCode(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	trimmed := strings.TrimLeft(c, "0")
	if trimmed == "" && c != "" {
		return "0"
	}
	return trimmed
}

// colorNameOverlap reports whether the two names share at least one word of
// three or more letters ("MATTE BLACK" vs "BLACK").
func colorNameOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToUpper(a)) {
		if len(w) >= 3 {
			words[w] = true
		}
	}
	for _, w := range strings.Fields(strings.ToUpper(b)) {
		if len(w) >= 3 && words[w] {
			return true
		}
	}
	return false
}
