// Package scoring compares a chatbot response with a reference answer using
// two lexical metrics, both reported as integers in [0,100].
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/chatprobe/backend/internal/domain/testcase"
)

// Band classifies a score the way the results table colours it.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// Tokens lower-cases s, splits it on whitespace and returns the set of
// tokens longer than one character.
func Tokens(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 1 {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

// TextSimilarity returns the Jaccard overlap of the two token sets as a
// percentage. Two empty token sets score 0.
func TextSimilarity(candidate, reference string) int {
	a := Tokens(candidate)
	b := Tokens(reference)

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return percent(intersection, union)
}

// KeywordCoverage returns the share of keywords found as case-insensitive
// substrings of candidate. An empty keyword list scores 0.
func KeywordCoverage(candidate string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(candidate)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	return percent(matched, len(keywords))
}

// Score computes both metrics of a response against a test case.
func Score(candidate string, tc testcase.TestCase) (similarity, coverage int) {
	return TextSimilarity(candidate, tc.CorrectAnswer), KeywordCoverage(candidate, tc.Keywords)
}

// Grade maps a score onto the good/fair/poor thresholds (70 and 40).
func Grade(score int) Band {
	switch {
	case score >= 70:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}

// percent rounds half up, matching Math.round on non-negative values.
func percent(part, whole int) int {
	return int(math.Floor(float64(part)/float64(whole)*100 + 0.5))
}
