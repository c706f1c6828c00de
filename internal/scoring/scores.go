package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Scoring policy.
const (
	atsBaseCredit       = 20
	skillFullMarks      = 15
	weightATS           = 0.3
	weightReadability   = 0.3
	weightSkills        = 0.4
	longAvgSentence     = 25
	veryLongAvgSentence = 30
	minWordCount        = 200
	minCharCount        = 500
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// splitSentences splits on runs of terminators and drops whitespace-only fragments.
// Fragments are returned untrimmed.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func charCount(text string) int {
	return utf8.RuneCountInString(text)
}

func atsScore(found, total int) int {
	if total == 0 {
		return atsBaseCredit
	}
	score := roundHalfUp(float64(found)/float64(total)*100) + atsBaseCredit
	return min(100, score)
}

func readabilityScore(text string) int {
	sentences := len(splitSentences(text))
	words := len(strings.Fields(text))
	avg := float64(words) / float64(max(sentences, 1))

	score := 100
	if avg > longAvgSentence {
		score -= 20
	}
	if avg > veryLongAvgSentence {
		score -= 20
	}
	if words < minWordCount {
		score -= 30
	}
	if charCount(text) < minCharCount {
		score -= 20
	}
	return max(0, score)
}

func skillScore(found int) float64 {
	return math.Min(100, float64(found)/skillFullMarks*100)
}

func overallScore(ats, readability int, skill float64) int {
	return roundHalfUp(float64(ats)*weightATS + float64(readability)*weightReadability + skill*weightSkills)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
