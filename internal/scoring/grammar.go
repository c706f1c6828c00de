package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxGrammarIssues   = 10
	shortSentenceWords = 3
	longSentenceWords  = 35
	excerptRunes       = 50
)

type textPattern struct {
	re        *regexp.Regexp
	issueType string
	message   string
	right     string
}

// spaceClass matches the Unicode separators found in extracted PDF text
// (NBSP, thin space, BOM) in addition to ASCII whitespace.
const spaceClass = `[\s\p{Z}\v\x{FEFF}]`

// Whole-text checks, evaluated in order. Each fires at most once. The
// pronoun check is lowercase only, so a correct "I" never fires it.
var textPatterns = []textPattern{
	{re: regexp.MustCompile(`\bi` + spaceClass), issueType: IssueFormatting, message: `Pronoun "I" should be capitalized`, right: "I"},
	{re: regexp.MustCompile(spaceClass + `{2,}`), issueType: IssueFormatting, message: "Multiple spaces detected", right: " "},
	{re: regexp.MustCompile(spaceClass + `,`), issueType: IssueFormatting, message: "Space before comma", right: ","},
	{re: regexp.MustCompile(spaceClass + `\.`), issueType: IssueFormatting, message: "Space before period", right: "."},
}

func checkGrammar(text string) []GrammarIssue {
	issues := []GrammarIssue{}

	for i, sentence := range splitSentences(text) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(trimmed)
		if i > 0 && unicode.ToLower(first) == first {
			issues = append(issues, GrammarIssue{
				Type:        IssueCapitalization,
				Message:     fmt.Sprintf("Sentence should start with a capital letter: \"%s...\"", excerpt(trimmed, excerptRunes)),
				Suggestions: []string{string(unicode.ToUpper(first)) + trimmed[size:]},
			})
		}

		words := len(strings.Fields(trimmed))
		if words < shortSentenceWords {
			issues = append(issues, GrammarIssue{
				Type:        IssueSentenceLength,
				Message:     fmt.Sprintf("Very short sentence detected. Consider expanding: \"%s\"", trimmed),
				Suggestions: []string{"Add more detail to this sentence"},
			})
		}
		if words > longSentenceWords {
			issues = append(issues, GrammarIssue{
				Type:        IssueSentenceLength,
				Message:     "Very long sentence detected. Consider breaking it up.",
				Suggestions: []string{"Split into multiple sentences for better readability"},
			})
		}
	}

	for _, p := range textPatterns {
		if p.re.MatchString(text) {
			issues = append(issues, GrammarIssue{
				Type:        p.issueType,
				Message:     p.message,
				Suggestions: []string{fmt.Sprintf("Replace with: \"%s\"", p.right)},
			})
		}
	}

	if len(issues) > maxGrammarIssues {
		issues = issues[:maxGrammarIssues]
	}
	return issues
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
