package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchMode selects how catalog entries are located in resume text.
type MatchMode int

const (
	// MatchSubstring treats any case-insensitive occurrence as a match,
	// so "Java" is also found inside "JavaScript".
	MatchSubstring MatchMode = iota
	// MatchWordBoundary requires the occurrence not to be flanked by a letter or digit.
	MatchWordBoundary
)

// ParseMatchMode maps a config value to a MatchMode. Unknown values fall back to MatchSubstring.
func ParseMatchMode(raw string) MatchMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "word", "word_boundary", "wordboundary", "boundary":
		return MatchWordBoundary
	default:
		return MatchSubstring
	}
}

func (m MatchMode) String() string {
	if m == MatchWordBoundary {
		return "word_boundary"
	}
	return "substring"
}

type matchResult struct {
	skillsFound   []string
	missingSkills []string
	keywords      []string
}

const maxMissingSkills = 10

func match(text string, catalog SkillCatalog, keywords []string, mode MatchMode) matchResult {
	lower := strings.ToLower(text)
	res := matchResult{
		skillsFound:   []string{},
		missingSkills: []string{},
		keywords:      []string{},
	}
	for _, skill := range catalog.All() {
		if contains(lower, strings.ToLower(skill), mode) {
			res.skillsFound = append(res.skillsFound, skill)
			continue
		}
		if len(res.missingSkills) < maxMissingSkills {
			res.missingSkills = append(res.missingSkills, skill)
		}
	}
	for _, kw := range keywords {
		if contains(lower, strings.ToLower(kw), mode) {
			res.keywords = append(res.keywords, kw)
		}
	}
	return res
}

func contains(lowerText, lowerTerm string, mode MatchMode) bool {
	if lowerTerm == "" {
		return false
	}
	if mode != MatchWordBoundary {
		return strings.Contains(lowerText, lowerTerm)
	}
	offset := 0
	for {
		idx := strings.Index(lowerText[offset:], lowerTerm)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(lowerTerm)
		if isBoundary(lowerText, start, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(lowerText[start:])
		offset = start + size
	}
}

func isBoundary(s string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if end < len(s) {
		next, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
