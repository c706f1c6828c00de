package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		raw  string
		want MatchMode
	}{
		{raw: "", want: MatchSubstring},
		{raw: "substring", want: MatchSubstring},
		{raw: "word", want: MatchWordBoundary},
		{raw: " Word_Boundary ", want: MatchWordBoundary},
		{raw: "nonsense", want: MatchSubstring},
	}

	for _, tt := range tests {
		if got := ParseMatchMode(tt.raw); got != tt.want {
			t.Fatalf("ParseMatchMode(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestMatchSubstringKeepsJavaInJavaScript(t *testing.T) {
	res := match("Senior JavaScript engineer", DefaultCatalog(), DefaultATSKeywords(), MatchSubstring)

	assert.Contains(t, res.skillsFound, "JavaScript")
	assert.Contains(t, res.skillsFound, "Java")
}

func TestMatchWordBoundary(t *testing.T) {
	catalog := DefaultCatalog()
	res := match("Senior JavaScript engineer at Google. Skilled in C++, Node.js and CI/CD; led teams.", catalog, DefaultATSKeywords(), MatchWordBoundary)

	assert.Contains(t, res.skillsFound, "JavaScript")
	assert.NotContains(t, res.skillsFound, "Java")
	assert.NotContains(t, res.skillsFound, "Go")
	assert.Contains(t, res.skillsFound, "C++")
	assert.Contains(t, res.skillsFound, "Node.js")
	assert.Contains(t, res.skillsFound, "CI/CD")
	assert.Equal(t, []string{"led"}, res.keywords)
}

func TestMatchWordBoundaryFindsLaterOccurrence(t *testing.T) {
	assert.True(t, contains("javascript and java", "java", MatchWordBoundary))
	assert.False(t, contains("javascript only", "java", MatchWordBoundary))
}

func TestMatchMissingSkillsCatalogOrder(t *testing.T) {
	catalog := DefaultCatalog()
	res := match("TypeScript", catalog, nil, MatchSubstring)

	want := []string{"JavaScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust", "React"}
	assert.Equal(t, want, res.missingSkills)
	assert.Equal(t, []string{"TypeScript"}, res.skillsFound)
	assert.Empty(t, res.keywords)
}
