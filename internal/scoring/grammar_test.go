package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGrammarCapitalization(t *testing.T) {
	issues := checkGrammar("lowercase opening is allowed here. second sentence starts lowercase! Third one is fine.")

	require.Len(t, issues, 1)
	assert.Equal(t, IssueCapitalization, issues[0].Type)
	assert.Equal(t, `Sentence should start with a capital letter: "second sentence starts lowercase..."`, issues[0].Message)
	assert.Equal(t, []string{"Second sentence starts lowercase"}, issues[0].Suggestions)
}

func TestCheckGrammarCapitalizationExcerpt(t *testing.T) {
	rest := strings.Repeat("abcdefghij ", 8)
	issues := checkGrammar("Opening sentence goes here. " + rest + ".")

	require.NotEmpty(t, issues)
	assert.Equal(t, `Sentence should start with a capital letter: "`+rest[:50]+`..."`, issues[0].Message)
}

func TestCheckGrammarDigitStartIsFlagged(t *testing.T) {
	issues := checkGrammar("Managed a large team. 5 releases shipped on time.")

	require.Len(t, issues, 1)
	assert.Equal(t, IssueCapitalization, issues[0].Type)
	assert.Equal(t, []string{"5 releases shipped on time"}, issues[0].Suggestions)
}

func TestCheckGrammarShortSentence(t *testing.T) {
	issues := checkGrammar("Led platform migrations across teams. Hired engineers.")

	require.Len(t, issues, 1)
	assert.Equal(t, IssueSentenceLength, issues[0].Type)
	assert.Equal(t, `Very short sentence detected. Consider expanding: "Hired engineers"`, issues[0].Message)
	assert.Equal(t, []string{"Add more detail to this sentence"}, issues[0].Suggestions)
}

func TestCheckGrammarTextPatterns(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
		typ     string
	}{
		{name: "pronoun", text: "Yesterday i shipped the release", message: `Pronoun "I" should be capitalized`, typ: IssueFormatting},
		{name: "double space", text: "Shipped the  release on time", message: "Multiple spaces detected", typ: IssueFormatting},
		{name: "space before comma", text: "Shipped the release , on time", message: "Space before comma", typ: IssueFormatting},
		{name: "space before period", text: "Shipped the release on time .", message: "Space before period", typ: IssueFormatting},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues := checkGrammar(tt.text)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.typ, issues[0].Type)
			assert.Equal(t, tt.message, issues[0].Message)
		})
	}
}

func TestCheckGrammarUppercasePronounIgnored(t *testing.T) {
	assert.Empty(t, checkGrammar("Then I shipped the release"))
}

func TestCheckGrammarUnicodeSpaces(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
	}{
		{name: "nbsp pair", text: "Shipped the\u00a0\u00a0release on time", message: "Multiple spaces detected"},
		{name: "thin space then ascii", text: "Shipped the\u2009 release on time", message: "Multiple spaces detected"},
		{name: "nbsp before comma", text: "Shipped the release\u00a0, on time", message: "Space before comma"},
		{name: "nbsp before period", text: "Shipped the release on time\u00a0.", message: "Space before period"},
		{name: "pronoun before nbsp", text: "Yesterday i\u00a0shipped the release", message: `Pronoun "I" should be capitalized`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues := checkGrammar(tt.text)
			require.Len(t, issues, 1)
			assert.Equal(t, IssueFormatting, issues[0].Type)
			assert.Equal(t, tt.message, issues[0].Message)
		})
	}
}

func TestCheckGrammarTruncatesToTen(t *testing.T) {
	text := strings.Repeat("Too short. ", 15)
	issues := checkGrammar(text)

	assert.Len(t, issues, 10)
	for _, issue := range issues {
		assert.Equal(t, IssueSentenceLength, issue.Type)
	}
}

func TestCheckGrammarSentenceIssuesBeforeTextIssues(t *testing.T) {
	issues := checkGrammar("Led  a team. ok")

	require.Len(t, issues, 3)
	assert.Equal(t, IssueCapitalization, issues[0].Type)
	assert.Equal(t, IssueSentenceLength, issues[1].Type)
	assert.Equal(t, IssueFormatting, issues[2].Type)
}
