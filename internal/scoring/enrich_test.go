package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/llm"
)

func TestBuildPromptTruncatesExcerpt(t *testing.T) {
	text := strings.Repeat("a", 600)
	prompt := BuildPrompt(text)

	want := "Resume excerpt: \"" + strings.Repeat("a", 500) + "...\"\nProvide 2 brief improvement suggestions:"
	assert.Equal(t, want, prompt)
}

func TestParseEnrichment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "only short lines", raw: "one\ntwo\n", want: nil},
		{name: "keeps two", raw: "  First useful suggestion  \nshort\nSecond useful suggestion\nThird useful suggestion", want: []string{"First useful suggestion", "Second useful suggestion"}},
		{name: "exactly ten chars dropped", raw: "0123456789\n01234567890", want: []string{"01234567890"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseEnrichment(tt.raw))
		})
	}
}

func TestEnrichNilSuggesterIsAbsent(t *testing.T) {
	got := NewEnricher(nil, time.Second).Enrich(context.Background(), "text")
	assert.False(t, got.OK)
	assert.Empty(t, got.Lines)

	var nilEnricher *Enricher
	assert.False(t, nilEnricher.Enrich(context.Background(), "text").OK)
}

func TestEnrichPassesPrompt(t *testing.T) {
	var seen string
	s := llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "Mention certifications near the top", nil
	})

	got := NewEnricher(s, time.Second).Enrich(context.Background(), "Backend engineer")

	require.True(t, got.OK)
	assert.Equal(t, []string{"Mention certifications near the top"}, got.Lines)
	assert.Equal(t, BuildPrompt("Backend engineer"), seen)
}

func TestEnrichSwallowsFailures(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	tests := []struct {
		name string
		s    llm.Suggester
	}{
		{name: "error", s: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("boom")
		})},
		{name: "empty", s: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			return "  \n", nil
		})},
		{name: "panic", s: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			panic("provider exploded")
		})},
		{name: "ignores context", s: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			<-release
			return "Too late to matter at all", nil
		})},
		{name: "honours context", s: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			got := NewEnricher(tt.s, 20*time.Millisecond).Enrich(context.Background(), "text")
			assert.False(t, got.OK)
			assert.Empty(t, got.Lines)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestAnalyzeSurvivesPanickingProvider(t *testing.T) {
	scorer := New(Options{
		Suggester: llm.SuggesterFunc(func(ctx context.Context, prompt string) (string, error) {
			panic("provider exploded")
		}),
		EnrichmentTimeout: 50 * time.Millisecond,
	})

	got := scorer.Analyze(context.Background(), "Work experience with Go.")
	assert.Equal(t, staticOptionalTips, got.Suggestions.Optional)
}
