package scoring

import (
	"context"
	"time"

	"resume-analyzer/internal/llm"
)

// Options configures a Scorer. Zero values select the built-in catalog,
// keyword list, substring matching and no enrichment.
type Options struct {
	Catalog           *SkillCatalog
	Keywords          []string
	MatchMode         MatchMode
	Suggester         llm.Suggester
	EnrichmentTimeout time.Duration
}

// Scorer produces heuristic resume reports. It holds no per-call state and is
// safe for concurrent use.
type Scorer struct {
	catalog  SkillCatalog
	keywords []string
	mode     MatchMode
	enricher *Enricher
}

// New constructs a Scorer.
func New(opts Options) *Scorer {
	catalog := DefaultCatalog()
	if opts.Catalog != nil {
		catalog = SkillCatalog{
			Technical: append([]string(nil), opts.Catalog.Technical...),
			Soft:      append([]string(nil), opts.Catalog.Soft...),
		}
	}
	keywords := DefaultATSKeywords()
	if len(opts.Keywords) > 0 {
		keywords = append([]string(nil), opts.Keywords...)
	}
	var enricher *Enricher
	if opts.Suggester != nil {
		enricher = NewEnricher(opts.Suggester, opts.EnrichmentTimeout)
	}
	return &Scorer{
		catalog:  catalog,
		keywords: keywords,
		mode:     opts.MatchMode,
		enricher: enricher,
	}
}

// Analyze scores text. It is total over any input, including the empty string;
// enrichment failures only drop the extra optional tips.
func (s *Scorer) Analyze(ctx context.Context, text string) ResumeAnalysis {
	matched := match(text, s.catalog, s.keywords, s.mode)

	ats := atsScore(len(matched.keywords), len(s.keywords))
	readability := readabilityScore(text)
	skill := skillScore(len(matched.skillsFound))

	suggestions := ruleSuggestions(text, matched.skillsFound, matched.keywords, ats)
	if enrichment := s.enricher.Enrich(ctx, text); enrichment.OK {
		suggestions.Optional = append(suggestions.Optional, enrichment.Lines...)
	}

	return ResumeAnalysis{
		OverallScore:     overallScore(ats, readability, skill),
		ATSScore:         ats,
		ReadabilityScore: readability,
		SkillsFound:      matched.skillsFound,
		MissingSkills:    matched.missingSkills,
		Suggestions:      suggestions,
		GrammarIssues:    checkGrammar(text),
		Keywords:         matched.keywords,
	}
}
