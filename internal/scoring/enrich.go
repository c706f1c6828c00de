package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

const (
	// DefaultEnrichmentTimeout bounds a single provider call.
	DefaultEnrichmentTimeout = 8 * time.Second

	promptExcerptRunes = 500
	maxEnrichmentLines = 2
	minEnrichmentLine  = 10
)

// Enrichment outcomes reported to metrics.
const (
	EnrichmentOK       = "ok"
	EnrichmentDisabled = "disabled"
	EnrichmentError    = "error"
	EnrichmentTimeout  = "timeout"
	EnrichmentEmpty    = "empty"
	EnrichmentPanic    = "panic"
)

// Enrichment is the outcome of a best-effort provider call.
// OK is false when nothing usable came back; Lines is then empty.
type Enrichment struct {
	Lines []string
	OK    bool
}

// Enricher asks a generative provider for extra tips. It never fails:
// any provider problem yields an absent Enrichment.
type Enricher struct {
	suggester llm.Suggester
	timeout   time.Duration
}

// NewEnricher returns an Enricher around s. A nil s disables enrichment.
func NewEnricher(s llm.Suggester, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = DefaultEnrichmentTimeout
	}
	return &Enricher{suggester: s, timeout: timeout}
}

// Enrich builds the prompt from text and returns up to two usable lines.
func (e *Enricher) Enrich(ctx context.Context, text string) Enrichment {
	if e == nil || e.suggester == nil {
		metrics.IncEnrichment(EnrichmentDisabled)
		return Enrichment{}
	}
	start := time.Now()
	raw, err := e.call(ctx, BuildPrompt(text))
	if err != nil {
		outcome := EnrichmentError
		switch {
		case errors.Is(err, errProviderPanic):
			outcome = EnrichmentPanic
		case errors.Is(err, context.DeadlineExceeded):
			outcome = EnrichmentTimeout
		}
		metrics.IncEnrichment(outcome)
		telemetry.Warn("scoring.enrichment_failed", map[string]any{
			"outcome":     outcome,
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return Enrichment{}
	}

	lines := ParseEnrichment(raw)
	if len(lines) == 0 {
		metrics.IncEnrichment(EnrichmentEmpty)
		return Enrichment{}
	}
	metrics.IncEnrichment(EnrichmentOK)
	return Enrichment{Lines: lines, OK: true}
}

var errProviderPanic = errors.New("enrichment provider panicked")

// call runs the provider on its own goroutine so a provider that ignores
// ctx still cannot hold the analysis past the timeout.
func (e *Enricher) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", errProviderPanic, r)}
			}
		}()
		text, err := e.suggester.Suggest(ctx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// BuildPrompt returns the enrichment prompt for a resume text.
func BuildPrompt(text string) string {
	return fmt.Sprintf("Resume excerpt: \"%s...\"\nProvide 2 brief improvement suggestions:", excerpt(text, promptExcerptRunes))
}

// ParseEnrichment keeps at most two non-trivial lines of a provider response.
func ParseEnrichment(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) <= minEnrichmentLine {
			continue
		}
		out = append(out, line)
		if len(out) == maxEnrichmentLines {
			break
		}
	}
	return out
}
