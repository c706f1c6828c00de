package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/scoring"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

// DocumentSource resolves a caller's uploaded documents.
type DocumentSource interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
	ExtractText(ctx context.Context, doc documents.Document) (string, error)
	URL(ctx context.Context, doc documents.Document) (string, error)
}

// Analyzer scores resume text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) scoring.ResumeAnalysis
}

// Service contains business logic for analyses.
type Service struct {
	Repo      Repo
	Documents DocumentSource
	Scorer    Analyzer
	Now       func() time.Time
}

// Analyze extracts the document's text, scores it and stores the report.
func (s *Service) Analyze(ctx context.Context, userID, documentID string) (Analysis, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(documentID) == "" {
		return Analysis{}, errors.New("documentID and userID are required")
	}

	start := time.Now()
	metrics.IncAnalysisStarted()
	fields := map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"user_id":     userID,
		"document_id": documentID,
	}

	fail := func(reason string, err error) (Analysis, error) {
		metrics.IncAnalysisFailed(reason)
		metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
		fields["reason"] = reason
		fields["error"] = err
		telemetry.Warn("analysis.failed", fields)
		return Analysis{}, err
	}

	doc, err := s.Documents.Get(ctx, userID, documentID)
	if err != nil {
		return fail("document_lookup", err)
	}

	text, err := s.Documents.ExtractText(ctx, doc)
	if err != nil {
		if errors.Is(err, documents.ErrUnsupportedType) {
			return fail("unsupported_type", err)
		}
		return fail("extraction", fmt.Errorf("%w: %v", ErrExtractionFailed, err))
	}
	if utf8.RuneCountInString(text) < MinTextRunes {
		return fail("text_too_short", ErrTextTooShort)
	}

	result := s.Scorer.Analyze(ctx, text)

	fileURL, err := s.Documents.URL(ctx, doc)
	if err != nil {
		telemetry.Warn("analysis.file_url_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err,
		})
		fileURL = ""
	}

	analysis := Analysis{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		FileURL:    fileURL,
		FileSize:   doc.SizeBytes,
		FileType:   doc.MimeType,
		Result:     result,
		AnalyzedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return fail("persist", fmt.Errorf("store analysis: %w", err))
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	fields["analysis_id"] = analysis.ID
	fields["overall_score"] = result.OverallScore
	fields["text_runes"] = utf8.RuneCountInString(text)
	fields["duration_ms"] = metrics.SinceMillis(start)
	telemetry.Info("analysis.completed", fields)

	return analysis, nil
}

// Get returns an analysis owned by userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	analysis, err := s.Repo.GetByID(ctx, userID, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	s.refreshFileURL(ctx, &analysis)
	return analysis, nil
}

// List returns the user's analyses newest first. limit is clamped to
// [1, MaxListLimit] and defaults to DefaultListLimit.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.refreshFileURL(ctx, &items[i])
	}
	return items, nil
}

// refreshFileURL replaces the stored file URL with one resolved from the
// document now, since presigned URLs expire. The stored value is kept when
// the document is gone or the store cannot produce a URL.
func (s *Service) refreshFileURL(ctx context.Context, a *Analysis) {
	if s.Documents == nil || a.DocumentID == "" {
		return
	}
	doc, err := s.Documents.Get(ctx, a.UserID, a.DocumentID)
	if err != nil {
		if !errors.Is(err, documents.ErrNotFound) {
			telemetry.Warn("analysis.file_url_failed", map[string]any{
				"analysis_id": a.ID,
				"document_id": a.DocumentID,
				"error":       err,
			})
		}
		return
	}
	fileURL, err := s.Documents.URL(ctx, doc)
	if err != nil || fileURL == "" {
		telemetry.Warn("analysis.file_url_failed", map[string]any{
			"analysis_id": a.ID,
			"document_id": a.DocumentID,
			"error":       err,
		})
		return
	}
	a.FileURL = fileURL
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
