package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, user_id, document_id, file_name, file_url, file_size, file_type, result, analyzed_at`

// Create inserts a new analysis. Scores are duplicated from the JSONB report
// into their own columns.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, user_id, document_id, file_name, file_url, file_size, file_type,
	overall_score, ats_score, readability_score, result, analyzed_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	payload, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}
	var fileURL sql.NullString
	if analysis.FileURL != "" {
		fileURL = sql.NullString{String: analysis.FileURL, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.DocumentID,
		analysis.FileName,
		fileURL,
		analysis.FileSize,
		analysis.FileType,
		analysis.Result.OverallScore,
		analysis.Result.ATSScore,
		analysis.Result.ReadabilityScore,
		payload,
		analysis.AnalyzedAt,
	)
	return err
}

// GetByID returns an analysis owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1 AND id = $2`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, userID, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser returns analyses newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY analyzed_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var fileURL sql.NullString
	var payload []byte
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.DocumentID,
		&a.FileName,
		&fileURL,
		&a.FileSize,
		&a.FileType,
		&payload,
		&a.AnalyzedAt,
	); err != nil {
		return Analysis{}, err
	}
	if fileURL.Valid {
		a.FileURL = fileURL.String
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &a.Result); err != nil {
			return Analysis{}, fmt.Errorf("decode analysis result: %w", err)
		}
	}
	return a, nil
}

var _ Repo = (*PGRepo)(nil)
