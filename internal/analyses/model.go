package analyses

import (
	"time"

	"resume-analyzer/internal/scoring"
)

// Analysis is a persisted scoring report for one uploaded document.
type Analysis struct {
	ID         string
	UserID     string
	DocumentID string
	FileName   string
	FileURL    string
	FileSize   int64
	FileType   string
	Result     scoring.ResumeAnalysis
	AnalyzedAt time.Time
}

// Response is the wire shape of an analysis: file metadata plus the flattened report.
type Response struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	FileURL    string `json:"fileUrl"`
	FileSize   int64  `json:"fileSize"`
	FileType   string `json:"fileType"`
	scoring.ResumeAnalysis
	AnalyzedAt time.Time `json:"analyzedAt"`
}

func toResponse(a Analysis) Response {
	return Response{
		ID:             a.ID,
		DocumentID:     a.DocumentID,
		FileName:       a.FileName,
		FileURL:        a.FileURL,
		FileSize:       a.FileSize,
		FileType:       a.FileType,
		ResumeAnalysis: a.Result,
		AnalyzedAt:     a.AnalyzedAt,
	}
}
