package analyses

import "errors"

// MinTextRunes is the shortest extracted text accepted for scoring.
const MinTextRunes = 50

var (
	ErrNotFound         = errors.New("not found")
	ErrTextTooShort     = errors.New("resume text too short")
	ErrExtractionFailed = errors.New("text extraction failed")
)

const (
	msgTextTooShort   = "Resume text is too short. Please upload a complete resume."
	msgAnalysisFailed = "Analysis failed. Please try again."
)
