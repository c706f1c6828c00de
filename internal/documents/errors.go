package documents

import "errors"

// MaxUploadBytes is the largest accepted upload.
const MaxUploadBytes int64 = 5 << 20

const (
	msgTooLarge        = "File too large. Maximum size is 5MB"
	msgUnsupportedType = "Invalid file type. Only PDF, DOCX, and TXT are supported"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)
