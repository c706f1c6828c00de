package documents

import "time"

// Document represents an uploaded resume file owned by a user.
type Document struct {
	ID              string
	UserID          string
	FileName        string
	MimeType        string
	SizeBytes       int64
	StorageProvider string
	StorageKey      string
	SHA256          string
	CreatedAt       time.Time
}
