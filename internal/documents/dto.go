package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(doc Document, url string) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		URL:        url,
		FileName:   doc.FileName,
		FileSize:   doc.SizeBytes,
		FileType:   doc.MimeType,
		UploadedAt: doc.CreatedAt,
	}
}
