package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/storage/object"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/shared/util"
)

var allowedTypes = map[string]bool{
	extract.MimePDF:  true,
	extract.MimeDOCX: true,
	extract.MimeText: true,
}

// UploadInput describes one incoming file.
type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	// Size is the declared size, or a negative value when unknown.
	Size int64
	Body io.Reader
}

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            DocumentsRepo
	StorageProvider string
	Now             func() time.Time
}

// ResolveType returns the effective supported content type for an upload.
func ResolveType(contentType, fileName string) (string, error) {
	mime := extract.NormalizeMimeType(contentType, fileName, nil)
	if !allowedTypes[mime] {
		return "", ErrUnsupportedType
	}
	return mime, nil
}

// Upload validates the file, saves it to object storage and records the document.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Document, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.FileName) == "" || in.Body == nil {
		return Document{}, ErrInvalidInput
	}
	if in.Size > MaxUploadBytes {
		metrics.IncUpload("too_large")
		return Document{}, ErrTooLarge
	}
	mime, err := ResolveType(in.ContentType, in.FileName)
	if err != nil {
		metrics.IncUpload("unsupported_type")
		return Document{}, err
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, MaxUploadBytes+1))
	if err != nil {
		metrics.IncUpload("error")
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		metrics.IncUpload("too_large")
		return Document{}, ErrTooLarge
	}
	if len(data) == 0 {
		metrics.IncUpload("invalid")
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	storageKey, size, err := s.Store.Save(ctx, in.UserID, in.FileName, mime, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, util.ErrInvalidFileName) {
			metrics.IncUpload("invalid")
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		metrics.IncUpload("error")
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		FileName:        strings.TrimSpace(in.FileName),
		MimeType:        mime,
		SizeBytes:       size,
		StorageProvider: s.provider(),
		StorageKey:      storageKey,
		SHA256:          util.HashBytes(data),
		CreatedAt:       s.now(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("documents.cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr,
			})
		}
		metrics.IncUpload("error")
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	metrics.IncUpload("ok")
	metrics.ObserveUploadBytes(size)
	telemetry.Info("documents.uploaded", map[string]any{
		"document_id": doc.ID,
		"user_id":     doc.UserID,
		"mime_type":   doc.MimeType,
		"size_bytes":  doc.SizeBytes,
	})
	return doc, nil
}

// Get returns a document owned by userID.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, ErrInvalidInput
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// URL returns a retrievable location for the document's file.
func (s *Service) URL(ctx context.Context, doc Document) (string, error) {
	return s.Store.URL(ctx, doc.StorageKey)
}

// ExtractText returns the plain text of the stored document.
func (s *Service) ExtractText(ctx context.Context, doc Document) (string, error) {
	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		return "", err
	}
	return text, nil
}

func (s *Service) provider() string {
	if s.StorageProvider == "" {
		return "local"
	}
	return s.StorageProvider
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
