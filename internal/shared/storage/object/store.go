package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"resume-analyzer/internal/shared/util"
)

// ErrInvalidKey is returned for storage keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore defines the contract for saving and retrieving uploaded files.
type ObjectStore interface {
	Save(ctx context.Context, userID, fileName, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// URL returns a retrievable location for the object.
	URL(ctx context.Context, storageKey string) (string, error)
	Delete(ctx context.Context, storageKey string) error
}

// NewKey builds the per-user storage key for a new upload: a hashed user
// namespace followed by a unique, sanitized file name.
func NewKey(userID, fileName string, id string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	if id == "" {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return util.HashUserKey(userID) + "/" + id + "_" + sanitized, nil
}
