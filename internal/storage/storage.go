package storage

import (
	"context"
	"io"

	"github.com/lamsashop/lamsa/internal"
)

// Storage defines the interface for file storage operations: product images
// and payment-proof uploads. Implementations can use the local filesystem
// or any S3-compatible bucket.
type Storage interface {
	// Put stores a file and returns its URL for retrieval.
	// The key should be a unique identifier (e.g., "proofs/<order>/<uuid>.jpg").
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for accessing a stored file.
	// For local storage this is a relative path; for R2 the full HTTPS URL.
	URL(key string) string

	// List returns the keys under a prefix. Used by the orphan sweep.
	List(ctx context.Context, prefix string) ([]string, error)
}

// NewStorage creates a Storage implementation based on configuration.
// Returns LocalStorage for "local", R2Storage for "r2".
func NewStorage(cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "r2":
		return NewR2Storage(R2Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
			PublicURL:   cfg.R2PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
