package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// Backends accepted by Open.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// FileStorage keeps generated exports, mainly the daily attendance archives.
// Paths are slash separated and relative, e.g. "archive/attendance_2024-01-15.csv".
type FileStorage interface {
	// Upload writes the whole reader under path and returns the stored path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
	// Download fails with ErrFileNotFound for missing paths
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	// GetURL returns a link to the file; expiry is ignored by backends without presigning
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
}

type Config struct {
	Backend   string
	LocalPath string
	BaseURL   string
	S3        S3Config
}

// Open builds the configured backend.
func Open(ctx context.Context, cfg Config) (FileStorage, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		s, err := NewLocalStorage(cfg.LocalPath, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("s3 storage requires a bucket")
		}
		s, err := NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
}
