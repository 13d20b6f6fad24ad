package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrInvalidPath      = errors.New("invalid file path")
	ErrInvalidSignature = errors.New("invalid or expired file link")
)

// FileStorage keeps generated documents such as payslips.
type FileStorage interface {
	// Upload stores the content at path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download returns ErrFileNotFound when nothing is stored at path.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// GetURL returns a link that stops working after expiry.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
