package storage

import (
	"context"
	"io"
	"time"
)

// Backend represents a handle to a single bucket in an object storage service
type Backend interface {
	// Name returns a human-readable name for this backend (the bucket name)
	Name() string

	// Type returns the backend type (s3, minio, backblaze, local)
	Type() string

	// Write streams body to key. size is the total length of body in bytes
	// and contentType may be empty.
	Write(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete removes an object from the bucket
	Delete(ctx context.Context, key string) error

	// Stat returns metadata about a specific object.
	// Returns an error wrapping ErrNotFound when the object does not exist.
	Stat(ctx context.Context, key string) (*FileInfo, error)

	// Exists checks if an object exists in the bucket
	Exists(ctx context.Context, key string) (bool, error)

	// PresignGet returns a URL granting read access to key for the given duration
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)

	// Close releases resources (connections, sessions)
	Close() error
}

// FileInfo represents metadata about a stored object
type FileInfo struct {
	Key     string    // Object key in the bucket
	Size    int64     // Size in bytes
	ModTime time.Time // Last modification time
}

// Config represents storage backend configuration
type Config struct {
	Name    string                 `json:"name"`    // User-friendly name, usually the bucket
	Type    string                 `json:"type"`    // Backend type: s3, minio, backblaze, local
	Options map[string]interface{} `json:"options"` // Backend-specific options
}
