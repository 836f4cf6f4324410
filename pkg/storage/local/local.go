package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/williamokano/oss_cli/pkg/storage"
)

// Backend stores objects as files under <endpoint>/<bucket>. It needs no
// network and is used for offline runs and tests.
type Backend struct {
	name     string
	basePath string
}

func init() {
	storage.RegisterBackend("local", func(ctx context.Context, cfg storage.Config) (storage.Backend, error) {
		return New(cfg)
	})
}

// New creates a new local filesystem backend
func New(cfg storage.Config) (*Backend, error) {
	root, err := storage.RequireString(cfg.Options, "endpoint")
	if err != nil {
		return nil, err
	}
	bucket, err := storage.RequireString(cfg.Options, "bucket")
	if err != nil {
		return nil, err
	}

	path, err := filepath.Abs(filepath.Join(root, bucket))
	if err != nil {
		return nil, storage.WrapError(cfg.Name, "init", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, storage.WrapError(cfg.Name, "init", fmt.Errorf("failed to create directory: %w", err))
	}

	return &Backend{
		name:     cfg.Name,
		basePath: path,
	}, nil
}

func (b *Backend) Name() string { return b.name }
func (b *Backend) Type() string { return "local" }

// Write copies body to the file named by key
func (b *Backend) Write(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	destFullPath, err := b.resolve(key)
	if err != nil {
		return storage.WrapError(b.name, "write", err)
	}

	if err := os.MkdirAll(filepath.Dir(destFullPath), 0755); err != nil {
		return storage.WrapError(b.name, "write", err)
	}

	dest, err := os.Create(destFullPath)
	if err != nil {
		return storage.WrapError(b.name, "write", err)
	}
	if err := copyAndClose(dest, body); err != nil {
		return storage.WrapError(b.name, "write", err)
	}

	return nil
}

// copyAndClose copies body into dest and closes it, returning the first error
func copyAndClose(dest io.WriteCloser, body io.Reader) error {
	if _, err := io.Copy(dest, body); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}

// Delete removes a file from the backend
func (b *Backend) Delete(ctx context.Context, key string) error {
	fullPath, err := b.resolve(key)
	if err != nil {
		return storage.WrapError(b.name, "delete", err)
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return storage.WrapError(b.name, "delete", storage.ErrNotFound)
		}
		return storage.WrapError(b.name, "delete", err)
	}
	return nil
}

// Stat returns metadata about a file
func (b *Backend) Stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	fullPath, err := b.resolve(key)
	if err != nil {
		return nil, storage.WrapError(b.name, "stat", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.WrapError(b.name, "stat", storage.ErrNotFound)
		}
		return nil, storage.WrapError(b.name, "stat", err)
	}
	if info.IsDir() {
		return nil, storage.WrapError(b.name, "stat", storage.ErrNotFound)
	}

	return &storage.FileInfo{
		Key:     key,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Exists checks if a file exists
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.Stat(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PresignGet returns a file:// URL. The lifetime is recorded in X-Expires but
// nothing enforces it.
func (b *Backend) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	fullPath, err := b.resolve(key)
	if err != nil {
		return "", storage.WrapError(b.name, "presign", err)
	}

	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(fullPath),
		RawQuery: url.Values{"X-Expires": {strconv.FormatInt(int64(expires/time.Second), 10)}}.Encode(),
	}
	return u.String(), nil
}

// Close is a no-op for local backend
func (b *Backend) Close() error {
	return nil
}

// resolve maps an object key to a path that stays inside the base directory
func (b *Backend) resolve(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(b.basePath, rel), nil
}
