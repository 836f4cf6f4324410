package backblaze

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"

	"github.com/williamokano/oss_cli/pkg/storage"
)

type Backend struct {
	name   string
	client *b2.Client
	bucket *b2.Bucket
}

func init() {
	storage.RegisterBackend("backblaze", func(ctx context.Context, cfg storage.Config) (storage.Backend, error) {
		return New(ctx, cfg)
	})
}

// New creates a new Backblaze B2 backend. The access key id is the B2 account
// (or key) id and the secret is the application key.
func New(ctx context.Context, cfg storage.Config) (*Backend, error) {
	accountID, err := storage.RequireString(cfg.Options, "access_key_id")
	if err != nil {
		return nil, err
	}
	applicationKey, err := storage.RequireString(cfg.Options, "secret_access_key")
	if err != nil {
		return nil, err
	}
	bucketName, err := storage.RequireString(cfg.Options, "bucket")
	if err != nil {
		return nil, err
	}

	client, err := b2.NewClient(ctx, accountID, applicationKey)
	if err != nil {
		return nil, authError(cfg.Name, err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, storage.WrapError(cfg.Name, "get bucket", err)
	}

	return &Backend{
		name:   cfg.Name,
		client: client,
		bucket: bucket,
	}, nil
}

// authError keeps the SDK's message and marks it as an authentication failure
func authError(name string, err error) error {
	return storage.WrapError(name, "init", fmt.Errorf("%w: %w", storage.ErrAuthFailed, err))
}

func (b *Backend) Name() string { return b.name }
func (b *Backend) Type() string { return "backblaze" }

// Write uploads body to B2
func (b *Backend) Write(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	var opts []b2.WriterOption
	if contentType != "" {
		opts = append(opts, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))
	}

	writer := b.bucket.Object(key).NewWriter(ctx, opts...)

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()
		return storage.WrapError(b.name, "upload", err)
	}

	if err := writer.Close(); err != nil {
		return storage.WrapError(b.name, "upload", err)
	}

	return nil
}

// Delete removes a file from B2
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Object(key).Delete(ctx); err != nil {
		return storage.WrapError(b.name, "delete", err)
	}

	return nil
}

// Stat returns file metadata
func (b *Backend) Stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	attrs, err := b.bucket.Object(key).Attrs(ctx)
	if err != nil {
		if b2.IsNotExist(err) {
			return nil, storage.WrapError(b.name, "stat", storage.ErrNotFound)
		}
		return nil, storage.WrapError(b.name, "stat", err)
	}

	return &storage.FileInfo{
		Key:     key,
		Size:    attrs.Size,
		ModTime: attrs.UploadTimestamp,
	}, nil
}

// Exists checks if object exists
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

// PresignGet returns a download URL carrying a B2 download authorization token
func (b *Backend) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	u, err := b.bucket.Object(key).AuthURL(ctx, expires, "")
	if err != nil {
		return "", storage.WrapError(b.name, "presign", err)
	}
	return u.String(), nil
}

// Close releases resources
func (b *Backend) Close() error {
	return nil
}
