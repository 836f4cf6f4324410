package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/williamokano/oss_cli/pkg/storage"
)

// compile-time check that Backend satisfies the storage.Backend interface.
var _ storage.Backend = (*Backend)(nil)

// Backend wraps the MinIO SDK for any S3-compatible server.
type Backend struct {
	name   string
	client *minio.Client
	bucket string
}

func init() {
	storage.RegisterBackend("minio", func(ctx context.Context, cfg storage.Config) (storage.Backend, error) {
		return New(cfg)
	})
}

// New creates a new MinIO backend. The endpoint scheme decides whether TLS is used;
// a bare host defaults to TLS.
func New(cfg storage.Config) (*Backend, error) {
	rawEndpoint, err := storage.RequireString(cfg.Options, "endpoint")
	if err != nil {
		return nil, err
	}
	bucket, err := storage.RequireString(cfg.Options, "bucket")
	if err != nil {
		return nil, err
	}
	accessKey, err := storage.RequireString(cfg.Options, "access_key_id")
	if err != nil {
		return nil, err
	}
	secretKey, err := storage.RequireString(cfg.Options, "secret_access_key")
	if err != nil {
		return nil, err
	}
	region, _ := cfg.Options["region"].(string)

	endpoint, secure := splitEndpoint(rawEndpoint)

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, storage.WrapError(cfg.Name, "init", err)
	}

	return &Backend{
		name:   cfg.Name,
		client: mc,
		bucket: bucket,
	}, nil
}

func (b *Backend) Name() string { return b.name }
func (b *Backend) Type() string { return "minio" }

// Write streams body into the bucket without buffering it to disk
func (b *Backend) Write(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
	}

	if _, err := b.client.PutObject(ctx, b.bucket, key, body, size, opts); err != nil {
		return storage.WrapError(b.name, "upload", fmt.Errorf("put object %q: %w", key, err))
	}
	return nil
}

// Delete removes an object from the bucket by key
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return storage.WrapError(b.name, "delete", fmt.Errorf("remove object %q: %w", key, err))
	}
	return nil
}

// Stat returns metadata about an object
func (b *Backend) Stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	info, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.WrapError(b.name, "stat", storage.ErrNotFound)
		}
		return nil, storage.WrapError(b.name, "stat", err)
	}

	return &storage.FileInfo{
		Key:     key,
		Size:    info.Size,
		ModTime: info.LastModified,
	}, nil
}

// Exists checks if an object exists
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

// PresignGet returns a presigned GET URL valid for expires
func (b *Backend) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	u, err := b.client.PresignedGetObject(ctx, b.bucket, key, expires, url.Values{})
	if err != nil {
		return "", storage.WrapError(b.name, "presign", err)
	}
	return u.String(), nil
}

// Close is a no-op for MinIO
func (b *Backend) Close() error {
	return nil
}

func splitEndpoint(endpoint string) (string, bool) {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	default:
		return endpoint, true
	}
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
