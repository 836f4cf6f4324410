//go:build integration
// +build integration

package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"

	"github.com/williamokano/oss_cli/pkg/storage"
)

func TestBackendIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, endpoint, err := setupLocalStackContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start LocalStack: %v", err)
	}
	defer container.Terminate(ctx)

	require.NoError(t, createBucket(ctx, endpoint, "test-uploads"))

	backend, err := New(ctx, storage.Config{
		Name: "test-uploads",
		Type: "s3",
		Options: map[string]interface{}{
			"endpoint":          endpoint,
			"region":            "us-east-1",
			"bucket":            "test-uploads",
			"access_key_id":     "test",
			"secret_access_key": "test",
			"force_path_style":  true,
		},
	})
	require.NoError(t, err)
	defer backend.Close()

	t.Run("upload_presign_download_roundtrip", func(t *testing.T) {
		content := bytes.Repeat([]byte("round trip integrity\n"), 4096)
		localPath := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(localPath, content, 0644))

		file, err := os.Open(localPath)
		require.NoError(t, err)
		defer file.Close()

		err = backend.Write(ctx, "custom/key.txt", file, int64(len(content)), "text/plain")
		require.NoError(t, err)

		exists, err := backend.Exists(ctx, "custom/key.txt")
		require.NoError(t, err)
		assert.True(t, exists)

		info, err := backend.Stat(ctx, "custom/key.txt")
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), info.Size)

		raw, err := backend.PresignGet(ctx, "custom/key.txt", 60*time.Second)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))

		resp, err := http.Get(raw)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		downloaded, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, content, downloaded)
	})

	t.Run("missing_object", func(t *testing.T) {
		exists, err := backend.Exists(ctx, "does/not/exist.txt")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = backend.Stat(ctx, "does/not/exist.txt")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		body := bytes.NewReader([]byte("short lived"))
		require.NoError(t, backend.Write(ctx, "tmp/delete-me.txt", body, int64(body.Len()), ""))

		require.NoError(t, backend.Delete(ctx, "tmp/delete-me.txt"))

		exists, err := backend.Exists(ctx, "tmp/delete-me.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func setupLocalStackContainer(ctx context.Context) (*localstack.LocalStackContainer, string, error) {
	lsContainer, err := localstack.RunContainer(ctx,
		testcontainers.WithImage("localstack/localstack:3.0"),
		testcontainers.WithEnv(map[string]string{
			"SERVICES": "s3",
		}),
	)
	if err != nil {
		return nil, "", err
	}

	mappedPort, err := lsContainer.MappedPort(ctx, "4566/tcp")
	if err != nil {
		lsContainer.Terminate(ctx)
		return nil, "", err
	}

	host, err := lsContainer.Host(ctx)
	if err != nil {
		lsContainer.Terminate(ctx)
		return nil, "", err
	}

	return lsContainer, fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), nil
}

func createBucket(ctx context.Context, endpoint, bucketName string) error {
	cfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion("us-east-1"),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}
