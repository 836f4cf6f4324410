package minio

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/oss_cli/pkg/storage"
)

func testConfig() storage.Config {
	return storage.Config{
		Name: "files",
		Type: "minio",
		Options: map[string]interface{}{
			"endpoint":          "http://localhost:9000",
			"region":            "us-east-1",
			"bucket":            "files",
			"access_key_id":     "minioadmin",
			"secret_access_key": "minioadmin",
		},
	}
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("http://localhost:9000")
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure = splitEndpoint("https://play.min.io/")
	assert.Equal(t, "play.min.io", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("oss-cn-hangzhou.aliyuncs.com")
	assert.Equal(t, "oss-cn-hangzhou.aliyuncs.com", host)
	assert.True(t, secure)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: http.StatusNotFound}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestNew(t *testing.T) {
	t.Run("valid_config", func(t *testing.T) {
		backend, err := New(testConfig())
		require.NoError(t, err)
		assert.Equal(t, "files", backend.Name())
		assert.Equal(t, "minio", backend.Type())
	})

	t.Run("missing_endpoint", func(t *testing.T) {
		cfg := testConfig()
		delete(cfg.Options, "endpoint")

		_, err := New(cfg)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

func TestPresignGet(t *testing.T) {
	backend, err := New(testConfig())
	require.NoError(t, err)

	raw, err := backend.PresignGet(context.Background(), "custom/key.txt", 60*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/files/custom/key.txt", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}
