package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/oss_cli/pkg/storage"
)

func testOptions() map[string]interface{} {
	return map[string]interface{}{
		"endpoint":          "http://localhost:9000",
		"region":            "us-east-1",
		"bucket":            "test-bucket",
		"access_key_id":     "test",
		"secret_access_key": "test",
		"force_path_style":  true,
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("all_options", func(t *testing.T) {
		cfg, err := parseConfig(testOptions())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000", cfg.Endpoint)
		assert.Equal(t, "us-east-1", cfg.Region)
		assert.Equal(t, "test-bucket", cfg.Bucket)
		assert.True(t, cfg.ForcePathStyle)
	})

	t.Run("missing_bucket", func(t *testing.T) {
		options := testOptions()
		delete(options, "bucket")

		_, err := parseConfig(options)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "bucket")
	})

	t.Run("missing_secret", func(t *testing.T) {
		options := testOptions()
		options["secret_access_key"] = ""

		_, err := parseConfig(options)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "https://oss-cn-hangzhou.aliyuncs.com", normalizeEndpoint("oss-cn-hangzhou.aliyuncs.com"))
	assert.Equal(t, "https://oss-cn-hangzhou.aliyuncs.com", normalizeEndpoint("https://oss-cn-hangzhou.aliyuncs.com/"))
	assert.Equal(t, "http://localhost:4566", normalizeEndpoint("http://localhost:4566"))
	assert.Equal(t, "", normalizeEndpoint("  "))
}

func TestIsNotFound(t *testing.T) {
	t.Run("typed_not_found", func(t *testing.T) {
		assert.True(t, isNotFound(fmt.Errorf("head: %w", &types.NotFound{})))
	})

	t.Run("status_404", func(t *testing.T) {
		err := &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusNotFound}},
				Err:      errors.New("not found"),
			},
		}
		assert.True(t, isNotFound(err))
	})

	t.Run("status_403", func(t *testing.T) {
		err := &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusForbidden}},
				Err:      errors.New("forbidden"),
			},
		}
		assert.False(t, isNotFound(err))
	})

	t.Run("other_error", func(t *testing.T) {
		assert.False(t, isNotFound(errors.New("boom")))
	})
}

func TestPresignGet(t *testing.T) {
	ctx := context.Background()
	backend, err := New(ctx, storage.Config{Name: "test-bucket", Type: "s3", Options: testOptions()})
	require.NoError(t, err)
	assert.Equal(t, "test-bucket", backend.Name())
	assert.Equal(t, "s3", backend.Type())

	t.Run("expiry_is_embedded", func(t *testing.T) {
		raw, err := backend.PresignGet(ctx, "custom/key.txt", 60*time.Second)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", u.Host)
		assert.Equal(t, "/test-bucket/custom/key.txt", u.Path)
		assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	})

	t.Run("default_lifetime", func(t *testing.T) {
		raw, err := backend.PresignGet(ctx, "shirai-kuroko/video.mp4", 86400*time.Second)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "86400", u.Query().Get("X-Amz-Expires"))
	})
}

func TestNew_ClientOptions(t *testing.T) {
	backend, err := New(context.Background(), storage.Config{Name: "test-bucket", Type: "s3", Options: testOptions()})
	require.NoError(t, err)

	opts := backend.client.Options()
	assert.Equal(t, aws.RequestChecksumCalculationWhenRequired, opts.RequestChecksumCalculation)
	assert.Equal(t, aws.ResponseChecksumValidationWhenRequired, opts.ResponseChecksumValidation)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.Equal(t, "us-east-1", opts.Region)
}
