package backblaze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/williamokano/oss_cli/pkg/storage"
)

func TestNew_MissingOptions(t *testing.T) {
	full := map[string]interface{}{
		"access_key_id":     "0012345",
		"secret_access_key": "K001secret",
		"bucket":            "uploads",
	}

	for _, missing := range []string{"access_key_id", "secret_access_key", "bucket"} {
		t.Run("missing_"+missing, func(t *testing.T) {
			options := make(map[string]interface{}, len(full))
			for k, v := range full {
				if k != missing {
					options[k] = v
				}
			}

			backend, err := New(context.Background(), storage.Config{Name: "uploads", Type: "backblaze", Options: options})
			assert.Nil(t, backend)
			assert.ErrorIs(t, err, storage.ErrInvalidConfig)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestAuthError(t *testing.T) {
	sdkErr := errors.New("401 unauthorized: bad_auth_token")

	err := authError("uploads", sdkErr)

	assert.ErrorIs(t, err, storage.ErrAuthFailed)
	assert.ErrorIs(t, err, sdkErr)
	assert.Equal(t, "init (uploads): authentication failed: 401 unauthorized: bad_auth_token", err.Error())
}

func TestNew_AuthorizationFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend, err := New(ctx, storage.Config{Name: "uploads", Type: "backblaze", Options: map[string]interface{}{
		"access_key_id":     "0012345",
		"secret_access_key": "K001secret",
		"bucket":            "uploads",
	}})

	assert.Nil(t, backend)
	assert.ErrorIs(t, err, storage.ErrAuthFailed)
	assert.NotEqual(t, "init (uploads): authentication failed", err.Error())
}
