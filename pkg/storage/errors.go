package storage

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrConnFailed       = errors.New("connection failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("object not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// IsNotFound reports whether err means the object does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapError adds context to an error
func WrapError(backend, operation string, err error) error {
	return fmt.Errorf("%s (%s): %w", operation, backend, err)
}

// RequireString extracts a mandatory string option
func RequireString(options map[string]interface{}, name string) (string, error) {
	v, ok := options[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: missing required option: %s", ErrInvalidConfig, name)
	}
	return v, nil
}
