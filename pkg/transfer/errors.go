package transfer

import "errors"

var (
	ErrEmptyPath         = errors.New("local path must not be empty")
	ErrEmptyKey          = errors.New("object key must not be empty")
	ErrInvalidExpiry     = errors.New("expiry must be a positive number of seconds")
	ErrLocalFileNotFound = errors.New("local file does not exist")
	ErrNotRegularFile    = errors.New("local path is not a regular file")
	ErrObjectNotFound    = errors.New("object does not exist")
)

// IsInputError reports whether err was caused by user input rather than by
// the storage service. An interactive session reports these and keeps going.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyPath) ||
		errors.Is(err, ErrEmptyKey) ||
		errors.Is(err, ErrInvalidExpiry) ||
		errors.Is(err, ErrLocalFileNotFound) ||
		errors.Is(err, ErrNotRegularFile) ||
		errors.Is(err, ErrObjectNotFound)
}
