package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/williamokano/oss_cli/pkg/storage"
)

// UploadRequest describes one file upload
type UploadRequest struct {
	LocalPath string
	Key       string
	Expires   time.Duration // signed URL lifetime, 0 = service default
}

// UploadResult is what a successful upload reports back
type UploadResult struct {
	Key         string
	URL         string
	Expires     time.Duration
	Size        int64
	ContentType string
	Duration    time.Duration
}

// DeleteOutcome tells a finished delete from a declined one
type DeleteOutcome int

const (
	DeleteCancelled DeleteOutcome = iota
	DeleteDone
)

// Confirmer asks the user whether key should really be deleted and returns
// the raw answer.
type Confirmer interface {
	Confirm(ctx context.Context, key string) (string, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, key string) (string, error)

func (f ConfirmFunc) Confirm(ctx context.Context, key string) (string, error) {
	return f(ctx, key)
}

// Service uploads and deletes objects in a single bucket
type Service struct {
	backend        storage.Backend
	defaultExpires time.Duration
	logger         zerolog.Logger
}

// NewService creates a service on top of backend
func NewService(backend storage.Backend, defaultExpires time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		backend:        backend,
		defaultExpires: defaultExpires,
		logger:         logger,
	}
}

// DefaultKey builds the object key used when the user gives none
func DefaultKey(localPath, prefix string) string {
	return prefix + filepath.Base(localPath)
}

// Upload streams the local file to the bucket and returns a signed GET URL.
// All preconditions are checked before the backend is touched.
func (s *Service) Upload(ctx context.Context, req UploadRequest, sink ProgressSink) (*UploadResult, error) {
	if req.LocalPath == "" {
		return nil, ErrEmptyPath
	}
	if req.Key == "" {
		return nil, ErrEmptyKey
	}
	expires := req.Expires
	if expires == 0 {
		expires = s.defaultExpires
	}
	if expires < time.Second {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExpiry, expires)
	}
	if sink == nil {
		sink = NopSink{}
	}

	info, err := os.Stat(req.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocalFileNotFound, req.LocalPath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", req.LocalPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, req.LocalPath)
	}

	contentType := ""
	if mtype, err := mimetype.DetectFile(req.LocalPath); err == nil {
		contentType = mtype.String()
	}

	file, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local file: %w", err)
	}
	defer file.Close()

	log := s.logger.With().
		Str("key", req.Key).
		Str("backend", s.backend.Name()).
		Int64("size", info.Size()).
		Logger()
	log.Debug().Str("file", req.LocalPath).Str("content_type", contentType).Msg("starting upload")

	start := time.Now()
	sink.Start(info.Name(), info.Size())
	err = s.backend.Write(ctx, req.Key, &progressReader{r: file, sink: sink}, info.Size(), contentType)
	sink.Finish()
	duration := time.Since(start)

	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("upload failed")
		return nil, err
	}
	log.Info().Dur("duration", duration).Msg("upload succeeded")

	url, err := s.backend.PresignGet(ctx, req.Key, expires)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		Key:         req.Key,
		URL:         url,
		Expires:     expires,
		Size:        info.Size(),
		ContentType: contentType,
		Duration:    duration,
	}, nil
}

// Delete removes key after confirm answered exactly "y". A missing object
// returns ErrObjectNotFound and no delete request is sent.
func (s *Service) Delete(ctx context.Context, key string, confirm Confirmer) (DeleteOutcome, error) {
	if key == "" {
		return DeleteCancelled, ErrEmptyKey
	}

	log := s.logger.With().Str("key", key).Str("backend", s.backend.Name()).Logger()

	exists, err := s.backend.Exists(ctx, key)
	if err != nil {
		return DeleteCancelled, err
	}
	if !exists {
		return DeleteCancelled, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}

	answer, err := confirm.Confirm(ctx, key)
	if err != nil {
		// an interrupted prompt declines
		log.Debug().Err(err).Msg("confirmation aborted")
		return DeleteCancelled, nil
	}
	if strings.TrimSpace(answer) != "y" {
		log.Debug().Str("answer", answer).Msg("delete declined")
		return DeleteCancelled, nil
	}

	if err := s.backend.Delete(ctx, key); err != nil {
		log.Error().Err(err).Msg("delete failed")
		return DeleteCancelled, err
	}
	log.Info().Msg("object deleted")

	return DeleteDone, nil
}
