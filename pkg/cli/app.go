package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamokano/oss_cli/pkg/config"
	"github.com/williamokano/oss_cli/pkg/storage"
	"github.com/williamokano/oss_cli/pkg/transfer"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg      *config.Config
	backend  storage.Backend
	svc      *transfer.Service
	prompter *Prompter
	out      io.Writer
	newSink  func() transfer.ProgressSink
}

// closing wraps a command so the backend is closed however the command ends.
// A close error is only reported when the command itself succeeded.
func (a *app) closing(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if a.backend == nil {
				return
			}
			if cerr := a.backend.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close backend: %w", cerr)
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) upload(ctx context.Context, localPath, key string, expires time.Duration) (*transfer.UploadResult, error) {
	if key == "" && localPath != "" {
		key = transfer.DefaultKey(localPath, a.cfg.GetKeyPrefix())
	}

	result, err := a.svc.Upload(ctx, transfer.UploadRequest{
		LocalPath: localPath,
		Key:       key,
		Expires:   expires,
	}, a.newSink())
	if err != nil {
		return nil, err
	}

	printUploadReport(a.out, result)
	return result, nil
}

func (a *app) delete(ctx context.Context, key string) error {
	outcome, err := a.svc.Delete(ctx, key, a.prompter)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch outcome {
	case transfer.DeleteDone:
		fmt.Fprintf(a.out, "🗑️  Deleted: %s\n", key)
	default:
		fmt.Fprintln(a.out, "Cancelled")
	}
	return nil
}

// afterUpload offers to delete the object that was just uploaded
func (a *app) afterUpload(ctx context.Context, key string) error {
	answer, err := a.prompter.Ask(ctx, "Press Enter to exit, or d to delete it: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if strings.EqualFold(answer, "d") {
		return a.delete(ctx, key)
	}
	return nil
}
