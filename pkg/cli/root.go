package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamokano/oss_cli/pkg/config"
	"github.com/williamokano/oss_cli/pkg/logger"
	"github.com/williamokano/oss_cli/pkg/progress"
	"github.com/williamokano/oss_cli/pkg/storage"
	"github.com/williamokano/oss_cli/pkg/transfer"

	// Import backends to register them
	_ "github.com/williamokano/oss_cli/pkg/storage/backblaze"
	_ "github.com/williamokano/oss_cli/pkg/storage/local"
	_ "github.com/williamokano/oss_cli/pkg/storage/minio"
	_ "github.com/williamokano/oss_cli/pkg/storage/s3"
)

// ExitInterrupted is the exit code used when the process was interrupted
const ExitInterrupted = 130

// Options wires the command to its console and storage. Zero fields fall
// back to the process streams and the registered backends.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	NewBackend func(ctx context.Context, cfg storage.Config) (storage.Backend, error)
	NewSink    func(w io.Writer) transfer.ProgressSink
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.NewBackend == nil {
		o.NewBackend = storage.NewFactory().Create
	}
	if o.NewSink == nil {
		o.NewSink = func(w io.Writer) transfer.ProgressSink {
			return progress.NewBar(w)
		}
	}
	return o
}

// NewRootCommand builds the oss_cli command tree. Without arguments it runs
// the interactive loop.
func NewRootCommand(opts Options) *cobra.Command {
	opts = opts.withDefaults()

	var envFile string
	a := &app{
		prompter: NewPrompter(opts.In, opts.Out),
		out:      opts.Out,
		newSink: func() transfer.ProgressSink {
			return opts.NewSink(opts.Err)
		},
	}

	root := &cobra.Command{
		Use:           "oss_cli",
		Short:         "Upload files to object storage and share signed download URLs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(envFile)
			if err != nil {
				return err
			}
			cfg, err := config.ParseConfig(path, cmd.Flags())
			if err != nil {
				return err
			}
			logger.Output = opts.Err
			logger.Init(cfg.GetLogLevel(), cfg.GetLogFormat())
			log := logger.Get()
			log.Debug().
				Str("config_file", cfg.Path).
				Str("provider", cfg.GetProvider()).
				Str("bucket", cfg.BucketName).
				Msg("configuration loaded")

			backend, err := opts.NewBackend(cmd.Context(), cfg.StorageConfig())
			if err != nil {
				return fmt.Errorf("failed to create %s backend: %w", cfg.GetProvider(), err)
			}

			a.cfg = cfg
			a.backend = backend
			a.svc = transfer.NewService(backend, cfg.GetSignExpires(), *log)
			return nil
		},
		RunE: a.closing(func(cmd *cobra.Command, args []string) error {
			return a.interactive(cmd.Context())
		}),
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&envFile, "env", "", "path to the .env file (default: OSS_ENV_FILE or .env next to the executable)")
	root.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(newUploadCommand(a), newDeleteCommand(a))

	return root
}

func newUploadCommand(a *app) *cobra.Command {
	var expiresSec int

	cmd := &cobra.Command{
		Use:   "u <local_path> [oss_key]",
		Short: "Upload a file and print a signed download URL",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.closing(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			localPath := args[0]
			key := ""
			if len(args) > 1 {
				key = args[1]
			}

			var expires time.Duration
			if cmd.Flags().Changed("expires") {
				if expiresSec <= 0 {
					return fmt.Errorf("%w: %d", transfer.ErrInvalidExpiry, expiresSec)
				}
				expires = time.Duration(expiresSec) * time.Second
			}

			result, err := a.upload(ctx, localPath, key, expires)
			if err != nil {
				return err
			}
			return a.afterUpload(ctx, result.Key)
		}),
	}
	cmd.Flags().IntVar(&expiresSec, "expires", 0, "signed URL lifetime in seconds (default: OSS_SIGN_EXPIRES)")

	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "d <oss_key>",
		Short: "Delete an object after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: a.closing(func(cmd *cobra.Command, args []string) error {
			return a.delete(cmd.Context(), args[0])
		}),
	}
}

// Execute runs the command tree with args and returns the process exit code
func Execute(ctx context.Context, opts Options, args []string) int {
	opts = opts.withDefaults()

	root := NewRootCommand(opts)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	return reportFailure(opts.Err, err)
}

func reportFailure(w io.Writer, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Interrupted")
		return ExitInterrupted
	case transfer.IsInputError(err):
		reportInputError(w, err)
	default:
		fmt.Fprintf(w, "❌ %v\n", err)
	}
	return 1
}
