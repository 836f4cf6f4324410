package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/williamokano/oss_cli/pkg/transfer"
)

const helpText = `Commands:
  u  upload a local file and print a signed download URL
  d  delete an object (asks for confirmation)
  h  show this help
  q  quit
`

// interactive runs the command loop until q, end of input or interrupt.
// Input errors are reported and the loop goes on. Anything else ends it.
func (a *app) interactive(ctx context.Context) error {
	fmt.Fprintln(a.out, "OSS CLI (u/d/h/q)")
	fmt.Fprint(a.out, helpText)

	for {
		line, err := a.prompter.Ask(ctx, "oss> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprint(a.out, helpText)
			continue
		case "u":
			err = a.interactiveUpload(ctx)
		case "d":
			err = a.interactiveDelete(ctx)
		default:
			fmt.Fprintf(a.out, "Unknown command %q, type h for help\n", line)
			continue
		}

		switch {
		case err == nil:
		case transfer.IsInputError(err):
			reportInputError(a.out, err)
		case isAborted(err) && ctx.Err() == nil:
			// input closed mid-command, the next prompt ends the loop
		default:
			return err
		}
	}
}

func (a *app) interactiveUpload(ctx context.Context) error {
	localPath, err := a.prompter.Ask(ctx, "local path: ")
	if err != nil {
		return err
	}
	if localPath == "" {
		return transfer.ErrEmptyPath
	}
	key, err := a.prompter.Ask(ctx, "oss key (enter = use file name): ")
	if err != nil {
		return err
	}

	_, err = a.upload(ctx, localPath, key, 0)
	return err
}

func (a *app) interactiveDelete(ctx context.Context) error {
	key, err := a.prompter.Ask(ctx, "oss key: ")
	if err != nil {
		return err
	}
	return a.delete(ctx, key)
}
