package cli

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/williamokano/oss_cli/pkg/transfer"
)

func printUploadReport(w io.Writer, result *transfer.UploadResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Upload complete")
	fmt.Fprintf(w, "Key:  %s\n", result.Key)
	fmt.Fprintf(w, "Size: %s", humanize.Bytes(uint64(result.Size)))
	if result.ContentType != "" {
		fmt.Fprintf(w, " (%s)", result.ContentType)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "URL (%ds):\n%s\n\n", int64(result.Expires.Seconds()), result.URL)
	fmt.Fprintln(w, "Download:")
	fmt.Fprintf(w, "  %s\n\n", downloadCommand(result))
}

// downloadCommand returns a curl command line that saves the object under its base name
func downloadCommand(result *transfer.UploadResult) string {
	return fmt.Sprintf("curl -L -o %s %s", shellQuote(path.Base(result.Key)), shellQuote(result.URL))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// reportInputError prints an error caused by user input
func reportInputError(w io.Writer, err error) {
	if errors.Is(err, transfer.ErrObjectNotFound) {
		fmt.Fprintf(w, "⚠️  %v\n", err)
		return
	}
	fmt.Fprintf(w, "❌ %v\n", err)
}
