package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/williamokano/oss_cli/pkg/transfer"
)

var _ transfer.ProgressSink = (*Bar)(nil)

func TestBar(t *testing.T) {
	t.Run("complete_upload", func(t *testing.T) {
		var out bytes.Buffer
		bar := NewBar(&out)

		bar.Start("video.mp4", 2048)
		bar.Add(1024)
		bar.Add(1024)
		bar.Finish()

		assert.Contains(t, out.String(), "video.mp4")
		assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
	})

	t.Run("interrupted_upload_keeps_partial_bar", func(t *testing.T) {
		var out bytes.Buffer
		bar := NewBar(&out)

		bar.Start("a.bin", 1000)
		bar.Add(100)
		bar.Finish()

		assert.NotContains(t, out.String(), "100%")
		assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
	})

	t.Run("events_without_start_are_ignored", func(t *testing.T) {
		var out bytes.Buffer
		bar := NewBar(&out)

		bar.Add(10)
		bar.Finish()

		assert.Empty(t, out.String())
	})
}
