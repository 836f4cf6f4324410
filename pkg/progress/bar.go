package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar renders upload progress as a terminal progress bar sized to the file
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBar creates a progress sink that draws on out
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

func (b *Bar) Start(name string, total int64) {
	if total <= 0 {
		// unknown or empty: render a spinner instead of dividing by zero
		total = -1
	}
	b.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(b.out)
		}),
	)
}

func (b *Bar) Add(n int64) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Add64(n)
}

func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	if !b.bar.IsFinished() {
		// keep the partial bar visible when the upload stopped early
		fmt.Fprintln(b.out)
	}
	b.bar = nil
}
