package transfer

import "io"

// ProgressSink receives byte-level upload progress
type ProgressSink interface {
	// Start is called once before the first byte with the total size
	Start(name string, total int64)
	// Add reports n more bytes sent
	Add(n int64)
	// Finish is called once after the transfer ended, successfully or not
	Finish()
}

// NopSink discards progress events
type NopSink struct{}

func (NopSink) Start(string, int64) {}
func (NopSink) Add(int64)           {}
func (NopSink) Finish()             {}

// progressReader reports every chunk read from r to sink
type progressReader struct {
	r    io.Reader
	sink ProgressSink
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sink.Add(int64(n))
	}
	return n, err
}
