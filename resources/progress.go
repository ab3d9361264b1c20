package resources

import (
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
)

const DefaultReportInterval = 10 * time.Second

// WriteCounter
// Wraps a writer, counting the bytes written through it, and every
// Interval it logs how much of Path has been written so far.
type WriteCounter struct {
	Writer   io.Writer
	Total    uint64
	Last     time.Time
	Interval time.Duration
	Reported bool
	Path     string
}

func NewWriteCounter(w io.Writer, path string) *WriteCounter {
	return &WriteCounter{
		Writer:   w,
		Last:     time.Now(),
		Interval: DefaultReportInterval,
		Path:     path,
	}
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n, err := wc.Writer.Write(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last) >= wc.Interval {
		wc.Reported = true
		wc.Last = time.Now()
		log.Printf("Writing %s... %s written.", wc.Path,
			humanize.Bytes(wc.Total))
	}
	return n, err
}
