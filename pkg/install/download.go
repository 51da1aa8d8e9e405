package install

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
)

// download fetches url and returns the (possibly progress-wrapped)
// response body together with a finish callback that must run after
// the body has been consumed. No retries: transient failures surface
// to the caller.
func download(url string) (io.ReadCloser, func(), error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected response HTTP %d from %s", resp.StatusCode, url)
	}

	reader, finish := progress(resp.Body, resp.ContentLength)
	return &bodyReader{Reader: reader, closer: resp.Body}, finish, nil
}

type bodyReader struct {
	io.Reader
	closer io.Closer
}

func (b *bodyReader) Close() error {
	return b.closer.Close()
}

// progress wraps reader with a terminal progress bar when stderr is a
// TTY; in non-interactive runs the reader passes through untouched.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}
