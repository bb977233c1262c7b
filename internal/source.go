package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/prongbang/callx"
)

// Open returns the contents of a local file or, for http(s) locations,
// the body of a GET request.
func Open(ctx context.Context, options SourceOptions) (io.ReadCloser, error) {
	if !isRemote(options.Location) {
		f, err := os.Open(options.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", options.Location, err)
		}
		return f, nil
	}

	data, err := fetch(ctx, options)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Seconds, for callx.
const fetchTimeout = 10

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func fetch(ctx context.Context, options SourceOptions) ([]byte, error) {
	u, err := url.Parse(options.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source URL: %w", err)
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	client := callx.New(callx.Config{
		BaseURL: u.Scheme + "://" + u.Host,
		Timeout: fetchTimeout,
	})

	// callx has no context support, so honour cancellation around the call.
	var (
		data     []byte
		fetchErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		resp := client.Get(u.RequestURI())
		if resp.Code != 200 {
			fetchErr = fmt.Errorf("failed to get %s: status %d: %s", options.Location, resp.Code, string(resp.Data))
			return
		}
		data = resp.Data
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}
	return data, fetchErr
}

// LoadReadings reads and parses the CSV described by options.
func LoadReadings(ctx context.Context, options SourceOptions) ([]Reading, error) {
	rc, err := Open(ctx, options)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	readings, err := ReadReadings(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", options.Location, err)
	}
	return readings, nil
}
