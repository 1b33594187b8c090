package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPFetcher loads scripts over HTTP. A 2xx response counts as loaded;
// transport errors, timeouts and other statuses count as failures.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a fetcher whose requests are bounded by timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// NewHTTPFetcherWithClient uses a caller-supplied client.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("build script request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch script: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch script: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// StaticFetcher resolves every load immediately with Err. With a nil Err it
// serves offline deployments where pages render script tags the browser
// fetches itself.
type StaticFetcher struct {
	Err error
}

func (f StaticFetcher) Fetch(context.Context, string) error {
	return f.Err
}
