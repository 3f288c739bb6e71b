package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/distill"
)

func newRequest(ctx context.Context, method, targetURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "invalid URL %q: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	return req, nil
}

// get returns the body of a 200 response. The caller closes it.
func get(ctx context.Context, client *http.Client, targetURL string) (io.ReadCloser, error) {
	req, err := newRequest(ctx, http.MethodGet, targetURL)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request for targetURL returns 200.
func exists(ctx context.Context, client *http.Client, targetURL string) (bool, error) {
	req, err := newRequest(ctx, http.MethodHead, targetURL)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
