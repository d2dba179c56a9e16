package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends when set
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - Dialer.KeepAlive: how long reusable TCP connections are kept
//   - MaxIdleConns: 100, so bursts do not exhaust connections
//   - IdleConnTimeout: how long idle connections are kept
//   - TLSHandshakeTimeout: upper bound for the HTTPS handshake
//   - Client.Timeout: whole-request timeout passed by the caller
//
// http.DefaultClient has no timeout; always use a client from here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// StatusError is returned by Client.Get for responses with status >= 400.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client performs plain GET requests and reports how long each transfer took.
type Client struct {
	hc  *http.Client
	now func() time.Time
}

// NewClient wraps hc. A nil hc gets NewHTTPClient(10*time.Second).
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = NewHTTPClient(10 * time.Second)
	}
	return &Client{hc: hc, now: time.Now}
}

// Get fetches url and returns the body together with the wall time spent on
// the request, including reading the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, time.Duration, error) {
	start := c.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, c.now().Sub(start), err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := c.now().Sub(start)
	if err != nil {
		return nil, elapsed, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		snippet := body
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, elapsed, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return body, elapsed, nil
}
