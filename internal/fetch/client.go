package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves raw page content for a URL. Implementations may fail
// transiently; callers decide whether a failure aborts or skips the unit
// of work it occurred in.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Client fetches catalog pages over HTTP. It retries transient failures
// before surfacing an error and caps how much of a response body is kept.
type Client struct {
	// http is the underlying resty client with timeout and retry policy.
	http *resty.Client

	// maxBodySize is the byte cap applied to response bodies.
	maxBodySize int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRetryCount sets how many times a failed request is retried.
func WithRetryCount(n int) ClientOption {
	return func(c *Client) {
		c.http.SetRetryCount(n)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// WithMaxBodySize sets the byte cap on response bodies. Bodies over the
// cap are truncated, not rejected; listing markup needed for pagination
// and link extraction sits at the front of the document.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// NewClient creates a Client with sane defaults for catalog scraping.
func NewClient(opts ...ClientOption) *Client {
	http := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Server-side errors are worth one more attempt; 4xx are not.
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")

	c := &Client{
		http:        http,
		maxBodySize: 2 * 1024 * 1024,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves the page at pageURL and returns its body as a string.
// Non-2xx responses are errors: a missing or blocked page must surface to
// the caller rather than be parsed as empty markup.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode())
	}

	body := resp.Body()
	if c.maxBodySize > 0 && int64(len(body)) > c.maxBodySize {
		body = body[:c.maxBodySize]
	}

	return string(body), nil
}
