// Package fetch is the engine's only network capability: GET a page,
// return its body. Safe for concurrent use by the detail pool.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error wraps any transport or HTTP-status failure. It is fatal for
// the initial listing fetch and retryable for detail fetches.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Options struct {
	UserAgent string
	Timeout   time.Duration
	HostRPS   float64
	HostBurst int
}

type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	ua      string
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "TalentAI/1.0 (+local)"
	}
	if opts.HostRPS <= 0 {
		opts.HostRPS = 4
	}
	if opts.HostBurst <= 0 {
		opts.HostBurst = 4
	}
	return &Client{
		hc:      &http.Client{Timeout: opts.Timeout},
		limiter: NewHostLimiter(opts.HostRPS, opts.HostBurst),
		ua:      opts.UserAgent,
	}
}

// Get fetches one page. The per-request timeout comes from the
// client; ctx adds cancellation on top.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		io.Copy(io.Discard, res.Body)
		return nil, &Error{URL: url, Status: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	return body, nil
}

// GetWithRetry retries transient failures with doubling backoff.
// retries is the number of attempts after the first.
func (c *Client) GetWithRetry(ctx context.Context, url string, retries int, backoff time.Duration) ([]byte, error) {
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(backoff << (attempt - 1))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, &Error{URL: url, Err: ctx.Err()}
			case <-t.C:
			}
		}

		body, err := c.Get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
