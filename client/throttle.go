package client

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Limiter smooths bursty outbound calls with a token bucket and a bound on
// concurrent in-flight requests.
type Limiter struct {
	bucket   *rate.Limiter
	inflight chan struct{}
}

// NewLimiter builds a limiter from env overrides, defaulting to 5 rps with a
// burst of 10 and at most 3 concurrent requests.
func NewLimiter() *Limiter {
	rps := 5.0
	burst := 10
	concurrent := 3
	if v := os.Getenv("NEYNAR_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := os.Getenv("NEYNAR_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}
	if v := os.Getenv("NEYNAR_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrent = n
		}
	}
	return &Limiter{
		bucket:   rate.NewLimiter(rate.Limit(rps), burst),
		inflight: make(chan struct{}, concurrent),
	}
}

// Wait blocks until a call may proceed. Every successful Wait must be paired
// with a Release.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return err
	}
	select {
	case l.inflight <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Release frees an in-flight slot.
func (l *Limiter) Release() {
	select {
	case <-l.inflight:
	default:
	}
}

// doWithRetry performs the request, retrying 429 and 5xx responses with
// exponential backoff when retry is enabled. 4xx-class input errors are
// returned immediately.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	defer c.limiter.Release()

	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.client.Do(req.Clone(ctx))
		if err == nil {
			retryable := resp.StatusCode == http.StatusTooManyRequests ||
				(resp.StatusCode >= 500 && resp.StatusCode <= 599)
			if !retryable || attempt == c.maxAttempts {
				return resp, nil
			}

			wait := backoff
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					wait = time.Duration(secs) * time.Second
				} else if t, err := http.ParseTime(ra); err == nil {
					if d := time.Until(t); d > 0 {
						wait = d
					}
				}
			}
			_ = resp.Body.Close()

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			continue
		}

		lastErr = err
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, lastErr
}
