package hh

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// retryConfig controls backoff for transient API failures.
type retryConfig struct {
	maxRetries  int
	initialWait time.Duration
	maxWait     time.Duration
	multiplier  float64
}

var defaultRetry = retryConfig{
	maxRetries:  3,
	initialWait: 500 * time.Millisecond,
	maxWait:     10 * time.Second,
	multiplier:  2.0,
}

// doRetry sends the request built by build, retrying connection errors and
// retryable status codes with exponential backoff. Only for idempotent
// GETs: the negotiation POST goes through Apply, which sends once. The
// request is rebuilt per attempt.
func (c *Client) doRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = &statusError{code: resp.StatusCode}
			resp.Body.Close()
		}

		if attempt < c.retry.maxRetries {
			wait := time.Duration(float64(c.retry.initialWait) * math.Pow(c.retry.multiplier, float64(attempt)))
			if wait > c.retry.maxWait {
				wait = c.retry.maxWait
			}
			slog.Debug("hh: retrying request",
				slog.String("url", req.URL.Path),
				slog.Int("attempt", attempt+1),
				slog.Duration("wait", wait),
				slog.Any("error", lastErr),
			)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
