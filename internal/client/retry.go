package client

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	retryMaxRetries = 3
	retryBaseDelay  = 250 * time.Millisecond
	retryMaxDelay   = 2 * time.Second
)

// doWithRetry is do for idempotent requests: transport errors and 429/5xx
// answers are retried with jittered exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, method, path string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= retryMaxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug("[Client] retrying", method, path, attempt, lastErr)
			if err := sleepWithBackoff(ctx, attempt-1); err != nil {
				return err
			}
		}

		req, err := c.newRequest(ctx, method, path, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = errors.Wrapf(err, "%s %s", method, path)
			continue
		}

		err = decodeResponse(resp, out)
		resp.Body.Close()
		if err == nil {
			return nil
		}
		lastErr = err
		if apiErr, ok := err.(*APIError); !ok || !isRetryableStatus(apiErr.StatusCode) {
			return err
		}
	}
	return lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepWithBackoff(ctx context.Context, attempt int) error {
	delay := retryBaseDelay * time.Duration(1<<attempt)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(delay/2) + 1))
	delay = delay + jitter
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
