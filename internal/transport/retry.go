package transport

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryGateway is a decorator that retries transient failures of GET
// requests with exponential backoff and jitter. POSTs start backend work
// and are never repeated.
type RetryGateway struct {
	inner  Gateway
	config RetryConfig
}

// WithRetry wraps a Gateway with retry logic.
func WithRetry(g Gateway, cfg RetryConfig) Gateway {
	return &RetryGateway{inner: g, config: cfg}
}

func (r *RetryGateway) Do(ctx context.Context, req Request) (*Response, error) {
	attempts := r.config.MaxAttempts
	if attempts < 1 || !idempotent(req) {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		resp, err := r.inner.Do(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt, don't sleep.
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, networkError(OperationFrom(ctx), ctx.Err())
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

func (r *RetryGateway) Endpoint() string {
	return r.inner.Endpoint()
}

func idempotent(req Request) bool {
	return req.Method == "" || req.Method == http.MethodGet
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if te, ok := AsError(err); ok {
		return te.Temporary()
	}
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryGateway) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
