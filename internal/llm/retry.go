package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/telemetry"
)

const (
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 8 * time.Second
)

// RetryClient retries transient provider failures with exponential backoff
// and full jitter.
type RetryClient struct {
	Base      Client
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// sleep is swapped in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps base with the default retry policy.
func WithRetry(base Client) *RetryClient {
	return &RetryClient{
		Base:      base,
		Attempts:  defaultRetryAttempts,
		BaseDelay: defaultRetryBaseDelay,
		MaxDelay:  defaultRetryMaxDelay,
	}
}

// Complete calls the wrapped client until it succeeds, fails permanently or
// runs out of attempts.
func (r *RetryClient) Complete(ctx context.Context, req Request) (Response, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := r.Base.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == attempts || !ShouldRetry(err) {
			break
		}
		delay := r.backoff(attempt)
		metrics.IncLLMRetry()
		telemetry.Warn("llm.retry", map[string]any{
			"attempt":  attempt,
			"delay_ms": delay.Milliseconds(),
			"error":    err.Error(),
		})
		if err := r.wait(ctx, delay); err != nil {
			return Response{}, err
		}
	}
	return Response{}, lastErr
}

// Provider forwards the wrapped client's identity when it has one.
func (r *RetryClient) Provider() string {
	if id, ok := r.Base.(Identity); ok {
		return id.Provider()
	}
	return ""
}

// Model forwards the wrapped client's model when it has one.
func (r *RetryClient) Model() string {
	if id, ok := r.Base.(Identity); ok {
		return id.Model()
	}
	return ""
}

func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.BaseDelay
	if base <= 0 {
		base = defaultRetryBaseDelay
	}
	ceiling := base << (attempt - 1)
	if r.MaxDelay > 0 && ceiling > r.MaxDelay {
		ceiling = r.MaxDelay
	}
	return time.Duration(rand.Int64N(int64(ceiling) + 1))
}

func (r *RetryClient) wait(ctx context.Context, d time.Duration) error {
	if r.sleep != nil {
		return r.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShouldRetry reports whether err looks transient: timeouts, rate limits,
// server errors and dropped connections.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "request") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof")
}
