// Package ratelimit throttles calls to cloud inference APIs
// (OpenAI, Anthropic, the translation endpoint).
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration for one API.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// Defaults per upstream. Cloud quotas are per account, so these stay conservative.
var (
	OpenAI      = Config{RequestsPerSecond: 5, BurstSize: 10}
	Anthropic   = Config{RequestsPerSecond: 2, BurstSize: 4}
	Translation = Config{RequestsPerSecond: 2, BurstSize: 4}
)

// defaultBackoff is used when a 429 carries no Retry-After header.
const defaultBackoff = 30 * time.Second

// Limiter is a token bucket with an extra backoff window set by 429 responses.
// A nil *Limiter never blocks.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// New creates a limiter. A non-positive rate disables limiting.
func New(cfg Config) *Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by Backoff.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return l.limiter.Wait(ctx)
}

// Backoff pauses all callers for d.
func (l *Limiter) Backoff(d time.Duration) {
	if l == nil {
		return
	}
	if d <= 0 {
		d = defaultBackoff
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if until := time.Now().Add(d); until.After(l.retryAt) {
		l.retryAt = until
	}
}

// Observe inspects a response and backs off on 429 Too Many Requests,
// honouring a Retry-After header given in seconds.
func (l *Limiter) Observe(resp *http.Response) {
	if l == nil || resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return
	}
	var d time.Duration
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		d = time.Duration(secs) * time.Second
	}
	l.Backoff(d)
}
