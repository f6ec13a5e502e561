package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/ricette"
	"golang.org/x/time/rate"
)

var _ ricette.RateLimiter = (*Limiter)(nil)

// Limiter enforces a minimum delay between requests using token buckets with
// a burst of 1. By default every request shares one bucket, whatever its
// host. WithPerHost gives each host its own bucket.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	perHost  bool
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithPerHost limits each host independently, so requests to different
// hosts don't wait on each other.
func WithPerHost() LimiterOption {
	return func(l *Limiter) {
		l.perHost = true
	}
}

// NewLimiter creates a Limiter allowing one request per delay.
// A zero or negative delay disables limiting.
func NewLimiter(delay time.Duration, opts ...LimiterOption) *Limiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	l := &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a request to rawURL is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	l.mu.Lock()
	key := l.key(rawURL)
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

func (l *Limiter) key(rawURL string) string {
	if !l.perHost {
		return ""
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
