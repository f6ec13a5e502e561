package mock

import (
	"context"

	"github.com/fwojciec/ricette"
)

var _ ricette.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ricette.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ ricette.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of ricette.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, url string) error
}

func (l *RateLimiter) Wait(ctx context.Context, url string) error {
	return l.WaitFn(ctx, url)
}
