package ricette

import "context"

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	// Fetch performs exactly one request for url and returns the body.
	// Failures are reported as *FetchError. Fetch never retries.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// RateLimiter bounds the request rate towards the source site.
type RateLimiter interface {
	// Wait blocks until the next request to url may be sent.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, url string) error
}
