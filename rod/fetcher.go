// Package rod provides a headless-browser implementation of ricette.Fetcher
// for recipe sites that render their listings with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/ricette"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed for a page to load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ricette.Fetcher at compile time.
var _ ricette.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool     *browserPool
	timeout  time.Duration
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the page load timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages a browser serves before it is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher using
// it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
// Failures are returned as *ricette.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}

	browser, err := f.pool.acquire()
	if err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	// Navigate reports network failures; HTTP status is not exposed, so
	// error pages are returned as content and rejected by the extractor.
	if err := page.Navigate(url); err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}

	html, err := page.HTML()
	if err != nil {
		return "", &ricette.FetchError{URL: url, Err: err}
	}
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.pool.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.pool.close()
}
