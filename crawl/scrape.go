package crawl

import "context"

// ParseFunc turns a fetched page into a value.
type ParseFunc[T any] func(html, url string) (T, error)

// StoreFunc persists a parsed value.
type StoreFunc[T any] func(ctx context.Context, v T) error

// Scrape runs the fixed fetch, parse, store sequence for one URL and returns
// the parsed value. The first failing step ends the sequence; a nil store
// skips persistence.
func Scrape[T any](ctx context.Context, url string, fetch FetchFunc, parse ParseFunc[T], store StoreFunc[T]) (T, error) {
	var zero T

	html, err := fetch(ctx, url)
	if err != nil {
		return zero, err
	}

	v, err := parse(html, url)
	if err != nil {
		return zero, err
	}

	if store != nil {
		if err := store(ctx, v); err != nil {
			return zero, err
		}
	}
	return v, nil
}
