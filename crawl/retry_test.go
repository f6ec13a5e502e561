package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/ricette/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		var calls int
		var retries []int
		fetch := func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("temporary")
			}
			return "<html></html>", nil
		}
		onRetry := func(_ string, attempt int, _ error) {
			retries = append(retries, attempt)
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0, 0}, onRetry)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{2, 3}, retries)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("still failing")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0}, nil)

		require.EqualError(t, err, "still failing")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		fetch := func(context.Context, string) (string, error) {
			calls++
			cancel()
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(ctx, "https://example.com", fetch, []time.Duration{time.Hour}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
