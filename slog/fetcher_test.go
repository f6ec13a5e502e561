package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/mock"
	ricetteslog "github.com/fwojciec/ricette/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carbonaraURL = "https://ricette.giallozafferano.it/Spaghetti-alla-Carbonara.html"

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("records page size of a recipe fetch", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1 class="gz-title-recipe">Spaghetti alla Carbonara</h1></body></html>`
		var requested string
		var buf bytes.Buffer
		fetcher := ricetteslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				requested = url
				return page, nil
			},
		}, debugLogger(&buf))

		html, err := fetcher.Fetch(context.Background(), carbonaraURL)

		require.NoError(t, err)
		assert.Equal(t, page, html)
		assert.Equal(t, carbonaraURL, requested)
		line := buf.String()
		assert.Equal(t, 1, strings.Count(line, "msg=fetch"))
		assert.Contains(t, line, "url="+carbonaraURL)
		assert.Contains(t, line, "bytes=83")
		assert.Contains(t, line, "duration=")
		assert.Contains(t, line, "err=<nil>")
	})

	t.Run("logs status of a missing recipe and returns the fetch error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := ricetteslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", &ricette.FetchError{URL: url, StatusCode: 404}
			},
		}, debugLogger(&buf))

		html, err := fetcher.Fetch(context.Background(), carbonaraURL)

		var fetchErr *ricette.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 404, fetchErr.StatusCode)
		assert.True(t, ricette.IsRecoverable(err))
		assert.Empty(t, html)
		line := buf.String()
		assert.Contains(t, line, "bytes=0")
		assert.Contains(t, line, `err="fetch `+carbonaraURL+`: HTTP 404"`)
	})

	t.Run("stays silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		fetcher := ricetteslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}, logger)

		_, err := fetcher.Fetch(context.Background(), carbonaraURL)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("returns the browser shutdown error", func(t *testing.T) {
		t.Parallel()

		shutdownErr := errors.New("browser already closed")
		var buf bytes.Buffer
		fetcher := ricetteslog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error { return shutdownErr },
		}, debugLogger(&buf))

		err := fetcher.Close()

		assert.ErrorIs(t, err, shutdownErr)
		assert.Empty(t, buf.String())
	})
}
