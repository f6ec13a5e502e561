package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/ricette"
	main "github.com/fwojciec/ricette/cmd/ricette"
	"github.com/fwojciec/ricette/crawl"
	"github.com/fwojciec/ricette/fs"
	"github.com/fwojciec/ricette/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingURL = "https://www.giallozafferano.it/ricette-cat"

func newPipeline(t *testing.T, fetch func(ctx context.Context, url string) (string, error)) *crawl.Pipeline {
	t.Helper()
	dir := t.TempDir()
	return &crawl.Pipeline{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.RecipeExtractor{
			ExtractRecipeLinksFn: func(html string) []string {
				return strings.Fields(html)
			},
			ExtractRecipeFn: func(html, sourceURL string) (*ricette.Recipe, error) {
				return &ricette.Recipe{Name: html, SourceURL: sourceURL}, nil
			},
		},
		Frontier: fs.NewFrontierFile(dir),
		Chunks:   fs.NewChunkDir(dir),
		BaseURL:  listingURL,
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls and prints summary", func(t *testing.T) {
		t.Parallel()

		pipeline := newPipeline(t, func(_ context.Context, url string) (string, error) {
			switch url {
			case listingURL:
				return "https://ricette.giallozafferano.it/A.html https://ricette.giallozafferano.it/B.html", nil
			case "https://ricette.giallozafferano.it/B.html":
				return "", &ricette.FetchError{URL: url, StatusCode: 500}
			default:
				return "Ricetta A", nil
			}
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Logger:   slog.New(slog.NewTextHandler(stderr, nil)),
			Pipeline: pipeline,
		}

		err := (&main.CrawlCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 recipes in 1 chunks (1 failed, 2 of 2 URLs were pending)")
		output := stderr.String()
		assert.Contains(t, output, "phase started")
		assert.Contains(t, output, "page skipped")
		assert.Contains(t, output, "HTTP 500")
		assert.Contains(t, output, "chunk written")
		assert.Contains(t, output, "discovery finished")
		assert.Contains(t, output, "urls=2")
		assert.Contains(t, output, "crawl finished")
	})

	t.Run("reports interruption", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		pipeline := newPipeline(t, func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      ctx,
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Logger:   slog.New(slog.DiscardHandler),
			Pipeline: pipeline,
		}

		err := (&main.CrawlCmd{}).Run(deps)

		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, stdout.String(), "Interrupted")
	})

	t.Run("prints persistence errors", func(t *testing.T) {
		t.Parallel()

		pipeline := newPipeline(t, nil)
		pipeline.Frontier = &mock.FrontierStore{
			LoadFrontierFn: func(context.Context) ([]string, error) {
				return nil, &ricette.PersistenceError{Path: "recipes_urls.json", Err: errors.New("disk full")}
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Logger:   slog.New(slog.DiscardHandler),
			Pipeline: pipeline,
		}

		err := (&main.CrawlCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: load frontier")
		assert.Contains(t, stderr.String(), "disk full")
	})
}
