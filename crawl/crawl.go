// Package crawl provides resumable recipe crawling orchestration.
// It coordinates listing discovery, fetching, extraction, and chunked
// checkpointing of recipe records.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/ricette"
	"golang.org/x/sync/errgroup"
)

// Defaults for crawling giallozafferano.it.
const (
	DefaultBaseURL       = "https://www.giallozafferano.it/ricette-cat"
	DefaultCategoryPages = 440
	DefaultRequestDelay  = 2 * time.Second

	// DefaultChunkSize is the number of recipes written to each chunk file.
	DefaultChunkSize = 100
)

// Pipeline crawls a recipe site in two phases. Discover walks the category
// listings and persists the frontier; Extract fetches every pending recipe
// and flushes results to numbered chunks. Both phases resume from the
// persisted frontier and chunks.
type Pipeline struct {
	Fetcher     ricette.Fetcher
	Extractor   ricette.RecipeExtractor
	Frontier    ricette.FrontierStore
	Chunks      ricette.ChunkStore
	RateLimiter ricette.RateLimiter

	// BaseURL is the first category listing page.
	BaseURL string
	// CategoryPages is the number of paginated listing pages after BaseURL.
	CategoryPages int
	// ChunkSize defaults to DefaultChunkSize.
	ChunkSize int
	// Concurrency is the number of extract workers. Defaults to 1.
	Concurrency int
	// RetryDelays between fetch attempts. Nil means a single attempt.
	RetryDelays []time.Duration
	// DeleteFrontierOnComplete removes the frontier after a clean run so the
	// next run rediscovers listings.
	DeleteFrontierOnComplete bool
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Discovered int // URLs in the frontier
	Pending    int // URLs not yet in any chunk at the start of extraction
	Saved      int // recipes written to chunks in this run
	Failed     int // recipe pages that failed to fetch or extract
	Chunks     int // chunk files written in this run
}

// Phase identifies the pipeline phase an event belongs to.
type Phase int

const (
	PhaseDiscover Phase = iota
	PhaseExtract
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscover:
		return "discover"
	case PhaseExtract:
		return "extract"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type      ProgressType
	Phase     Phase
	Completed int
	Total     int
	URL       string
	Chunk     int // chunk number for ProgressFlushed
	Count     int // recipes flushed, or links found on a listing page
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFlushed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// Run executes both phases. Recoverable per-page failures (see
// ricette.IsRecoverable) are reported through progress and skipped. Any
// other error aborts the run after flushing the recipes extracted so far,
// except a persistence failure, which aborts immediately. On cancellation the
// recipes extracted so far are flushed and ctx.Err() is returned.
func (p *Pipeline) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	result := &Result{}

	frontier, err := p.Frontier.LoadFrontier(ctx)
	if err != nil {
		return result, fmt.Errorf("load frontier: %w", err)
	}

	if len(frontier) == 0 {
		frontier, err = p.discover(ctx, progress)
		if err != nil {
			return result, err
		}
		if err := p.Frontier.SaveFrontier(ctx, frontier); err != nil {
			return result, fmt.Errorf("save frontier: %w", err)
		}
	}
	result.Discovered = len(frontier)

	processed, err := p.Chunks.ProcessedURLs(ctx)
	if err != nil {
		return result, fmt.Errorf("load processed urls: %w", err)
	}
	pending := PendingURLs(frontier, processed)
	result.Pending = len(pending)

	last, err := p.Chunks.LastChunk(ctx)
	if err != nil {
		return result, fmt.Errorf("find last chunk: %w", err)
	}

	if err := p.extract(ctx, pending, last+1, result, progress); err != nil {
		return result, err
	}

	if p.DeleteFrontierOnComplete {
		if err := p.Frontier.DeleteFrontier(ctx); err != nil {
			return result, fmt.Errorf("delete frontier: %w", err)
		}
	}

	progress(ProgressEvent{
		Type:      ProgressFinished,
		Phase:     PhaseExtract,
		Completed: result.Saved + result.Failed,
		Total:     result.Pending,
	})

	return result, nil
}

// discover walks every category listing page and returns the distinct
// recipe URLs in first-seen order. An interrupted discovery returns
// ctx.Err() so a partial frontier is never persisted.
func (p *Pipeline) discover(ctx context.Context, progress ProgressFunc) ([]string, error) {
	pages := CategoryURLs(p.BaseURL, p.CategoryPages)
	frontier := NewFrontier()

	progress(ProgressEvent{Type: ProgressStarted, Phase: PhaseDiscover, Total: len(pages)})

	parse := func(html, _ string) ([]string, error) {
		return p.Extractor.ExtractRecipeLinks(html), nil
	}
	store := func(_ context.Context, links []string) error {
		for _, link := range links {
			frontier.Push(link)
		}
		return nil
	}

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := Scrape(ctx, page, p.fetch, parse, store)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !ricette.IsRecoverable(err) {
				return nil, fmt.Errorf("discover %s: %w", page, err)
			}
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Phase:     PhaseDiscover,
				Completed: i + 1,
				Total:     len(pages),
				URL:       page,
				Error:     err,
			})
			continue
		}

		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Phase:     PhaseDiscover,
			Completed: i + 1,
			Total:     len(pages),
			URL:       page,
			Count:     len(links),
		})
	}

	progress(ProgressEvent{
		Type:      ProgressFinished,
		Phase:     PhaseDiscover,
		Completed: len(pages),
		Total:     len(pages),
		Count:     frontier.Len(),
	})

	return frontier.URLs(), nil
}

// recipeResult holds the outcome of processing a single recipe URL.
type recipeResult struct {
	url    string
	recipe *ricette.Recipe
	err    error
}

// extract fetches every pending URL with a bounded worker pool. Workers
// only fetch and parse; this goroutine owns the batch and every chunk write.
func (p *Pipeline) extract(ctx context.Context, pending []string, nextChunk int, result *Result, progress ProgressFunc) error {
	chunkSize := p.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	total := len(pending)

	progress(ProgressEvent{Type: ProgressStarted, Phase: PhaseExtract, Total: total})

	// workCtx stops dispatch on cancellation or on a fatal flush error.
	workCtx, stopWork := context.WithCancel(ctx)
	defer stopWork()

	results := make(chan recipeResult)
	claims := NewFrontier()

	g, gctx := errgroup.WithContext(workCtx)
	g.SetLimit(concurrency)

	go func() {
		defer close(results)
		for _, url := range pending {
			if gctx.Err() != nil {
				break
			}
			if !claims.Claim(url) {
				continue
			}
			g.Go(func() error {
				store := func(_ context.Context, r *ricette.Recipe) error {
					results <- recipeResult{url: url, recipe: r}
					return nil
				}
				if _, err := Scrape(gctx, url, p.fetch, p.Extractor.ExtractRecipe, store); err != nil {
					results <- recipeResult{url: url, err: err}
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	batch := make([]*ricette.Recipe, 0, chunkSize)
	var flushErr, fatalErr error
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		// Flushing must complete even when the run is being canceled.
		if err := p.Chunks.WriteChunk(context.WithoutCancel(ctx), nextChunk, batch); err != nil {
			return fmt.Errorf("write chunk %d: %w", nextChunk, err)
		}
		result.Saved += len(batch)
		result.Chunks++
		progress(ProgressEvent{
			Type:  ProgressFlushed,
			Phase: PhaseExtract,
			Chunk: nextChunk,
			Count: len(batch),
		})
		nextChunk++
		batch = make([]*ricette.Recipe, 0, chunkSize)
		return nil
	}

	var completed int
	for r := range results {
		if flushErr != nil {
			continue // drain so workers can exit
		}

		if r.err != nil {
			// Pages interrupted by cancellation stay pending for the next run.
			if workCtx.Err() != nil {
				continue
			}
			if !ricette.IsRecoverable(r.err) {
				fatalErr = fmt.Errorf("process %s: %w", r.url, r.err)
				stopWork()
				continue
			}
			completed++
			result.Failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Phase:     PhaseExtract,
				Completed: completed,
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
			continue
		}

		completed++
		batch = append(batch, r.recipe)
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Phase:     PhaseExtract,
			Completed: completed,
			Total:     total,
			URL:       r.url,
		})

		if len(batch) >= chunkSize {
			if err := flush(); err != nil {
				flushErr = err
				stopWork()
			}
		}
	}

	if flushErr != nil {
		return flushErr
	}
	if err := flush(); err != nil {
		return err
	}
	if fatalErr != nil {
		return fatalErr
	}
	return ctx.Err()
}

// fetch waits on the rate limiter and fetches url, retrying per RetryDelays.
func (p *Pipeline) fetch(ctx context.Context, url string) (string, error) {
	attempt := func(ctx context.Context, url string) (string, error) {
		if p.RateLimiter != nil {
			if err := p.RateLimiter.Wait(ctx, url); err != nil {
				return "", err
			}
		}
		return p.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetry(ctx, url, attempt, p.RetryDelays, nil)
}
