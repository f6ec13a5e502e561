package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Run(deps.Ctx, logProgress(deps.Logger))
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stdout, "Interrupted: saved %d recipes in %d chunks; run again to resume\n",
			result.Saved, result.Chunks)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d recipes in %d chunks (%d failed, %d of %d URLs were pending)\n",
		result.Saved, result.Chunks, result.Failed, result.Pending, result.Discovered)
	return nil
}

// logProgress turns pipeline progress events into log lines.
func logProgress(logger *slog.Logger) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		phase := event.Phase.String()
		switch event.Type {
		case crawl.ProgressStarted:
			logger.Info("phase started", "phase", phase, "total", event.Total)
		case crawl.ProgressCompleted:
			logger.Debug("page done",
				"phase", phase,
				"url", crawl.TruncateURL(event.URL, 80),
				"completed", event.Completed,
				"total", event.Total,
				"count", event.Count,
			)
		case crawl.ProgressFailed:
			logger.Warn("page skipped",
				"phase", phase,
				"url", event.URL,
				"completed", event.Completed,
				"total", event.Total,
				"err", event.Error,
			)
		case crawl.ProgressFlushed:
			logger.Info("chunk written", "chunk", event.Chunk, "count", event.Count)
		case crawl.ProgressFinished:
			if event.Phase == crawl.PhaseDiscover {
				logger.Info("discovery finished", "pages", event.Total, "urls", event.Count)
				return
			}
			logger.Info("crawl finished", "completed", event.Completed, "total", event.Total)
		}
	}
}
