package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/ricette"
)

// Ensure LoggingSink implements ricette.DocumentSink.
var _ ricette.DocumentSink = (*LoggingSink)(nil)

// LoggingSink wraps a DocumentSink with logging.
type LoggingSink struct {
	next   ricette.DocumentSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next ricette.DocumentSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Exists delegates to the wrapped sink.
func (s *LoggingSink) Exists(ctx context.Context, index string) (bool, error) {
	return s.next.Exists(ctx, index)
}

// CreateIndex delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) CreateIndex(ctx context.Context, index string, mappings json.RawMessage) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create index",
			"index", index,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateIndex(ctx, index, mappings)
}

// IndexOne delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) IndexOne(ctx context.Context, index string, doc *ricette.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("index document",
			"index", index,
			"id", doc.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.IndexOne(ctx, index, doc)
}

// IndexBulk delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) IndexBulk(ctx context.Context, index string, docs []*ricette.Document) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index bulk",
			"index", index,
			"docs", len(docs),
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.IndexBulk(ctx, index, docs)
}
