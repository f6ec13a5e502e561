package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ricette"
)

// Ensure LoggingClassifier implements ricette.IngredientClassifier.
var _ ricette.IngredientClassifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps an IngredientClassifier with logging.
type LoggingClassifier struct {
	next   ricette.IngredientClassifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next ricette.IngredientClassifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the operation.
func (c *LoggingClassifier) Classify(ctx context.Context, names []string) (out []ricette.ClassifiedIngredient, err error) {
	defer func(begin time.Time) {
		c.logger.Info("classify",
			"names", len(names),
			"count", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Classify(ctx, names)
}
