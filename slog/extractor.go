package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ricette"
)

// Ensure LoggingExtractor implements ricette.RecipeExtractor.
var _ ricette.RecipeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecipeExtractor with logging.
type LoggingExtractor struct {
	next   ricette.RecipeExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next ricette.RecipeExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractRecipe delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) ExtractRecipe(html, sourceURL string) (recipe *ricette.Recipe, err error) {
	defer func(begin time.Time) {
		var ingredients, steps int
		if recipe != nil {
			ingredients, steps = len(recipe.Ingredients), len(recipe.Steps)
		}
		e.logger.Debug("extract recipe",
			"url", sourceURL,
			"ingredients", ingredients,
			"steps", steps,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractRecipe(html, sourceURL)
}

// ExtractRecipeLinks delegates to the wrapped extractor and logs the count.
func (e *LoggingExtractor) ExtractRecipeLinks(html string) (links []string) {
	defer func(begin time.Time) {
		e.logger.Debug("extract links",
			"count", len(links),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractRecipeLinks(html)
}

// UnknownLabelLogger returns a callback that logs infobox labels the
// extractor could not map to a recipe field.
func UnknownLabelLogger(logger *slog.Logger) func(sourceURL, label, value string) {
	return func(sourceURL, label, value string) {
		logger.Warn("unknown infobox label",
			"url", sourceURL,
			"label", label,
			"value", value,
		)
	}
}
