package mock

import (
	"context"

	"github.com/fwojciec/ricette"
)

var _ ricette.IngredientClassifier = (*IngredientClassifier)(nil)

// IngredientClassifier is a mock implementation of ricette.IngredientClassifier.
type IngredientClassifier struct {
	ClassifyFn func(ctx context.Context, names []string) ([]ricette.ClassifiedIngredient, error)
}

func (c *IngredientClassifier) Classify(ctx context.Context, names []string) ([]ricette.ClassifiedIngredient, error) {
	return c.ClassifyFn(ctx, names)
}
