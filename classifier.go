package ricette

import (
	"context"
	"slices"
)

// IngredientCategories are the categories an ingredient can be classified into.
var IngredientCategories = []string{
	"Altri ingredienti",
	"Bevande",
	"Burri, salse e olii",
	"Carni",
	"Dolcificanti",
	"Erbe, spezie, aromi",
	"Formaggi",
	"Frutta",
	"Pesci",
	"Uova",
	"Verdure",
}

// IsIngredientCategory reports whether category is one of IngredientCategories.
func IsIngredientCategory(category string) bool {
	return slices.Contains(IngredientCategories, category)
}

// ClassifiedIngredient pairs an ingredient name with its category.
type ClassifiedIngredient struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// IngredientClassifier assigns a category to each ingredient name.
type IngredientClassifier interface {
	// Classify returns one classification per input name.
	// Returns EINVALID if names is empty.
	Classify(ctx context.Context, names []string) ([]ClassifiedIngredient, error)
}
