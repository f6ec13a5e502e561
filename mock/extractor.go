package mock

import "github.com/fwojciec/ricette"

var _ ricette.RecipeExtractor = (*RecipeExtractor)(nil)

// RecipeExtractor is a mock implementation of ricette.RecipeExtractor.
type RecipeExtractor struct {
	ExtractRecipeFn      func(html, sourceURL string) (*ricette.Recipe, error)
	ExtractRecipeLinksFn func(html string) []string
}

func (e *RecipeExtractor) ExtractRecipe(html, sourceURL string) (*ricette.Recipe, error) {
	return e.ExtractRecipeFn(html, sourceURL)
}

func (e *RecipeExtractor) ExtractRecipeLinks(html string) []string {
	return e.ExtractRecipeLinksFn(html)
}
