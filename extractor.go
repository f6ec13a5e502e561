package ricette

// RecipeExtractor turns fetched HTML into recipe records and listing links.
type RecipeExtractor interface {
	// ExtractRecipe builds a Recipe from a recipe page.
	// Returns *ExtractionError if the title heading is missing; every other
	// field degrades to nil or empty.
	ExtractRecipe(html string, sourceURL string) (*Recipe, error)

	// ExtractRecipeLinks returns the recipe URLs listed on a category page
	// in document order, without deduplication. It never fails.
	ExtractRecipeLinks(html string) []string
}
