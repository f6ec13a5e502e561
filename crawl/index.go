package crawl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ricette"
)

var _ ricette.Indexer = (*RecipeIndexer)(nil)

// DefaultIndexName is the index recipes are loaded into.
const DefaultIndexName = "recipes"

// RecipeMappings describes the recipe document fields for sinks that
// support typed indexes.
var RecipeMappings = json.RawMessage(`{
  "mappings": {
    "properties": {
      "recipe":      {"type": "text"},
      "category":    {"type": "keyword"},
      "difficulty":  {"type": "keyword"},
      "dosage_for":  {"type": "keyword"},
      "price":       {"type": "keyword"},
      "link":        {"type": "keyword"},
      "ingredients": {
        "type": "nested",
        "properties": {
          "name": {"type": "text"},
          "quantity": {
            "properties": {
              "amount":        {"type": "keyword"},
              "standard_unit": {"type": "keyword"},
              "descriptor":    {"type": "keyword"}
            }
          }
        }
      }
    }
  }
}`)

// RecipeIndexer loads recipes into a single index of a DocumentSink.
type RecipeIndexer struct {
	Sink  ricette.DocumentSink
	Index string
}

// NewRecipeIndexer creates a RecipeIndexer. An empty index name selects
// DefaultIndexName.
func NewRecipeIndexer(sink ricette.DocumentSink, index string) *RecipeIndexer {
	if index == "" {
		index = DefaultIndexName
	}
	return &RecipeIndexer{Sink: sink, Index: index}
}

// EnsureIndex creates the index with mappings if it does not exist and
// reports whether it was created.
func (x *RecipeIndexer) EnsureIndex(ctx context.Context, mappings json.RawMessage) (bool, error) {
	exists, err := x.Sink.Exists(ctx, x.Index)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", x.Index, err)
	}
	if exists {
		return false, nil
	}

	if err := x.Sink.CreateIndex(ctx, x.Index, mappings); err != nil {
		// Created concurrently by someone else.
		if ricette.ErrorCode(err) == ricette.ECONFLICT {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", x.Index, err)
	}
	return true, nil
}

// PrepareData validates recipe and encodes it as a document whose ID is
// derived from the recipe link, so re-indexing a recipe replaces it.
func (x *RecipeIndexer) PrepareData(recipe *ricette.Recipe) (*ricette.Document, error) {
	if recipe == nil {
		return nil, ricette.Errorf(ricette.EINVALID, "recipe required")
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(recipe)
	if err != nil {
		return nil, fmt.Errorf("encode recipe %s: %w", recipe.SourceURL, err)
	}

	return &ricette.Document{
		ID:   ComputeHash(recipe.SourceURL),
		Body: body,
	}, nil
}

// IndexData bulk-indexes recipes and returns the number of documents
// written. Nothing is written if any recipe is invalid.
func (x *RecipeIndexer) IndexData(ctx context.Context, recipes []*ricette.Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}

	docs := make([]*ricette.Document, 0, len(recipes))
	for _, r := range recipes {
		doc, err := x.PrepareData(r)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}

	n, err := x.Sink.IndexBulk(ctx, x.Index, docs)
	if err != nil {
		return n, fmt.Errorf("index %d recipes: %w", len(docs), err)
	}
	return n, nil
}
