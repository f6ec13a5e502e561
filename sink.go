package ricette

import (
	"context"
	"encoding/json"
)

// Document is a unit of data handed to a DocumentSink.
type Document struct {
	ID   string          `json:"id"`
	Body json.RawMessage `json:"body"`
}

// DocumentSink is a search-index style store for documents.
type DocumentSink interface {
	// Exists reports whether the named index exists.
	Exists(ctx context.Context, index string) (bool, error)

	// CreateIndex creates the named index with the given mappings.
	// Returns ECONFLICT if the index already exists.
	CreateIndex(ctx context.Context, index string, mappings json.RawMessage) error

	// IndexOne stores a single document. Returns ENOTFOUND if the index
	// does not exist.
	IndexOne(ctx context.Context, index string, doc *Document) error

	// IndexBulk stores docs and returns how many were written.
	IndexBulk(ctx context.Context, index string, docs []*Document) (int, error)
}

// Indexer prepares recipes and loads them into a search index.
type Indexer interface {
	// EnsureIndex creates the index if it does not exist yet and reports
	// whether it was created.
	EnsureIndex(ctx context.Context, mappings json.RawMessage) (bool, error)

	// PrepareData converts a recipe into an indexable document.
	PrepareData(recipe *Recipe) (*Document, error)

	// IndexData indexes recipes and returns the number of documents written.
	IndexData(ctx context.Context, recipes []*Recipe) (int, error)
}
