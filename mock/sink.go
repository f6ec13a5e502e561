package mock

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/ricette"
)

var _ ricette.DocumentSink = (*DocumentSink)(nil)

// DocumentSink is a mock implementation of ricette.DocumentSink.
type DocumentSink struct {
	ExistsFn      func(ctx context.Context, index string) (bool, error)
	CreateIndexFn func(ctx context.Context, index string, mappings json.RawMessage) error
	IndexOneFn    func(ctx context.Context, index string, doc *ricette.Document) error
	IndexBulkFn   func(ctx context.Context, index string, docs []*ricette.Document) (int, error)
}

func (s *DocumentSink) Exists(ctx context.Context, index string) (bool, error) {
	return s.ExistsFn(ctx, index)
}

func (s *DocumentSink) CreateIndex(ctx context.Context, index string, mappings json.RawMessage) error {
	return s.CreateIndexFn(ctx, index, mappings)
}

func (s *DocumentSink) IndexOne(ctx context.Context, index string, doc *ricette.Document) error {
	return s.IndexOneFn(ctx, index, doc)
}

func (s *DocumentSink) IndexBulk(ctx context.Context, index string, docs []*ricette.Document) (int, error) {
	return s.IndexBulkFn(ctx, index, docs)
}

var _ ricette.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of ricette.Indexer.
type Indexer struct {
	EnsureIndexFn func(ctx context.Context, mappings json.RawMessage) (bool, error)
	PrepareDataFn func(recipe *ricette.Recipe) (*ricette.Document, error)
	IndexDataFn   func(ctx context.Context, recipes []*ricette.Recipe) (int, error)
}

func (i *Indexer) EnsureIndex(ctx context.Context, mappings json.RawMessage) (bool, error) {
	return i.EnsureIndexFn(ctx, mappings)
}

func (i *Indexer) PrepareData(recipe *ricette.Recipe) (*ricette.Document, error) {
	return i.PrepareDataFn(recipe)
}

func (i *Indexer) IndexData(ctx context.Context, recipes []*ricette.Recipe) (int, error) {
	return i.IndexDataFn(ctx, recipes)
}
