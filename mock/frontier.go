package mock

import (
	"context"

	"github.com/fwojciec/ricette"
)

var _ ricette.FrontierStore = (*FrontierStore)(nil)

// FrontierStore is a mock implementation of ricette.FrontierStore.
type FrontierStore struct {
	LoadFrontierFn   func(ctx context.Context) ([]string, error)
	SaveFrontierFn   func(ctx context.Context, urls []string) error
	DeleteFrontierFn func(ctx context.Context) error
}

func (s *FrontierStore) LoadFrontier(ctx context.Context) ([]string, error) {
	return s.LoadFrontierFn(ctx)
}

func (s *FrontierStore) SaveFrontier(ctx context.Context, urls []string) error {
	return s.SaveFrontierFn(ctx, urls)
}

func (s *FrontierStore) DeleteFrontier(ctx context.Context) error {
	return s.DeleteFrontierFn(ctx)
}

var _ ricette.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of ricette.ChunkStore.
type ChunkStore struct {
	ProcessedURLsFn func(ctx context.Context) (map[string]struct{}, error)
	LastChunkFn     func(ctx context.Context) (int, error)
	WriteChunkFn    func(ctx context.Context, n int, recipes []*ricette.Recipe) error
	ReadChunksFn    func(ctx context.Context) ([]*ricette.Recipe, error)
}

func (s *ChunkStore) ProcessedURLs(ctx context.Context) (map[string]struct{}, error) {
	return s.ProcessedURLsFn(ctx)
}

func (s *ChunkStore) LastChunk(ctx context.Context) (int, error) {
	return s.LastChunkFn(ctx)
}

func (s *ChunkStore) WriteChunk(ctx context.Context, n int, recipes []*ricette.Recipe) error {
	return s.WriteChunkFn(ctx, n, recipes)
}

func (s *ChunkStore) ReadChunks(ctx context.Context) ([]*ricette.Recipe, error) {
	return s.ReadChunksFn(ctx)
}
