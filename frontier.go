package ricette

import "context"

// FrontierStore persists the set of discovered recipe URLs.
type FrontierStore interface {
	// LoadFrontier returns the persisted URLs.
	// A missing frontier is not an error; it yields an empty slice.
	LoadFrontier(ctx context.Context) ([]string, error)

	// SaveFrontier replaces the persisted frontier with urls.
	SaveFrontier(ctx context.Context, urls []string) error

	// DeleteFrontier removes the persisted frontier, forcing rediscovery.
	DeleteFrontier(ctx context.Context) error
}

// ChunkStore persists extracted recipes as numbered, write-once chunks.
type ChunkStore interface {
	// ProcessedURLs returns the source URL of every recipe in every chunk.
	ProcessedURLs(ctx context.Context) (map[string]struct{}, error)

	// LastChunk returns the highest chunk number on disk, or 0 if none.
	LastChunk(ctx context.Context) (int, error)

	// WriteChunk atomically writes recipes as chunk number n.
	// Failures are reported as *PersistenceError.
	WriteChunk(ctx context.Context, n int, recipes []*Recipe) error

	// ReadChunks returns every persisted recipe ordered by chunk number.
	ReadChunks(ctx context.Context) ([]*Recipe, error)
}
