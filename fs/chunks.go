package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/ricette"
)

// Ensure ChunkDir implements ricette.ChunkStore at compile time.
var _ ricette.ChunkStore = (*ChunkDir)(nil)

const (
	chunkPrefix = "all_recipes_"
	chunkSuffix = ".json"
)

// ChunkDir stores recipes as numbered JSON array files named
// all_recipes_<n>.json. Chunks are write-once.
type ChunkDir struct {
	dir string
}

// NewChunkDir creates a ChunkDir at outputDir/recipes_json.
func NewChunkDir(outputDir string) *ChunkDir {
	return &ChunkDir{dir: filepath.Join(outputDir, ChunkDirName)}
}

// Dir returns the chunk directory.
func (c *ChunkDir) Dir() string {
	return c.dir
}

// ChunkPath returns the file path of chunk n.
func (c *ChunkDir) ChunkPath(n int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s%d%s", chunkPrefix, n, chunkSuffix))
}

// WriteChunk atomically writes recipes as chunk n. An existing chunk with
// the same number is never overwritten.
func (c *ChunkDir) WriteChunk(ctx context.Context, n int, recipes []*ricette.Recipe) error {
	path := c.ChunkPath(n)
	if n < 1 {
		return &ricette.PersistenceError{Path: path, Err: fmt.Errorf("invalid chunk number %d", n)}
	}
	if _, err := os.Stat(path); err == nil {
		return &ricette.PersistenceError{Path: path, Err: os.ErrExist}
	}
	if recipes == nil {
		recipes = []*ricette.Recipe{}
	}
	if err := writeJSONAtomic(path, recipes); err != nil {
		return &ricette.PersistenceError{Path: path, Err: err}
	}
	return nil
}

// LastChunk returns the highest chunk number on disk, or 0 if there are no
// chunks. Files that don't follow the naming scheme are ignored.
func (c *ChunkDir) LastChunk(ctx context.Context) (int, error) {
	numbers, err := c.chunkNumbers()
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	return numbers[len(numbers)-1], nil
}

// ProcessedURLs returns the link of every recipe stored in any chunk.
func (c *ChunkDir) ProcessedURLs(ctx context.Context) (map[string]struct{}, error) {
	recipes, err := c.ReadChunks(ctx)
	if err != nil {
		return nil, err
	}
	processed := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if r.SourceURL != "" {
			processed[r.SourceURL] = struct{}{}
		}
	}
	return processed, nil
}

// ReadChunks returns every stored recipe, ordered by chunk number and then
// by position within the chunk. Duplicates across chunks are kept. A null
// entry makes the chunk invalid.
func (c *ChunkDir) ReadChunks(ctx context.Context) ([]*ricette.Recipe, error) {
	numbers, err := c.chunkNumbers()
	if err != nil {
		return nil, err
	}

	var all []*ricette.Recipe
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := c.ChunkPath(n)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &ricette.PersistenceError{Path: path, Err: err}
		}
		var recipes []*ricette.Recipe
		if err := json.Unmarshal(b, &recipes); err != nil {
			return nil, &ricette.PersistenceError{Path: path, Err: err}
		}
		if i := slices.Index(recipes, nil); i >= 0 {
			return nil, &ricette.PersistenceError{Path: path, Err: fmt.Errorf("null recipe at index %d", i)}
		}
		all = append(all, recipes...)
	}
	return all, nil
}

// chunkNumbers returns the sorted numbers of all chunk files.
func (c *ChunkDir) chunkNumbers() ([]int, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, &ricette.PersistenceError{Path: c.dir, Err: err}
	}

	var numbers []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, chunkPrefix) || !strings.HasSuffix(name, chunkSuffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, chunkPrefix), chunkSuffix))
		if err != nil || n < 1 {
			continue
		}
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return numbers, nil
}
