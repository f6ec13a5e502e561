package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/ricette"
)

// Ensure FrontierFile implements ricette.FrontierStore at compile time.
var _ ricette.FrontierStore = (*FrontierFile)(nil)

// FrontierFile stores the discovered recipe URLs as a JSON array in a
// single file.
type FrontierFile struct {
	path string
}

// NewFrontierFile creates a FrontierFile at outputDir/recipes_urls.json.
func NewFrontierFile(outputDir string) *FrontierFile {
	return &FrontierFile{path: filepath.Join(outputDir, FrontierFileName)}
}

// Path returns the location of the frontier file.
func (f *FrontierFile) Path() string {
	return f.path
}

// LoadFrontier returns the persisted URLs, or an empty slice if the file
// does not exist.
func (f *FrontierFile) LoadFrontier(ctx context.Context) ([]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, &ricette.PersistenceError{Path: f.path, Err: err}
	}

	urls := []string{}
	if err := json.Unmarshal(b, &urls); err != nil {
		return nil, &ricette.PersistenceError{Path: f.path, Err: err}
	}
	return urls, nil
}

// SaveFrontier atomically replaces the frontier file with urls.
func (f *FrontierFile) SaveFrontier(ctx context.Context, urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	if err := writeJSONAtomic(f.path, urls); err != nil {
		return &ricette.PersistenceError{Path: f.path, Err: err}
	}
	return nil
}

// DeleteFrontier removes the frontier file. Deleting a missing file is not
// an error.
func (f *FrontierFile) DeleteFrontier(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ricette.PersistenceError{Path: f.path, Err: err}
	}
	return nil
}
