// Package fs provides file-based checkpoint storage for crawls: the
// discovered-URL frontier and numbered chunks of extracted recipes.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Default file layout under the output directory.
const (
	FrontierFileName = "recipes_urls.json"
	ChunkDirName     = "recipes_json"
)

// writeJSONAtomic encodes v to a temporary file next to path and renames it
// into place, so readers never observe a partially written file.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
