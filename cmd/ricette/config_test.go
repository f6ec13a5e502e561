package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/ricette/cmd/ricette"
	"github.com/fwojciec/ricette/crawl"
	"github.com/fwojciec/ricette/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ricette.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults without a file", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("", main.Config{})

		require.NoError(t, err)
		assert.Equal(t, "data", cfg.OutputDir)
		assert.Equal(t, crawl.DefaultRequestDelay, cfg.RequestDelay)
		require.NotNil(t, cfg.CategoryPages)
		assert.Equal(t, crawl.DefaultCategoryPages, *cfg.CategoryPages)
		assert.Equal(t, crawl.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, 1, cfg.Concurrency)
		assert.Equal(t, crawl.DefaultIndexName, cfg.Index)
		assert.Equal(t, gemini.DefaultModel, cfg.GeminiModel)
		require.NotNil(t, cfg.DeleteFrontierOnComplete)
		assert.False(t, *cfg.DeleteFrontierOnComplete)
	})

	t.Run("reads yaml file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
output_dir: /var/lib/ricette
request_delay: 5s
category_pages: 10
delete_frontier_on_complete: true
concurrency: 4
db_path: /var/lib/ricette/index.db
`)

		cfg, err := main.LoadConfig(path, main.Config{})

		require.NoError(t, err)
		assert.Equal(t, "/var/lib/ricette", cfg.OutputDir)
		assert.Equal(t, 5*time.Second, cfg.RequestDelay)
		assert.Equal(t, 10, *cfg.CategoryPages)
		assert.True(t, *cfg.DeleteFrontierOnComplete)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "/var/lib/ricette/index.db", cfg.DBPath)
		assert.Equal(t, crawl.DefaultBaseURL, cfg.BaseURL)
	})

	t.Run("flags override file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "output_dir: from-file\ncategory_pages: 10\n")

		cfg, err := main.LoadConfig(path, main.Config{OutputDir: "from-flag"})

		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.OutputDir)
		assert.Equal(t, 10, *cfg.CategoryPages)
	})

	t.Run("zero pages in the file walks only the base listing", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "category_pages: 0\n")

		cfg, err := main.LoadConfig(path, main.Config{})

		require.NoError(t, err)
		assert.Equal(t, 0, *cfg.CategoryPages)
		assert.Equal(t, []string{crawl.DefaultBaseURL}, crawl.CategoryURLs(cfg.BaseURL, *cfg.CategoryPages))
	})

	t.Run("zero pages flag overrides the file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "category_pages: 10\n")
		zero := 0

		cfg, err := main.LoadConfig(path, main.Config{CategoryPages: &zero})

		require.NoError(t, err)
		assert.Equal(t, 0, *cfg.CategoryPages)
	})

	t.Run("false flag turns off frontier deletion set in the file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "delete_frontier_on_complete: true\n")
		keep := false

		cfg, err := main.LoadConfig(path, main.Config{DeleteFrontierOnComplete: &keep})

		require.NoError(t, err)
		assert.False(t, *cfg.DeleteFrontierOnComplete)
	})

	t.Run("negative delay disables politeness delay", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("", main.Config{RequestDelay: -1})

		require.NoError(t, err)
		assert.Negative(t, cfg.RequestDelay)
	})

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "category_pages: [not a number\n")

		_, err := main.LoadConfig(path, main.Config{})

		assert.Error(t, err)
	})
}
