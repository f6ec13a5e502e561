package crawl_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/ricette/crawl"
	"github.com/stretchr/testify/assert"
)

func TestCategoryURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns base followed by paginated pages", func(t *testing.T) {
		t.Parallel()

		got := crawl.CategoryURLs("https://www.giallozafferano.it/ricette-cat", 3)

		assert.Equal(t, []string{
			"https://www.giallozafferano.it/ricette-cat",
			"https://www.giallozafferano.it/ricette-cat/page1",
			"https://www.giallozafferano.it/ricette-cat/page2",
			"https://www.giallozafferano.it/ricette-cat/page3",
		}, got)
	})

	t.Run("zero pages returns only the base", func(t *testing.T) {
		t.Parallel()

		got := crawl.CategoryURLs("https://example.com/cat", 0)

		assert.Equal(t, []string{"https://example.com/cat"}, got)
	})

	t.Run("trailing slash is not doubled", func(t *testing.T) {
		t.Parallel()

		got := crawl.CategoryURLs("https://example.com/cat/", 1)

		assert.Equal(t, []string{"https://example.com/cat", "https://example.com/cat/page1"}, got)
	})
}

func TestPendingURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns set difference sorted", func(t *testing.T) {
		t.Parallel()

		discovered := []string{"d", "a", "c", "b"}
		processed := map[string]struct{}{"b": {}, "x": {}}

		assert.Equal(t, []string{"a", "c", "d"}, crawl.PendingURLs(discovered, processed))
	})

	t.Run("removes duplicates", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"a", "b"}, crawl.PendingURLs([]string{"b", "a", "b"}, nil))
	})

	t.Run("URLs differing only by fragment count once", func(t *testing.T) {
		t.Parallel()

		discovered := []string{
			"https://example.com/recipe-01.html#a",
			"https://example.com/recipe-01.html#b",
			" https://example.com/recipe-02.html",
			"#top",
		}
		processed := map[string]struct{}{"https://example.com/recipe-02.html": {}}

		got := crawl.PendingURLs(discovered, processed)

		assert.Equal(t, []string{"https://example.com/recipe-01.html"}, got)
	})

	t.Run("everything processed yields empty", func(t *testing.T) {
		t.Parallel()

		got := crawl.PendingURLs([]string{"a"}, map[string]struct{}{"a": {}})

		assert.Empty(t, got)
	})

	t.Run("pending equals frontier minus processed for every subset", func(t *testing.T) {
		t.Parallel()

		frontier := []string{"u0", "u1", "u2", "u3", "u4"}
		for mask := range 1 << len(frontier) {
			processed := map[string]struct{}{}
			var want []string
			for i, u := range frontier {
				if mask&(1<<i) != 0 {
					processed[u] = struct{}{}
				} else {
					want = append(want, u)
				}
			}
			got := crawl.PendingURLs(frontier, processed)
			assert.ElementsMatch(t, want, got, "mask %05b", mask)
		}
	})
}

func TestFrontier(t *testing.T) {
	t.Parallel()

	t.Run("push deduplicates and keeps first-seen order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()

		assert.True(t, f.Push("https://example.com/b"))
		assert.True(t, f.Push("https://example.com/a"))
		assert.False(t, f.Push("https://example.com/b"))
		assert.Equal(t, 2, f.Len())
		assert.Equal(t, []string{"https://example.com/b", "https://example.com/a"}, f.URLs())
	})

	t.Run("strips fragments and whitespace", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()

		assert.True(t, f.Push(" https://example.com/a#commenti "))
		assert.False(t, f.Push("https://example.com/a"))
		assert.False(t, f.Claim("https://example.com/a#top"))
		assert.Equal(t, []string{"https://example.com/a"}, f.URLs())
	})

	t.Run("rejects empty URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()

		assert.False(t, f.Push(""))
		assert.False(t, f.Push("#only-fragment"))
		assert.Zero(t, f.Len())
	})

	t.Run("claim succeeds once under contention", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		var claimed [10]atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range claimed {
					if f.Claim(fmt.Sprintf("https://example.com/%d", i)) {
						claimed[i].Add(1)
					}
				}
			}()
		}
		wg.Wait()

		for i := range claimed {
			assert.Equal(t, int32(1), claimed[i].Load(), "url %d", i)
		}
	})
}
