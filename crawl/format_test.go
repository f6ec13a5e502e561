package crawl_test

import (
	"testing"

	"github.com/fwojciec/ricette/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short url unchanged", "https://a.it/x", 40, "https://a.it/x"},
		{"long url keeps the end", "https://ricette.giallozafferano.it/Carbonara.html", 20, "...it/Carbonara.html"},
		{"zero length", "https://a.it", 0, ""},
		{"tiny length", "https://a.it", 3, "htt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.maxLen, 0))
		})
	}
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := crawl.ComputeHash("https://example.com/a")

	assert.Len(t, a, 16)
	assert.Equal(t, a, crawl.ComputeHash("https://example.com/a"))
	assert.NotEqual(t, a, crawl.ComputeHash("https://example.com/b"))
}
