package crawl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/ricette/bloom"
)

// CategoryURLs returns the listing pages to walk during discovery: base
// followed by base/page1 through base/pageN, n+1 entries in total.
func CategoryURLs(base string, n int) []string {
	base = strings.TrimRight(base, "/")
	urls := make([]string, 0, max(n, 0)+1)
	urls = append(urls, base)
	for i := 1; i <= n; i++ {
		urls = append(urls, fmt.Sprintf("%s/page%d", base, i))
	}
	return urls
}

// PendingURLs returns the discovered URLs that have not been processed yet.
// URLs are normalized the way Frontier.Push does, so entries differing only
// by fragment count once. The result is deduplicated and sorted; order
// carries no meaning beyond making runs reproducible.
func PendingURLs(discovered []string, processed map[string]struct{}) []string {
	pending := make([]string, 0, len(discovered))
	for _, u := range discovered {
		u = normalizeURL(u)
		if u == "" {
			continue
		}
		if _, ok := processed[u]; ok {
			continue
		}
		pending = append(pending, u)
	}
	slices.Sort(pending)
	return slices.Compact(pending)
}

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 50000
	// frontierFalsePositiveRate is the acceptable false positive rate of the pre-filter.
	frontierFalsePositiveRate = 0.01
)

// Frontier accumulates recipe URLs, dropping duplicates.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	seen *bloom.Set
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: bloom.NewSet(frontierExpectedURLs, frontierFalsePositiveRate)}
}

// Push adds url to the frontier and reports whether it was new.
// Fragments and surrounding whitespace are stripped first; empty URLs are
// rejected.
func (f *Frontier) Push(url string) bool {
	url = normalizeURL(url)
	if url == "" {
		return false
	}
	return f.seen.Add(url)
}

// Claim marks url as taken and reports whether the caller is the first to
// claim it. Workers call Claim before fetching so no URL is fetched twice
// in a run.
func (f *Frontier) Claim(url string) bool {
	return f.Push(url)
}

// Len returns the number of distinct URLs in the frontier.
func (f *Frontier) Len() int {
	return f.seen.Len()
}

// URLs returns the distinct URLs in the order they were first pushed.
func (f *Frontier) URLs() []string {
	return f.seen.URLs()
}

func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}
	return url
}
