// Package bloom provides URL deduplication backed by a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Set is a concurrency-safe set of URLs. A Bloom filter answers the common
// "never seen" case; positive answers are confirmed against an exact set so
// a false positive never drops a URL.
type Set struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	exact  map[string]struct{}
	order  []string
}

// NewSet creates a Set sized for n expected URLs with the given Bloom filter
// false positive rate.
func NewSet(n uint, fpRate float64) *Set {
	if n == 0 {
		n = 1
	}
	return &Set{
		filter: bloom.NewWithEstimates(n, fpRate),
		exact:  make(map[string]struct{}, n),
	}
}

// Add inserts url and reports whether it was not already present.
// The check and the insert are atomic.
func (s *Set) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestString(url) {
		if _, ok := s.exact[url]; ok {
			return false
		}
	}
	s.filter.AddString(url)
	s.exact[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Len returns the number of distinct URLs added.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exact)
}

// URLs returns the distinct URLs in insertion order.
func (s *Set) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
