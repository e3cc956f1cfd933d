// Package sampler selects which pages of a document to render.
//
// Selection is uniform without replacement and the returned indices are
// always sorted ascending, so callers can write pages in document order
// regardless of draw order.
package sampler

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Sampler draws page indices for a document. Safe for concurrent use:
// worker goroutines share one Sampler across a batch.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Sampler that seeds a fresh source from the wall clock on
// every draw. Each batch run is an independent sample.
func New() *Sampler {
	return &Sampler{}
}

// NewWithRand returns a Sampler using the given source, serialized behind
// a mutex. Intended for reproducible tests; production callers use New.
func NewWithRand(rnd *rand.Rand) *Sampler {
	return &Sampler{rnd: rnd}
}

// Select returns the page indices to render for a document with totalPages
// pages, as a strictly ascending slice of values in [0, totalPages).
//
// percent outside (0, 100) selects every page; this deliberately includes
// negative and >100 values, which behave like "select all" rather than
// erroring. Within (0, 100) the count is floor(totalPages*percent/100)
// clamped to [1, totalPages], so any non-empty document yields at least
// one page.
func (s *Sampler) Select(totalPages, percent int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	if percent <= 0 || percent >= 100 {
		all := make([]int, totalPages)
		for i := range all {
			all[i] = i
		}
		return all
	}

	count := totalPages * percent / 100
	if count < 1 {
		count = 1
	}
	if count > totalPages {
		count = totalPages
	}

	picked := s.perm(totalPages)[:count]
	sort.Ints(picked)
	return picked
}

// perm draws a permutation without sharing rng state across goroutines:
// the default path seeds per call, the injected test source is locked.
func (s *Sampler) perm(n int) []int {
	if s.rnd == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano())).Perm(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Perm(n)
}
