package sampler

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAllPagesOutsideSamplingRange(t *testing.T) {
	tests := []struct {
		name    string
		percent int
	}{
		{"zero percent", 0},
		{"hundred percent", 100},
		{"negative percent", -5},
		{"over hundred", 150},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Select(7, tt.percent)
			require.Len(t, got, 7)
			for i, idx := range got {
				assert.Equal(t, i, idx)
			}
		})
	}
}

func TestSelectEmptyDocument(t *testing.T) {
	s := New()
	for _, percent := range []int{0, 1, 50, 100, -1, 200} {
		assert.Empty(t, s.Select(0, percent), "percent=%d", percent)
	}
}

func TestSelectCountIsFloorClamped(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		percent    int
		wantCount  int
	}{
		{"floor of 20 at 10%", 20, 10, 2},
		{"single page at 1% clamps to one", 1, 1, 1},
		{"low percent on small doc clamps to one", 5, 10, 1},
		{"floor rounds down", 10, 25, 2},
		{"99 percent of 100", 100, 99, 99},
	}

	s := NewWithRand(rand.New(rand.NewSource(42)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Select(tt.totalPages, tt.percent)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestSelectBoundsAndOrdering(t *testing.T) {
	s := NewWithRand(rand.New(rand.NewSource(7)))

	for total := 1; total <= 40; total++ {
		for percent := 1; percent <= 99; percent += 7 {
			got := s.Select(total, percent)

			require.GreaterOrEqual(t, len(got), 1, "total=%d percent=%d", total, percent)
			require.LessOrEqual(t, len(got), total, "total=%d percent=%d", total, percent)

			for i, idx := range got {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, total)
				if i > 0 {
					assert.Greater(t, idx, got[i-1], "indices must be strictly ascending")
				}
			}
		}
	}
}

func TestSelectConcurrently(t *testing.T) {
	// Workers share one Sampler across a batch; concurrent draws must
	// stay valid for both the default and the seeded source.
	samplers := map[string]*Sampler{
		"default": New(),
		"seeded":  NewWithRand(rand.New(rand.NewSource(3))),
	}

	for name, s := range samplers {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						got := s.Select(40, 50)
						assert.Len(t, got, 20)
						for k := 1; k < len(got); k++ {
							assert.Greater(t, got[k], got[k-1])
						}
					}
				}()
			}
			wg.Wait()
		})
	}
}

func TestSelectSeededIsReproducible(t *testing.T) {
	a := NewWithRand(rand.New(rand.NewSource(99)))
	b := NewWithRand(rand.New(rand.NewSource(99)))

	assert.Equal(t, a.Select(50, 30), b.Select(50, 30))
}
