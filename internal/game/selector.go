package game

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Selector draws words from a bank without repeating one until every word
// has been shown. A single Selector is shared by all sessions.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from src. Pass a fixed-seed source in tests.
func NewSelector(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// NewSeededSelector returns a Selector over a PCG source seeded with seed.
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick chooses an index not yet in used, appends it to used and returns it with its entry.
// When every index has been used, used is cleared and the draw starts a new round.
// ErrExhausted is returned only for an empty bank.
func (s *Selector) Pick(bank *WordBank, used *[]int) (int, WordEntry, error) {
	available := availableIndices(bank, *used)
	if len(available) == 0 {
		*used = (*used)[:0]
		available = availableIndices(bank, *used)
	}
	if len(available) == 0 {
		return 0, WordEntry{}, ErrExhausted
	}

	s.mu.Lock()
	idx := available[s.rng.IntN(len(available))]
	s.mu.Unlock()

	*used = append(*used, idx)
	entry, _ := bank.Entry(idx)
	return idx, entry, nil
}

func availableIndices(bank *WordBank, used []int) []int {
	return lo.Filter(lo.Range(bank.Len()), func(i int, _ int) bool {
		return !slices.Contains(used, i)
	})
}
