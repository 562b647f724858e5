package algo_evolution

import "sync"

// CacheKey identifies a set of base arrays. Two evaluations with equal keys
// see identical inputs.
type CacheKey struct {
	N             int
	TrialsPerDist int
	Seed          uint64
	Dataset       bool
}

// ArrayCache holds base input arrays shared across evaluations. Arrays are
// built lazily, one distribution at a time, and are read-only once stored.
type ArrayCache struct {
	mu      sync.Mutex
	entries map[CacheKey]map[Distribution][][]int
}

func NewArrayCache() *ArrayCache {
	return &ArrayCache{entries: make(map[CacheKey]map[Distribution][][]int)}
}

// GetOrBuild returns the arrays stored for (key, dist), calling build to
// create them on first use. The lock is held across build so concurrent
// callers never build the same entry twice.
func (c *ArrayCache) GetOrBuild(key CacheKey, dist Distribution, build func() [][]int) [][]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	byDist, ok := c.entries[key]
	if !ok {
		byDist = make(map[Distribution][][]int)
		c.entries[key] = byDist
	}
	if arrays, ok := byDist[dist]; ok {
		return arrays
	}
	arrays := build()
	byDist[dist] = arrays
	return arrays
}

// Len reports how many (key, distribution) entries are stored.
func (c *ArrayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, byDist := range c.entries {
		total += len(byDist)
	}
	return total
}
