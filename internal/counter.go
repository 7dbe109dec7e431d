package internal

import (
	"cmp"
	"slices"
)

// Entry is a counted key
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter is a frequency map that remembers where each key was first seen.
// Positions are global sequence numbers, so merging counters built over
// different shards of a transcript yields the same ranking as a single pass.
type Counter[K comparable] struct {
	counts map[K]int
	first  map[K]int64
}

// NewCounter creates an empty Counter
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{
		counts: make(map[K]int),
		first:  make(map[K]int64),
	}
}

// seqOf packs a message index and an in-message position into one ordered value
func seqOf(message, pos int) int64 {
	return int64(message)<<20 | int64(min(pos, 1<<20-1))
}

// Add increments key by n, recording seq as its first sighting if earlier
func (c *Counter[K]) Add(key K, n int, seq int64) {
	c.counts[key] += n
	if f, ok := c.first[key]; !ok || seq < f {
		c.first[key] = seq
	}
}

// Get returns the count for key
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Has reports whether key was ever added
func (c *Counter[K]) Has(key K) bool {
	_, ok := c.counts[key]
	return ok
}

// Len returns the number of distinct keys
func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// Total returns the sum of all counts
func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Merge folds other into c: counts add, first sightings keep the minimum
func (c *Counter[K]) Merge(other *Counter[K]) {
	if other == nil {
		return
	}
	for k, n := range other.counts {
		c.Add(k, n, other.first[k])
	}
}

// Keys returns keys in first-seen order
func (c *Counter[K]) Keys() []K {
	keys := make([]K, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(c.first[a], c.first[b])
	})
	return keys
}

// Map returns a copy of the counts
func (c *Counter[K]) Map() map[K]int {
	out := make(map[K]int, len(c.counts))
	for k, n := range c.counts {
		out[k] = n
	}
	return out
}

// Max returns the key with the highest count; ties go to the key seen first
func (c *Counter[K]) Max() (K, int, bool) {
	var best K
	bestCount := 0
	found := false
	for _, k := range c.Keys() {
		if n := c.counts[k]; !found || n > bestCount {
			best, bestCount, found = k, n, true
		}
	}
	return best, bestCount, found
}

// Top returns up to n entries by descending count, ties by first sighting.
// n <= 0 returns every entry.
func (c *Counter[K]) Top(n int) []Entry[K] {
	entries := c.entries()
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return limit(entries, n)
}

// Bottom returns up to n entries with a positive count by ascending count,
// ties by first sighting.
func (c *Counter[K]) Bottom(n int) []Entry[K] {
	entries := c.entries()
	entries = slices.DeleteFunc(entries, func(e Entry[K]) bool { return e.Count <= 0 })
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(a.Count, b.Count)
	})
	return limit(entries, n)
}

func (c *Counter[K]) entries() []Entry[K] {
	keys := c.Keys()
	entries := make([]Entry[K], 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}
	return entries
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
