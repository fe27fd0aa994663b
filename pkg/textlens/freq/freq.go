// Package freq provides count structures that remember the order in which
// keys were first seen. Tie-breaks in top-k selection depend on that order.
package freq

import (
	"sort"
)

// Entry is a single token count.
type Entry struct {
	Token string `json:"word"`
	Count int    `json:"count"`
}

// Counter maps tokens to counts, preserving first-insertion order.
type Counter struct {
	order  []string
	counts map[string]int
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// FromTokens counts every token in the sequence.
func FromTokens(tokens []string) *Counter {
	c := NewCounter()
	for _, t := range tokens {
		c.Add(t, 1)
	}
	return c
}

// FromEntries rebuilds a counter from entries in insertion order.
func FromEntries(entries []Entry) *Counter {
	c := NewCounter()
	for _, e := range entries {
		c.Add(e.Token, e.Count)
	}
	return c
}

// Add increments token by n. New tokens are appended to the insertion order.
func (c *Counter) Add(token string, n int) {
	if _, ok := c.counts[token]; !ok {
		c.order = append(c.order, token)
	}
	c.counts[token] += n
}

// Get returns the count for token, or 0 if absent.
func (c *Counter) Get(token string) int {
	if c == nil {
		return 0
	}
	return c.counts[token]
}

// Has reports whether token was ever added.
func (c *Counter) Has(token string) bool {
	if c == nil {
		return false
	}
	_, ok := c.counts[token]
	return ok
}

// Len returns the number of distinct tokens.
func (c *Counter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns tokens in insertion order.
func (c *Counter) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns all counts in insertion order.
func (c *Counter) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.order))
	for i, tok := range c.order {
		out[i] = Entry{Token: tok, Count: c.counts[tok]}
	}
	return out
}

// MostCommon returns the k highest counts. Equal counts keep insertion order.
// k <= 0 returns every entry.
func (c *Counter) MostCommon(k int) []Entry {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// Merge adds other's counts into c. Tokens new to c follow other's order.
func (c *Counter) Merge(other *Counter) {
	if other == nil {
		return
	}
	for _, tok := range other.order {
		c.Add(tok, other.counts[tok])
	}
}

// Clone returns an independent copy.
func (c *Counter) Clone() *Counter {
	out := NewCounter()
	out.Merge(c)
	return out
}

// Histogram maps a length to how many tokens have it.
type Histogram struct {
	counts map[int]int
}

// NewHistogram creates an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[int]int)}
}

// Add increments the bucket for length by n.
func (h *Histogram) Add(length, n int) {
	h.counts[length] += n
}

// Get returns the count for a length.
func (h *Histogram) Get(length int) int {
	if h == nil {
		return 0
	}
	return h.counts[length]
}

// Lengths returns the populated lengths in ascending order.
func (h *Histogram) Lengths() []int {
	if h == nil {
		return nil
	}
	out := make([]int, 0, len(h.counts))
	for l := range h.counts {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Total returns the sum of all buckets.
func (h *Histogram) Total() int {
	if h == nil {
		return 0
	}
	total := 0
	for _, n := range h.counts {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (h *Histogram) Clone() *Histogram {
	return &Histogram{counts: h.Map()}
}

// Map returns a copy of the underlying buckets.
func (h *Histogram) Map() map[int]int {
	if h == nil {
		return map[int]int{}
	}
	out := make(map[int]int, len(h.counts))
	for l, n := range h.counts {
		out[l] = n
	}
	return out
}
