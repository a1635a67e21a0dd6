package internal

import (
	"cmp"
	"maps"
	"slices"
)

// Counts tallies disagreements per pattern and remembers the first line
// that showed each one.
type Counts struct {
	n       map[string]int
	example map[string]string
}

func NewCounts() *Counts {
	return &Counts{n: make(map[string]int), example: make(map[string]string)}
}

func (c *Counts) Add(pattern, line string) {
	c.n[pattern]++
	if _, ok := c.example[pattern]; !ok {
		c.example[pattern] = line
	}
}

func (c *Counts) Count(pattern string) int {
	return c.n[pattern]
}

func (c *Counts) Example(pattern string) string {
	return c.example[pattern]
}

func (c *Counts) Total() int {
	sum := 0
	for _, v := range c.n {
		sum += v
	}
	return sum
}

// SortByCount returns the patterns with the most disagreements first.
func (c *Counts) SortByCount() []string {
	return slices.SortedFunc(maps.Keys(c.n), func(a, b string) int {
		if d := cmp.Compare(c.n[b], c.n[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
}
