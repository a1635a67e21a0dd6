package matcher

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

// Cache holds compiled patterns keyed by their source text, for callers that
// match many lines against a small set of patterns. The cache owns its
// entries for its whole lifetime; nothing is evicted.
type Cache struct {
	opts Options

	mu      sync.Mutex
	entries map[string]*Regexp
	hits    uint64
	misses  uint64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewCache creates an empty cache whose patterns are compiled with opts.
func NewCache(opts Options) *Cache {
	return &Cache{
		opts:    opts,
		entries: make(map[string]*Regexp),
	}
}

// Get returns the compiled form of pattern, compiling it on first use.
func (c *Cache) Get(pattern string) (*Regexp, error) {
	c.mu.Lock()
	if re, ok := c.entries[pattern]; ok {
		c.hits++
		c.mu.Unlock()
		return re, nil
	}
	c.misses++
	c.mu.Unlock()

	re, err := CompileWithOptions(pattern, c.opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have compiled the same pattern meanwhile.
	if existing, ok := c.entries[pattern]; ok {
		return existing, nil
	}
	c.entries[pattern] = re
	return re, nil
}

// IsMatch is the cached equivalent of the package level IsMatch.
func (c *Cache) IsMatch(input, pattern string, anchoredAtStart bool) bool {
	re, err := c.Get(pattern)
	if err != nil {
		return false
	}
	return re.IsMatch(input, anchoredAtStart)
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the current cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// RegisterMetrics publishes the cache counters as tricorder metrics below
// dir, e.g. "/yagrep/cache". Registering the same directory twice fails.
func (c *Cache) RegisterMetrics(dir string) error {
	return errors.Join(
		tricorder.RegisterMetric(dir+"/entries",
			func() uint64 { return uint64(c.Stats().Entries) },
			units.None, "number of compiled patterns held"),
		tricorder.RegisterMetric(dir+"/hits",
			func() uint64 { return c.Stats().Hits },
			units.None, "lookups served from the cache"),
		tricorder.RegisterMetric(dir+"/misses",
			func() uint64 { return c.Stats().Misses },
			units.None, "lookups that compiled a pattern"),
	)
}

// ReadMetrics reads back the counters registered below dir through
// tricorder, as a metrics client would see them.
func ReadMetrics(dir string) (CacheStats, error) {
	var stats CacheStats
	found := 0
	for _, m := range tricorder.ReadMyMetrics(dir) {
		var v uint64
		switch n := m.Value.(type) {
		case uint64:
			v = n
		case uint32:
			v = uint64(n)
		default:
			return CacheStats{}, fmt.Errorf("metric %s has type %T", m.Path, m.Value)
		}
		switch strings.TrimPrefix(m.Path, dir+"/") {
		case "entries":
			stats.Entries = int(v)
		case "hits":
			stats.Hits = v
		case "misses":
			stats.Misses = v
		default:
			continue
		}
		found++
	}
	if found != 3 {
		return CacheStats{}, fmt.Errorf("no cache metrics registered below %s", dir)
	}
	return stats, nil
}
