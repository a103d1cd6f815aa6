package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/rs/zerolog"
)

// ResultCache memoizes diff results keyed by a content hash of the two
// texts and the output-affecting option subset. Entries expire after a
// fixed TTL and the cache is bounded to a maximum entry count with
// oldest-first eviction. It is an explicitly constructed service injected
// into the transport layer, never package state.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
	ttl     time.Duration
	maxSize int
	logger  zerolog.Logger

	// Replaceable in tests.
	now func() time.Time
}

type cacheEntry struct {
	key       string
	result    *differ.Result
	createdAt time.Time
}

// NewResultCache creates a result cache from configuration.
func NewResultCache(cfg config.CacheConfig, logger zerolog.Logger) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		ttl:     time.Duration(cfg.TTLSecs) * time.Second,
		maxSize: cfg.MaxEntries,
		logger:  logger.With().Str("component", "ResultCache").Logger(),
		now:     time.Now,
	}
}

// Key derives the cache key for a comparison.
func Key(original, modified string, opts differ.Options) string {
	h := sha256.New()
	h.Write([]byte(original))
	h.Write([]byte{0})
	h.Write([]byte(modified))
	h.Write([]byte{0})
	h.Write([]byte(opts.FingerprintKey()))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, or nil when absent or expired.
func (c *ResultCache) Get(key string) *differ.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil
	}
	entry := elem.Value.(*cacheEntry)
	if c.now().Sub(entry.createdAt) > c.ttl {
		c.removeLocked(elem)
		return nil
	}
	return entry.result
}

// Put stores a result, evicting the oldest entry when the cache is full.
// Storing under an existing key refreshes the entry and its age.
func (c *ResultCache) Put(key string, result *differ.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.logger.Debug().Str("key", oldest.Value.(*cacheEntry).key).Msg("Evicting oldest cache entry")
		c.removeLocked(oldest)
	}

	elem := c.order.PushBack(&cacheEntry{
		key:       key,
		result:    result,
		createdAt: c.now(),
	})
	c.entries[key] = elem
}

// Len returns the current entry count.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *ResultCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	c.order.Remove(elem)
	delete(c.entries, entry.key)
}
