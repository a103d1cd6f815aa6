package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
)

func newTestCache(t *testing.T, ttlSecs, maxEntries int) (*ResultCache, *time.Time) {
	t.Helper()
	c := NewResultCache(config.CacheConfig{Enabled: true, TTLSecs: ttlSecs, MaxEntries: maxEntries}, zerolog.Nop())
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestResultCache_PutGet(t *testing.T) {
	c, _ := newTestCache(t, 300, 10)
	result := &differ.Result{Stats: differ.Stats{Unchanged: 3}}

	c.Put("k1", result)

	assert.Same(t, result, c.Get("k1"))
	assert.Nil(t, c.Get("missing"))
	assert.Equal(t, 1, c.Len())
}

func TestResultCache_TTLExpiry(t *testing.T) {
	c, clock := newTestCache(t, 300, 10)
	c.Put("k1", &differ.Result{})

	*clock = clock.Add(300 * time.Second)
	assert.NotNil(t, c.Get("k1"), "entry at exactly the TTL is still live")

	*clock = clock.Add(time.Second)
	assert.Nil(t, c.Get("k1"))
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestResultCache_OldestFirstEviction(t *testing.T) {
	c, clock := newTestCache(t, 300, 2)

	c.Put("first", &differ.Result{})
	*clock = clock.Add(time.Second)
	c.Put("second", &differ.Result{})
	*clock = clock.Add(time.Second)
	c.Put("third", &differ.Result{})

	assert.Nil(t, c.Get("first"))
	assert.NotNil(t, c.Get("second"))
	assert.NotNil(t, c.Get("third"))
	assert.Equal(t, 2, c.Len())
}

func TestResultCache_RefreshMovesToBack(t *testing.T) {
	c, clock := newTestCache(t, 300, 2)

	c.Put("first", &differ.Result{})
	c.Put("second", &differ.Result{})
	*clock = clock.Add(time.Second)

	// Re-putting "first" refreshes its age, so "second" becomes the oldest.
	c.Put("first", &differ.Result{})
	c.Put("third", &differ.Result{})

	assert.NotNil(t, c.Get("first"))
	assert.Nil(t, c.Get("second"))
	assert.NotNil(t, c.Get("third"))
}

func TestKey_SensitiveToInputsAndOptions(t *testing.T) {
	opts := differ.DefaultOptions()

	base := Key("left text", "right text", opts)
	require.Len(t, base, 64)

	assert.Equal(t, base, Key("left text", "right text", opts))
	assert.NotEqual(t, base, Key("left text!", "right text", opts))
	assert.NotEqual(t, base, Key("left text", "right text!", opts))

	swapped := Key("right text", "left text", opts)
	assert.NotEqual(t, base, swapped, "key encodes input order")

	cased := opts
	cased.IgnoreCase = true
	assert.NotEqual(t, base, Key("left text", "right text", cased))

	semantic := opts
	semantic.SemanticAnalysis = true
	semantic.SimilarityThreshold = 0.7
	assert.NotEqual(t, base, Key("left text", "right text", semantic))
}

func TestKey_BoundaryAmbiguity(t *testing.T) {
	opts := differ.DefaultOptions()
	// The separator keeps "ab"+"c" distinct from "a"+"bc".
	assert.NotEqual(t, Key("ab", "c", opts), Key("a", "bc", opts))
}
