package limiter

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
)

func newTestLimiter(t *testing.T, windowSecs, maxRequests int) (*WindowLimiter, *time.Time) {
	t.Helper()
	l := NewWindowLimiter(config.RateLimitConfig{Enabled: true, WindowSecs: windowSecs, MaxRequests: maxRequests}, zerolog.Nop())
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestWindowLimiter_BudgetPerWindow(t *testing.T) {
	l, _ := newTestLimiter(t, 60, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d fits the window", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestWindowLimiter_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 60, 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestWindowLimiter_WindowRollover(t *testing.T) {
	l, clock := newTestLimiter(t, 60, 2)

	require.True(t, l.Allow("caller"))
	require.True(t, l.Allow("caller"))
	require.False(t, l.Allow("caller"))

	*clock = clock.Add(59 * time.Second)
	assert.False(t, l.Allow("caller"), "window still open")

	*clock = clock.Add(time.Second)
	assert.True(t, l.Allow("caller"), "fresh window resets the counter")
	assert.True(t, l.Allow("caller"))
	assert.False(t, l.Allow("caller"))
}

func TestWindowLimiter_PruneDropsStaleWindows(t *testing.T) {
	l, clock := newTestLimiter(t, 60, 5)

	l.Allow("a")
	*clock = clock.Add(30 * time.Second)
	l.Allow("b")

	*clock = clock.Add(30 * time.Second)
	l.Prune()

	l.mu.Lock()
	_, hasA := l.windows["a"]
	_, hasB := l.windows["b"]
	l.mu.Unlock()
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestResourceGuard_DisabledNeverBlocks(t *testing.T) {
	g := NewResourceGuard(config.ResourceLimiterConfig{Enabled: false, MaxMemoryMB: 1}, zerolog.Nop())
	assert.NoError(t, g.CheckHeadroom())
}

func TestResourceGuard_CeilingExceeded(t *testing.T) {
	// MaxMemoryMB of zero disables the check; a negative ceiling can never
	// be configured, so force the smallest enabled one and rely on the test
	// binary allocating more than nothing.
	g := NewResourceGuard(config.ResourceLimiterConfig{Enabled: true, MaxMemoryMB: 1}, zerolog.Nop())

	if g.Usage().AllocMB <= 1 {
		t.Skip("test binary heap below 1MB, ceiling not exceeded")
	}
	err := g.CheckHeadroom()
	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrResourceExhausted)
}

func TestResourceGuard_Usage(t *testing.T) {
	g := NewResourceGuard(config.NewDefaultResourceLimiterConfig(), zerolog.Nop())

	usage := g.Usage()
	assert.Greater(t, usage.Goroutines, 0)
	assert.GreaterOrEqual(t, usage.SysMB, usage.AllocMB)
}
