package limiter

import (
	"sync"
	"time"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/rs/zerolog"
)

// WindowLimiter is a fixed-window request counter per caller identity.
// All callers share the same window length and request budget; each
// identity gets its own counter that resets when its window rolls over.
type WindowLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	windowSize  time.Duration
	maxRequests int
	logger      zerolog.Logger

	// Replaceable in tests.
	now func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewWindowLimiter creates a window limiter from configuration.
func NewWindowLimiter(cfg config.RateLimitConfig, logger zerolog.Logger) *WindowLimiter {
	return &WindowLimiter{
		windows:     make(map[string]*window),
		windowSize:  time.Duration(cfg.WindowSecs) * time.Second,
		maxRequests: cfg.MaxRequests,
		logger:      logger.With().Str("component", "WindowLimiter").Logger(),
		now:         time.Now,
	}
}

// Allow records one request for the identity and reports whether it fits
// inside the current window.
func (l *WindowLimiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[identity]
	if !ok || now.Sub(w.start) >= l.windowSize {
		l.windows[identity] = &window{start: now, count: 1}
		return true
	}

	if w.count >= l.maxRequests {
		l.logger.Debug().Str("identity", identity).Int("count", w.count).Msg("Request window exhausted")
		return false
	}
	w.count++
	return true
}

// Prune drops windows that rolled over, bounding memory on long uptimes.
func (l *WindowLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for identity, w := range l.windows {
		if now.Sub(w.start) >= l.windowSize {
			delete(l.windows, identity)
		}
	}
}
