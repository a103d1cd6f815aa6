package config

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	ListenAddr       string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	ReadTimeoutSecs  int    `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"gte=0"`
	WriteTimeoutSecs int    `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"gte=0"`

	// Global pacing applied in front of the per-caller window limiter.
	PacingRPS   int `json:"pacing_rps,omitempty" yaml:"pacing_rps,omitempty" validate:"gte=0"`
	PacingBurst int `json:"pacing_burst,omitempty" yaml:"pacing_burst,omitempty" validate:"gte=0"`
}

// NewDefaultServerConfig creates default server configuration.
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:       DefaultServerListenAddr,
		ReadTimeoutSecs:  DefaultServerReadTimeoutSecs,
		WriteTimeoutSecs: DefaultServerWriteTimeoutSecs,
		PacingRPS:        DefaultServerPacingRPS,
		PacingBurst:      DefaultServerPacingBurst,
	}
}

// CacheConfig holds configuration for response memoization.
type CacheConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	TTLSecs    int  `json:"ttl_secs,omitempty" yaml:"ttl_secs,omitempty" validate:"gte=0"`
	MaxEntries int  `json:"max_entries,omitempty" yaml:"max_entries,omitempty" validate:"gte=0"`
}

// NewDefaultCacheConfig creates default cache configuration.
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:    true,
		TTLSecs:    DefaultCacheTTLSecs,
		MaxEntries: DefaultCacheMaxEntries,
	}
}

// RateLimitConfig holds configuration for per-caller request throttling.
type RateLimitConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	WindowSecs  int  `json:"window_secs,omitempty" yaml:"window_secs,omitempty" validate:"gte=1"`
	MaxRequests int  `json:"max_requests,omitempty" yaml:"max_requests,omitempty" validate:"gte=1"`
}

// NewDefaultRateLimitConfig creates default rate limit configuration.
func NewDefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:     true,
		WindowSecs:  DefaultRateLimitWindowSecs,
		MaxRequests: DefaultRateLimitMaxRequests,
	}
}
