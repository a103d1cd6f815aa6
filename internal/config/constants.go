package config

const (
	// Diff Defaults
	DefaultDiffGranularity         = "line"
	DefaultDiffSimilarityThreshold = 0.5
	DefaultDiffChunkSize           = 1000
	DefaultDiffMaxInputBytes       = 1 * 1024 * 1024

	// Server Defaults
	DefaultServerListenAddr       = ":8080"
	DefaultServerReadTimeoutSecs  = 15
	DefaultServerWriteTimeoutSecs = 60
	DefaultServerPacingRPS        = 100
	DefaultServerPacingBurst      = 200

	// Cache Defaults
	DefaultCacheTTLSecs    = 300
	DefaultCacheMaxEntries = 1000

	// Rate Limit Defaults
	DefaultRateLimitWindowSecs  = 60
	DefaultRateLimitMaxRequests = 120

	// Resource Limiter Defaults
	DefaultResourceMaxMemoryMB = 1024

	// Storage Defaults
	DefaultStorageSQLiteDBPath     = "database/diffsense/history.db"
	DefaultStorageArchiveBasePath  = "database/diffsense/archive"
	DefaultStorageCompressionCodec = "zstd"

	// Batch Defaults
	DefaultBatchConcurrency = 4
)
