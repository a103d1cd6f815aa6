package config

// StorageConfig holds configuration for diff history persistence.
type StorageConfig struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`
	SQLiteDBPath     string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty"`
	ArchiveBasePath  string `json:"archive_base_path,omitempty" yaml:"archive_base_path,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=none snappy gzip zstd"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Enabled:          false,
		SQLiteDBPath:     DefaultStorageSQLiteDBPath,
		ArchiveBasePath:  DefaultStorageArchiveBasePath,
		CompressionCodec: DefaultStorageCompressionCodec,
	}
}

// ResourceLimiterConfig holds configuration for the process resource guard.
type ResourceLimiterConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	MaxMemoryMB int  `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"gte=0"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration.
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:     true,
		MaxMemoryMB: DefaultResourceMaxMemoryMB,
	}
}

// BatchConfig holds configuration for concurrent batch comparisons.
type BatchConfig struct {
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=1"`
}

// NewDefaultBatchConfig creates default batch configuration.
func NewDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency: DefaultBatchConcurrency,
	}
}
