package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/logger"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	DiffConfig            DiffConfig            `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	ServerConfig          ServerConfig          `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	CacheConfig           CacheConfig           `json:"cache_config,omitempty" yaml:"cache_config,omitempty"`
	RateLimitConfig       RateLimitConfig       `json:"rate_limit_config,omitempty" yaml:"rate_limit_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
	StorageConfig         StorageConfig         `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	BatchConfig           BatchConfig           `json:"batch_config,omitempty" yaml:"batch_config,omitempty"`
	LogConfig             logger.Config         `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		DiffConfig:            NewDefaultDiffConfig(),
		ServerConfig:          NewDefaultServerConfig(),
		CacheConfig:           NewDefaultCacheConfig(),
		RateLimitConfig:       NewDefaultRateLimitConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
		StorageConfig:         NewDefaultStorageConfig(),
		BatchConfig:           NewDefaultBatchConfig(),
		LogConfig:             logger.DefaultConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default
// locations. Defaults are applied first, so a partial file only overrides
// the sections it names. Supports both YAML and JSON by file extension.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" {
		if _, err := os.Stat(providedPath); err != nil {
			return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
		}
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension.
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// GetConfigPath determines the configuration file path.
// Priority:
// 1. The path given on the command line.
// 2. DIFFSENSE_CONFIG_PATH environment variable.
// 3. config.yaml / config.json in the current working directory.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv("DIFFSENSE_CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, file := range []string{"config.yaml", "config.yml", "config.json"} {
		path := filepath.Join(cwd, file)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
