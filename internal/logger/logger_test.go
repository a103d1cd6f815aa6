package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DefaultConfig(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestBuild_LevelParsing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	log, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	cfg.Level = "shouting"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestBuild_NoWritersFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = false

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestBuild_FileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := DefaultConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = path

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info().Str("key", "value").Msg("file sink works")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file sink works"`)
	assert.Contains(t, string(data), `"key":"value"`)
}
