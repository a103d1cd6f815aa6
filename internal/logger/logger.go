package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for logger setup.
type Config struct {
	Level         string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Format        string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=console json"`
	EnableConsole bool   `json:"enable_console" yaml:"enable_console"`
	EnableFile    bool   `json:"enable_file" yaml:"enable_file"`
	FilePath      string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	MaxSizeMB     int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups    int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		Format:        "console",
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// Builder provides a fluent interface for building loggers.
type Builder struct {
	config Config
}

// NewBuilder creates a new logger builder.
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig sets the logger configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// Build creates the logger instance.
func (b *Builder) Build() (zerolog.Logger, error) {
	level, err := parseLevel(b.config.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writers := b.createWriters()
	if len(writers) == 0 {
		return zerolog.Nop(), errorwrapper.NewError("no log output writers configured")
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, nil
}

func (b *Builder) createWriters() []io.Writer {
	var writers []io.Writer
	if b.config.EnableConsole {
		writers = append(writers, b.consoleWriter())
	}
	if b.config.EnableFile && b.config.FilePath != "" {
		writers = append(writers, b.fileWriter())
	}
	return writers
}

func (b *Builder) consoleWriter() io.Writer {
	if b.config.Format == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

// fileWriter creates a rotating file writer. File output is always JSON so
// rotated logs stay machine readable.
func (b *Builder) fileWriter() io.Writer {
	if err := os.MkdirAll(filepath.Dir(b.config.FilePath), 0o755); err != nil {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   b.config.FilePath,
		MaxSize:    b.config.MaxSizeMB,
		MaxBackups: b.config.MaxBackups,
		LocalTime:  true,
	}
}

// New creates a new logger from the given configuration.
func New(cfg Config) (zerolog.Logger, error) {
	return NewBuilder().WithConfig(cfg).Build()
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return parsed, nil
}
