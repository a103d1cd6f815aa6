package datastore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ArchiveRecord defines the Parquet schema for archived diff runs.
// Timestamps are stored as Unix milliseconds.
type ArchiveRecord struct {
	ID          string `parquet:"id"`
	CreatedAt   int64  `parquet:"created_at"`
	Granularity string `parquet:"granularity"`
	Added       int32  `parquet:"added"`
	Removed     int32  `parquet:"removed"`
	Modified    int32  `parquet:"modified"`
	Unchanged   int32  `parquet:"unchanged"`
	Impact      string `parquet:"impact"`
	DurationMs  int64  `parquet:"duration_ms"`
}

// Archiver exports diff history to Parquet files for long-term retention.
type Archiver struct {
	config config.StorageConfig
	logger zerolog.Logger
}

// NewArchiver creates a new archiver.
func NewArchiver(cfg config.StorageConfig, logger zerolog.Logger) *Archiver {
	return &Archiver{
		config: cfg,
		logger: logger.With().Str("component", "Archiver").Logger(),
	}
}

// Export writes the given history records to a timestamped Parquet file
// under the archive base path and returns the file path.
func (a *Archiver) Export(records []DiffRunRecord) (string, error) {
	if err := os.MkdirAll(a.config.ArchiveBasePath, 0o755); err != nil {
		return "", errorwrapper.WrapError(err, "failed to create archive directory")
	}

	fileName := time.Now().UTC().Format("20060102T150405Z") + "_history.parquet"
	filePath := filepath.Join(a.config.ArchiveBasePath, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to create archive file")
	}
	defer file.Close()

	writer := parquet.NewWriter(file, parquet.SchemaOf(ArchiveRecord{}), a.compressionOption())
	for _, rec := range records {
		row := ArchiveRecord{
			ID:          rec.ID,
			CreatedAt:   rec.CreatedAt.UnixMilli(),
			Granularity: rec.Granularity,
			Added:       int32(rec.Added),
			Removed:     int32(rec.Removed),
			Modified:    int32(rec.Modified),
			Unchanged:   int32(rec.Unchanged),
			Impact:      rec.Impact,
			DurationMs:  rec.DurationMs,
		}
		if err := writer.Write(&row); err != nil {
			return "", errorwrapper.WrapError(err, "failed to write archive record")
		}
	}
	if err := writer.Close(); err != nil {
		return "", errorwrapper.WrapError(err, "failed to close archive writer")
	}

	a.logger.Info().Str("path", filePath).Int("records", len(records)).Msg("Exported diff history archive")
	return filePath, nil
}

// Read loads every record from an archive file.
func (a *Archiver) Read(filePath string) ([]ArchiveRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open archive file")
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to stat archive file")
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open parquet file")
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	var records []ArchiveRecord
	for {
		var rec ArchiveRecord
		if err := reader.Read(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}

// compressionOption maps the configured codec to a writer option.
func (a *Archiver) compressionOption() parquet.WriterOption {
	switch a.config.CompressionCodec {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}
