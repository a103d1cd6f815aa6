package datastore

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DiffRunRecord is one row in the diff_history table.
type DiffRunRecord struct {
	ID          string
	CreatedAt   time.Time
	Granularity string
	Added       int
	Removed     int
	Modified    int
	Unchanged   int
	Impact      string
	DurationMs  int64
}

// HistoryStore persists one record per completed diff run.
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryStore initializes the store and ensures the schema is set up.
func NewHistoryStore(cfg config.StorageConfig, logger zerolog.Logger) (*HistoryStore, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()
	logger.Info().Str("db_path", cfg.SQLiteDBPath).Msg("Initializing history database connection")

	dbDir := filepath.Dir(cfg.SQLiteDBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create history database directory")
	}

	dbInstance, err := sql.Open("sqlite", cfg.SQLiteDBPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open history database")
	}

	store := &HistoryStore{db: dbInstance, logger: logger}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize history schema")
	}
	return store, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the diff_history table if it does not already exist.
func (s *HistoryStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS diff_history (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		granularity TEXT NOT NULL,
		added INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		unchanged INTEGER NOT NULL,
		impact TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_diff_history_created_at ON diff_history (created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return errorwrapper.WrapError(err, "failed to create diff_history table")
	}
	return nil
}

// RecordRun inserts one row describing a finished comparison and returns
// the generated run ID.
func (s *HistoryStore) RecordRun(result *differ.Result, opts differ.Options, impact differ.Impact, duration time.Duration) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO diff_history (id, created_at, granularity, added, removed, modified, unchanged, impact, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		time.Now().UTC(),
		string(opts.Granularity),
		result.Stats.Added,
		result.Stats.Removed,
		result.Stats.Modified,
		result.Stats.Unchanged,
		string(impact),
		duration.Milliseconds(),
	)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to insert diff run record")
	}

	s.logger.Debug().Str("run_id", id).Msg("Recorded diff run")
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *HistoryStore) ListRuns(limit int) ([]DiffRunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, granularity, added, removed, modified, unchanged, impact, duration_ms
		 FROM diff_history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to query diff history")
	}
	defer rows.Close()

	var records []DiffRunRecord
	for rows.Next() {
		var rec DiffRunRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Granularity, &rec.Added, &rec.Removed,
			&rec.Modified, &rec.Unchanged, &rec.Impact, &rec.DurationMs); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to scan diff run record")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
