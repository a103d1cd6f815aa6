package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/differ"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	cfg := config.StorageConfig{SQLiteDBPath: filepath.Join(t.TempDir(), "history.db")}
	store, err := NewHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)

	result := &differ.Result{Stats: differ.Stats{Added: 2, Removed: 1, Modified: 3, Unchanged: 10}}
	opts := differ.DefaultOptions()

	id, err := store.RecordRun(result, opts, differ.ImpactMedium, 42*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "line", rec.Granularity)
	assert.Equal(t, 2, rec.Added)
	assert.Equal(t, 1, rec.Removed)
	assert.Equal(t, 3, rec.Modified)
	assert.Equal(t, 10, rec.Unchanged)
	assert.Equal(t, "medium", rec.Impact)
	assert.Equal(t, int64(42), rec.DurationMs)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, time.Minute)
}

func TestHistoryStore_ListNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	result := &differ.Result{}

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.RecordRun(result, differ.DefaultOptions(), differ.ImpactLow, time.Millisecond)
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(5 * time.Millisecond)
	}

	records, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)
}

func TestHistoryStore_EmptyList(t *testing.T) {
	store := newTestStore(t)

	records, err := store.ListRuns(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryStore_SchemaIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.InitSchema())
}

func TestArchiver_ExportReadRoundTrip(t *testing.T) {
	cfg := config.StorageConfig{
		ArchiveBasePath:  t.TempDir(),
		CompressionCodec: "zstd",
	}
	archiver := NewArchiver(cfg, zerolog.Nop())

	now := time.Now().UTC().Truncate(time.Millisecond)
	records := []DiffRunRecord{
		{ID: "run-1", CreatedAt: now, Granularity: "line", Added: 1, Removed: 2, Modified: 3, Unchanged: 4, Impact: "low", DurationMs: 12},
		{ID: "run-2", CreatedAt: now.Add(time.Second), Granularity: "word", Added: 5, Impact: "high", DurationMs: 99},
	}

	path, err := archiver.Export(records)
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := archiver.Read(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "run-1", loaded[0].ID)
	assert.Equal(t, now.UnixMilli(), loaded[0].CreatedAt)
	assert.Equal(t, int32(3), loaded[0].Modified)
	assert.Equal(t, "word", loaded[1].Granularity)
	assert.Equal(t, int64(99), loaded[1].DurationMs)
}

func TestArchiver_ExportEmpty(t *testing.T) {
	cfg := config.StorageConfig{ArchiveBasePath: t.TempDir(), CompressionCodec: "none"}
	archiver := NewArchiver(cfg, zerolog.Nop())

	path, err := archiver.Export(nil)
	require.NoError(t, err)

	loaded, err := archiver.Read(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
