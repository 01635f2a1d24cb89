package repositories

import (
	"context"
	"testing"
	"time"

	"CopiaTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB builds an in-memory database with the copias_seguridad table.
// The CHECK constraint lets tests force a mid-batch insert failure.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE copias_seguridad (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		categoria TEXT NOT NULL,
		item TEXT NOT NULL,
		fecha_copia DATETIME NOT NULL,
		CHECK (item <> 'boom')
	)`).Error
	require.NoError(t, err)
	return db
}

func record(categoria, item string, ts time.Time) models.BackupRecord {
	return models.BackupRecord{Categoria: categoria, Item: item, FechaCopia: ts}
}

func TestAppendBatchAndFetchAll(t *testing.T) {
	repo := NewBackupRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 12, 5, 14, 30, 0, 0, time.Local)
	count, err := repo.AppendBatch(ctx, []models.BackupRecord{
		record("clasificados", "Homero", base),
		record("clasificados", "Homero", base.Add(48*time.Hour)),
		record("suscripciones", "Ana", base.Add(time.Hour)),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	grouped, err := repo.FetchAll(ctx)
	require.NoError(t, err)

	homero := grouped["clasificados"]["Homero"]
	require.Len(t, homero, 2)
	assert.True(t, homero[0].After(homero[1]), "history must be newest first")
	assert.Equal(t, base.Add(48*time.Hour).Unix(), homero[0].Unix())

	require.Len(t, grouped["suscripciones"]["Ana"], 1)
}

func TestAppendBatchSkipsIncompleteRecords(t *testing.T) {
	repo := NewBackupRepository(openTestDB(t))
	ctx := context.Background()

	now := time.Now()
	count, err := repo.AppendBatch(ctx, []models.BackupRecord{
		record("", "Homero", now),
		record("clasificados", "", now),
		record("clasificados", "Edictos", time.Time{}),
		record("clasificados", "Edictos", now),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	grouped, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped["clasificados"]["Edictos"], 1)
}

func TestAppendBatchEmpty(t *testing.T) {
	repo := NewBackupRepository(openTestDB(t))

	count, err := repo.AppendBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAppendBatchRollsBackOnFailure(t *testing.T) {
	repo := NewBackupRepository(openTestDB(t))
	ctx := context.Background()

	now := time.Now()
	_, err := repo.AppendBatch(ctx, []models.BackupRecord{
		record("clasificados", "Homero", now),
		record("clasificados", "boom", now),
		record("suscripciones", "Ana", now),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	grouped, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, grouped, "no record from a failed batch may be visible")
}
