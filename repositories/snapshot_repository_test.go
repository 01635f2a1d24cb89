package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"CopiaTrack/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRedis(t *testing.T) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSnapshotRepository(client), srv
}

func TestSnapshotFetchAllEmptyKey(t *testing.T) {
	repo, _ := openTestRedis(t)

	grouped, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, grouped)
}

func TestSnapshotAppendAndFetch(t *testing.T) {
	repo, _ := openTestRedis(t)
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
	assert.True(t, base.Add(48*time.Hour).Equal(homero[0]))

	require.Len(t, grouped["suscripciones"]["Ana"], 1)
}

func TestSnapshotCapsHistoryAtWrite(t *testing.T) {
	repo, srv := openTestRedis(t)
	ctx := context.Background()

	base := time.Date(2024, 12, 5, 8, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		_, err := repo.AppendBatch(ctx, []models.BackupRecord{
			record("suscripciones", "Juliana", base.Add(time.Duration(i)*time.Hour)),
		})
		require.NoError(t, err)
	}

	// The blob itself holds at most 10 entries per item.
	raw, err := srv.Get(snapshotKey)
	require.NoError(t, err)
	var snapshot map[string]map[string][]string
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	assert.Len(t, snapshot["suscripciones"]["Juliana"], 10)

	grouped, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	juliana := grouped["suscripciones"]["Juliana"]
	require.Len(t, juliana, 10)
	assert.True(t, base.Add(11*time.Hour).Equal(juliana[0]), "newest entry survives the cap")
}

func TestSnapshotAppendSkipsIncompleteRecords(t *testing.T) {
	repo, _ := openTestRedis(t)
	ctx := context.Background()

	now := time.Date(2024, 12, 5, 14, 30, 0, 0, time.Local)
	count, err := repo.AppendBatch(ctx, []models.BackupRecord{
		record("", "Homero", now),
		record("clasificados", "Edictos", time.Time{}),
		record("clasificados", "Edictos", now),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	grouped, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped["clasificados"]["Edictos"], 1)
}

func TestSnapshotStoresMinutePrecision(t *testing.T) {
	repo, srv := openTestRedis(t)
	ctx := context.Background()

	ts := time.Date(2024, 12, 5, 14, 30, 37, 0, time.Local)
	_, err := repo.AppendBatch(ctx, []models.BackupRecord{record("clasificados", "MP", ts)})
	require.NoError(t, err)

	raw, err := srv.Get(snapshotKey)
	require.NoError(t, err)
	var snapshot map[string]map[string][]string
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	require.Len(t, snapshot["clasificados"]["MP"], 1)
	assert.Equal(t, "2024-12-05 14:30:00", snapshot["clasificados"]["MP"][0])
}

func TestSnapshotFetchAllSkipsMalformedStamps(t *testing.T) {
	repo, srv := openTestRedis(t)

	blob, err := json.Marshal(map[string]map[string][]string{
		"clasificados": {"Qhubo": {"2024-12-05 14:30:00", "not-a-date", "2024-12-03 09:00:00"}},
	})
	require.NoError(t, err)
	require.NoError(t, srv.Set(snapshotKey, string(blob)))

	grouped, err := repo.FetchAll(context.Background())
	require.NoError(t, err)

	qhubo := grouped["clasificados"]["Qhubo"]
	require.Len(t, qhubo, 2, "malformed entries are dropped, not fatal")
	assert.True(t, qhubo[0].After(qhubo[1]))
}

func TestSnapshotFetchAllCorruptBlob(t *testing.T) {
	repo, srv := openTestRedis(t)
	require.NoError(t, srv.Set(snapshotKey, "{not json"))

	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSnapshotAppendFailureLeavesBlobIntact(t *testing.T) {
	repo, srv := openTestRedis(t)
	ctx := context.Background()

	now := time.Date(2024, 12, 5, 14, 30, 0, 0, time.Local)
	_, err := repo.AppendBatch(ctx, []models.BackupRecord{record("suscripciones", "Ana", now)})
	require.NoError(t, err)
	before, err := srv.Get(snapshotKey)
	require.NoError(t, err)

	srv.SetError("connection refused")
	_, err = repo.AppendBatch(ctx, []models.BackupRecord{record("suscripciones", "Ana", now.Add(time.Hour))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	srv.SetError("")
	after, err := srv.Get(snapshotKey)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed append must not change the stored snapshot")
}
