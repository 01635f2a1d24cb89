package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"CopiaTrack/models"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "backup-data"

// snapshotHistoryCap bounds each list persisted in the snapshot. The blob is
// rewritten wholesale on every append, so the cap is applied at write time.
const snapshotHistoryCap = 10

// SnapshotRepository keeps the whole categoria→item→timestamps structure as
// one serialized value under a single redis key. Loads parse the blob, saves
// overwrite it entirely; there are no partial updates.
type SnapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

func (r *SnapshotRepository) FetchAll(ctx context.Context) (map[string]map[string][]time.Time, error) {
	snapshot, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]map[string][]time.Time)
	for categoria, items := range snapshot {
		grouped[categoria] = make(map[string][]time.Time)
		for item, stamps := range items {
			parsed := make([]time.Time, 0, len(stamps))
			for _, s := range stamps {
				ts, err := time.ParseInLocation(models.StorageLayout, s, time.Local)
				if err != nil {
					continue
				}
				parsed = append(parsed, ts)
			}
			sort.Slice(parsed, func(i, j int) bool { return parsed[i].After(parsed[j]) })
			grouped[categoria][item] = parsed
		}
	}
	return grouped, nil
}

// AppendBatch is atomic by construction: the updated snapshot replaces the
// stored one in a single SET, so a failure leaves the previous blob intact.
func (r *SnapshotRepository) AppendBatch(ctx context.Context, records []models.BackupRecord) (int, error) {
	valid := validRecords(records)
	if len(valid) == 0 {
		return 0, nil
	}

	snapshot, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	for _, rec := range valid {
		if snapshot[rec.Categoria] == nil {
			snapshot[rec.Categoria] = make(map[string][]string)
		}
		// The stored format carries no seconds: fecha_copia values always
		// end in :00 regardless of where the timestamp came from.
		stamp := rec.FechaCopia.Truncate(time.Minute).Format(models.StorageLayout)
		history := append([]string{stamp}, snapshot[rec.Categoria][rec.Item]...)
		if len(history) > snapshotHistoryCap {
			history = history[:snapshotHistoryCap]
		}
		snapshot[rec.Categoria][rec.Item] = history
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding snapshot: %v", ErrStoreUnavailable, err)
	}
	if err := r.client.Set(ctx, snapshotKey, payload, 0).Err(); err != nil {
		return 0, fmt.Errorf("%w: writing snapshot: %v", ErrStoreUnavailable, err)
	}
	return len(valid), nil
}

func (r *SnapshotRepository) load(ctx context.Context) (map[string]map[string][]string, error) {
	raw, err := r.client.Get(ctx, snapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return make(map[string]map[string][]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot: %v", ErrStoreUnavailable, err)
	}

	var snapshot map[string]map[string][]string
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %v", ErrStoreUnavailable, err)
	}
	if snapshot == nil {
		snapshot = make(map[string]map[string][]string)
	}
	return snapshot, nil
}
