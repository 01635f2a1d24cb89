package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CopiaTrack/catalog"
	"CopiaTrack/models"
	"CopiaTrack/repositories"

	"github.com/sirupsen/logrus"
)

// ErrSaveFailed is returned when the store rejects a batch. The caller's
// state must be left untouched so the operator can retry.
var ErrSaveFailed = errors.New("save failed")

const (
	// historyCap bounds the history returned per item.
	historyCap = 10
	// overdueAfterDays marks an item overdue when its last backup is
	// strictly older than this many whole days.
	overdueAfterDays = 7
)

// BackupService exposes the read and write operations over a Store and
// applies the catalog filter, the history cap and the overdue rule.
type BackupService struct {
	store repositories.Store
	now   func() time.Time
}

func NewBackupService(store repositories.Store) *BackupService {
	return &BackupService{store: store, now: time.Now}
}

// GetStatus returns one ItemStatus per catalog pair. Records whose
// (categoria, item) is not in the catalog are dropped silently.
func (s *BackupService) GetStatus(ctx context.Context) (map[string]map[string]models.ItemStatus, error) {
	grouped, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	statuses := make(map[string]map[string]models.ItemStatus)
	for _, categoria := range catalog.Categories() {
		statuses[categoria] = make(map[string]models.ItemStatus)
		for _, item := range catalog.ItemsOf(categoria) {
			history := grouped[categoria][item]
			if len(history) > historyCap {
				history = history[:historyCap]
			}

			status := models.ItemStatus{
				Categoria: categoria,
				Item:      item,
				History:   history,
			}
			if len(history) > 0 {
				last := history[0]
				days := daysBetween(now, last)
				status.LastBackup = &last
				status.DaysSince = &days
				status.Overdue = days > overdueAfterDays
			}
			statuses[categoria][item] = status
		}
	}
	return statuses, nil
}

// RecordBackups appends one record per selected item, all sharing the same
// timestamp. Items not found in the catalog are skipped. Nothing is mutated
// unless the store confirms the whole batch.
func (s *BackupService) RecordBackups(ctx context.Context, items []string, ts time.Time) (int, error) {
	records := make([]models.BackupRecord, 0, len(items))
	for _, item := range items {
		categoria, ok := catalog.CategoryOf(item)
		if !ok {
			logrus.WithField("item", item).Warn("Skipping item not present in the catalog")
			continue
		}
		records = append(records, models.BackupRecord{
			Categoria:  categoria,
			Item:       item,
			FechaCopia: ts,
		})
	}
	return s.append(ctx, records)
}

// RecordBatch appends caller-built records, each carrying its own timestamp.
// Pairs not present in the catalog are skipped without error.
func (s *BackupService) RecordBatch(ctx context.Context, records []models.BackupRecord) (int, error) {
	valid := make([]models.BackupRecord, 0, len(records))
	for _, r := range records {
		if !catalog.Contains(r.Categoria, r.Item) {
			logrus.WithFields(logrus.Fields{
				"categoria": r.Categoria,
				"item":      r.Item,
			}).Warn("Skipping record not present in the catalog")
			continue
		}
		valid = append(valid, r)
	}
	return s.append(ctx, valid)
}

func (s *BackupService) append(ctx context.Context, records []models.BackupRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	count, err := s.store.AppendBatch(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return count, nil
}

// daysBetween is the floor of the absolute difference in whole days.
func daysBetween(now, last time.Time) int {
	diff := now.Sub(last)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}
