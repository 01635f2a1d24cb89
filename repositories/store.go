package repositories

import (
	"context"
	"errors"
	"time"

	"CopiaTrack/models"

	"github.com/sirupsen/logrus"
)

var (
	// ErrStoreUnavailable marks connectivity or transaction failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidRecord marks a malformed record passed by the call site.
	// Invalid records are skipped before a batch, never aborting it.
	ErrInvalidRecord = errors.New("invalid record")
)

// Store persists backup confirmations. Two implementations exist: the
// relational BackupRepository (default) and the redis SnapshotRepository.
type Store interface {
	// FetchAll returns every record grouped by categoria and item, each
	// list sorted by timestamp descending. Never partial.
	FetchAll(ctx context.Context) (map[string]map[string][]time.Time, error)
	// AppendBatch inserts the valid records atomically and returns how
	// many were inserted. Records with missing fields are skipped before
	// the transaction and do not count.
	AppendBatch(ctx context.Context, records []models.BackupRecord) (int, error)
}

// validRecords drops records with missing fields so a malformed entry never
// aborts the batch.
func validRecords(records []models.BackupRecord) []models.BackupRecord {
	valid := make([]models.BackupRecord, 0, len(records))
	for _, r := range records {
		if r.Categoria == "" || r.Item == "" || r.FechaCopia.IsZero() {
			logrus.WithFields(logrus.Fields{
				"categoria": r.Categoria,
				"item":      r.Item,
			}).Warnf("%v: skipping record with missing fields", ErrInvalidRecord)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}
