package repositories

import (
	"context"
	"fmt"
	"time"

	"CopiaTrack/models"

	"gorm.io/gorm"
)

// BackupRepository stores backup confirmations in the copias_seguridad table.
type BackupRepository struct {
	db *gorm.DB
}

func NewBackupRepository(db *gorm.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

func (r *BackupRepository) FetchAll(ctx context.Context) (map[string]map[string][]time.Time, error) {
	var rows []models.BackupRecord
	if err := r.db.WithContext(ctx).Order("fecha_copia DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: fetching backups: %v", ErrStoreUnavailable, err)
	}

	grouped := make(map[string]map[string][]time.Time)
	for _, row := range rows {
		if grouped[row.Categoria] == nil {
			grouped[row.Categoria] = make(map[string][]time.Time)
		}
		grouped[row.Categoria][row.Item] = append(grouped[row.Categoria][row.Item], row.FechaCopia)
	}
	return grouped, nil
}

// AppendBatch wraps the inserts in a single transaction: either every valid
// record is committed or none are.
func (r *BackupRepository) AppendBatch(ctx context.Context, records []models.BackupRecord) (int, error) {
	valid := validRecords(records)
	if len(valid) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range valid {
			if err := tx.Create(&valid[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: inserting backups: %v", ErrStoreUnavailable, err)
	}
	return len(valid), nil
}
