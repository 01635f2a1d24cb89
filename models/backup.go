package models

import "time"

// Timestamp layouts shared between the service and the stores.
// DisplayLayout follows the es-CO convention (day/month/year, 24h clock);
// StorageLayout is what the copias_seguridad table holds.
const (
	DisplayLayout = "02/01/2006, 15:04"
	StorageLayout = "2006-01-02 15:04:05"
)

// BackupRecord is one confirmation that an item was backed up.
// Rows are append-only; they are never updated or deleted.
type BackupRecord struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Categoria  string    `gorm:"column:categoria;not null" json:"categoria"`
	Item       string    `gorm:"column:item;not null" json:"item"`
	FechaCopia time.Time `gorm:"column:fecha_copia;not null" json:"fecha"`
}

func (BackupRecord) TableName() string {
	return "copias_seguridad"
}

// ItemStatus is the per-item state derived on every read. It is never
// persisted. LastBackup and DaysSince are nil when the item has no history.
type ItemStatus struct {
	Categoria  string
	Item       string
	History    []time.Time
	LastBackup *time.Time
	DaysSince  *int
	Overdue    bool
}
