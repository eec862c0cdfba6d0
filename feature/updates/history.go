package updates

import (
	"context"
	"fmt"
	"time"

	"mod-sync/core/database"

	"gorm.io/gorm"
)

// DownloadRecord is one row of the download history.
type DownloadRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"size:36;index" json:"run_id"`
	ModName   string    `gorm:"size:255;index" json:"mod_name"`
	Version   string    `gorm:"size:64" json:"version"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	SHA1      string    `gorm:"column:sha1;size:40" json:"sha1"`
	Status    string    `gorm:"size:32" json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	MirrorKey string    `gorm:"size:512" json:"mirror_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name independent of GORM's naming strategy.
func (DownloadRecord) TableName() string {
	return "download_history"
}

var historyColumns = []string{"id", "run_id", "mod_name", "version", "file_name", "sha1", "status", "error", "mirror_key", "created_at"}

// History stores download outcomes.
type History interface {
	Record(ctx context.Context, rec *DownloadRecord) error
	Recent(ctx context.Context, mod string, limit int) ([]DownloadRecord, error)
}

// GormHistory keeps the history in a GORM database.
type GormHistory struct {
	db *gorm.DB
}

// NewGormHistory wraps db.
func NewGormHistory(db *gorm.DB) *GormHistory {
	return &GormHistory{db: db}
}

// Migrate creates or updates the history table.
func (h *GormHistory) Migrate() error {
	if err := h.db.AutoMigrate(&DownloadRecord{}); err != nil {
		return fmt.Errorf("failed to migrate download history: %w", err)
	}
	return nil
}

// MissingColumns reports history columns absent from the live table.
func (h *GormHistory) MissingColumns() ([]string, error) {
	return database.MissingColumns(h.db, DownloadRecord{}.TableName(), historyColumns)
}

// Record inserts rec.
func (h *GormHistory) Record(ctx context.Context, rec *DownloadRecord) error {
	if err := h.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record download of %s: %w", rec.ModName, err)
	}
	return nil
}

// Recent returns the newest records for mod, or for every mod when mod is empty.
func (h *GormHistory) Recent(ctx context.Context, mod string, limit int) ([]DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	q := h.db.WithContext(ctx).Model(&DownloadRecord{})
	if mod != "" {
		q = q.Where("mod_name = ?", mod)
	}

	var out []DownloadRecord
	if err := q.Order("id desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to read download history: %w", err)
	}
	return out, nil
}
