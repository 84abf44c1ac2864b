package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one persisted snapshot row.
type Slot struct {
	Name      string `gorm:"primaryKey;type:varchar(100)"`
	Value     []byte
	UpdatedAt time.Time
}

// GORMSlotStore is a GORM implementation of SlotStore.
type GORMSlotStore struct {
	db *gorm.DB
}

// NewGORMSlotStore creates a new instance of GORMSlotStore.
func NewGORMSlotStore(db *gorm.DB) *GORMSlotStore {
	return &GORMSlotStore{
		db: db,
	}
}

// Get retrieves a single slot by key.
func (r *GORMSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot Slot
	if err := r.db.WithContext(ctx).First(&slot, "name = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("key %s: %w", key, ErrSlotNotFound)
		}
		return nil, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return slot.Value, nil
}

// PutAll upserts every entry inside one transaction.
func (r *GORMSlotStore) PutAll(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			row := Slot{Name: key, Value: entries[key], UpdatedAt: now}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("failed to write slot %s: %w", key, res.Error)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist slots: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *GORMSlotStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
