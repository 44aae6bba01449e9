// Package sqlstore persists inventory in SQLite through GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pantryassistant/inventory"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// itemModel is the inventory table row.
type itemModel struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"type:text;uniqueIndex;not null"`
	Quantity  float64 `gorm:"not null"`
	Unit      string  `gorm:"type:text;not null;default:'units'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (itemModel) TableName() string { return "inventory" }

func (m itemModel) toItem() inventory.Item {
	return inventory.Item{
		Name:      m.Name,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Store implements inventory.Store on a GORM database.
type Store struct {
	db *gorm.DB
}

var _ inventory.Store = (*Store)(nil)

// Open opens (creating if needed) the SQLite database at path and migrates
// the inventory table. An empty path opens an in-memory database.
func Open(path string, debug bool) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	level := logger.Silent
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite allows a single writer; an in-memory database also lives on a
	// single connection.
	sqlDB.SetMaxOpenConns(1)

	return New(db)
}

// New wraps an existing GORM handle and migrates the inventory table.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&itemModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate inventory table: %w", err)
	}
	slog.Info("STORE: Inventory database ready")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) GetItem(ctx context.Context, name string) (inventory.Item, bool, error) {
	var m itemModel
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.Item{}, false, nil
	}
	if err != nil {
		return inventory.Item{}, false, err
	}
	return m.toItem(), true, nil
}

func (s *Store) UpsertItem(ctx context.Context, name string, quantity float64, unit string) error {
	m := itemModel{Name: name, Quantity: quantity, Unit: unit}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit", "updated_at"}),
	}).Create(&m).Error
}

func (s *Store) ReduceQuantity(ctx context.Context, name string, amount float64) error {
	if amount <= 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m itemModel
		err := tx.Where("name = ?", name).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("STORE: Item not found, skipping reduction", "name", name)
			return nil
		}
		if err != nil {
			return err
		}

		remaining := m.Quantity - amount
		if remaining <= 0 {
			slog.Info("STORE: Deleted item, quantity reached 0", "name", name)
			return tx.Delete(&m).Error
		}
		slog.Info("STORE: Reduced item", "name", name, "from", m.Quantity, "amount", amount, "to", remaining)
		return tx.Model(&m).Update("quantity", remaining).Error
	})
}

func (s *Store) DeleteItem(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&itemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]inventory.Item, error) {
	var models []itemModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.Item, 0, len(models))
	for _, m := range models {
		items = append(items, m.toItem())
	}
	return items, nil
}
