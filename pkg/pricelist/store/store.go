// Package store persists priced tires and import run reports with GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

const defaultBatchSize = 200

// Store implements pricelist.Persister on a relational database.
type Store struct {
	db        *gorm.DB
	batchSize int
}

// New wraps db and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: nil database")
	}
	if err := db.AutoMigrate(&TireRecord{}, &ImportRunRecord{}, &CatalogRunRecord{}, &FailureRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db, batchSize: defaultBatchSize}, nil
}

// Open opens the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return New(db)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ReplaceCatalog swaps the stored tires of catalog for tires in a single
// transaction. Readers see either the old set or the new one.
func (s *Store) ReplaceCatalog(ctx context.Context, catalog string, tires []models.Tire) error {
	now := time.Now().UTC()
	records := make([]TireRecord, 0, len(tires))
	for _, t := range tires {
		rec := newTireRecord(t, now)
		rec.Catalog = catalog
		records = append(records, rec)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog = ?", catalog).Delete(&TireRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, s.batchSize).Error
	})
}

// SaveReport stores the batch report with its catalog outcomes and soft failures.
func (s *Store) SaveReport(ctx context.Context, report *models.BatchReport) error {
	if report == nil {
		return errors.New("store: nil report")
	}
	run := newImportRunRecord(report)
	return s.db.WithContext(ctx).Session(&gorm.Session{CreateBatchSize: s.batchSize}).Create(&run).Error
}

// Tires returns the stored tires of catalog in source row order.
func (s *Store) Tires(ctx context.Context, catalog string) ([]models.Tire, error) {
	var records []TireRecord
	err := s.db.WithContext(ctx).
		Where("catalog = ?", catalog).
		Order("source_row ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	tires := make([]models.Tire, 0, len(records))
	for _, r := range records {
		tires = append(tires, r.Tire())
	}
	return tires, nil
}

// CountByCatalog returns the number of stored tires per catalog.
func (s *Store) CountByCatalog(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Catalog string
		Count   int64
	}
	err := s.db.WithContext(ctx).
		Model(&TireRecord{}).
		Select("catalog, COUNT(*) AS count").
		Group("catalog").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Catalog] = r.Count
	}
	return counts, nil
}

// Run returns a stored import run with its catalogs and failures.
func (s *Store) Run(ctx context.Context, id string) (*ImportRunRecord, error) {
	var run ImportRunRecord
	err := s.db.WithContext(ctx).
		Preload("Catalogs").
		Preload("Failures").
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
