package repository

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"interstellar-trade/domain"
)

type gormQuoteRepository struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and migrates the
// quote table.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open quote database: %w", err)
	}
	if err := db.AutoMigrate(&domain.QuoteRecord{}); err != nil {
		return nil, fmt.Errorf("migrate quote table: %w", err)
	}
	return db, nil
}

func NewGormQuoteRepository(db *gorm.DB) QuoteRepository {
	return &gormQuoteRepository{db: db}
}

func (r *gormQuoteRepository) Save(ctx context.Context, record domain.QuoteRecord) error {
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *gormQuoteRepository) Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	var records []domain.QuoteRecord
	query := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load recent quotes: %w", err)
	}
	return records, nil
}
