package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"livecounter-backend/internal/model"
)

// DefaultRecentLimit and MaxRecentLimit bound RecentLookups.
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// Store defines the interface for lookup audit persistence.
type Store interface {
	RecordLookup(ctx context.Context, l *model.Lookup) error
	RecentLookups(ctx context.Context, limit int) ([]model.Lookup, error)
	LookupStats(ctx context.Context) ([]model.LookupStat, error)
	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordLookup inserts one audit record.
func (s *gormStore) RecordLookup(ctx context.Context, l *model.Lookup) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to record lookup for %s: %w", l.Resource, err)
	}
	return nil
}

// RecentLookups returns the newest records first. limit is clamped to
// [1, MaxRecentLimit]; zero or negative means DefaultRecentLimit.
func (s *gormStore) RecentLookups(ctx context.Context, limit int) ([]model.Lookup, error) {
	limit = ClampLimit(limit)

	var lookups []model.Lookup
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&lookups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent lookups: %w", err)
	}
	return lookups, nil
}

// LookupStats counts lookups per resource and outcome.
func (s *gormStore) LookupStats(ctx context.Context) ([]model.LookupStat, error) {
	var stats []model.LookupStat
	err := s.db.WithContext(ctx).
		Model(&model.Lookup{}).
		Select("resource, outcome, COUNT(*) AS total").
		Group("resource").
		Group("outcome").
		Order("resource").
		Order("outcome").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lookups: %w", err)
	}
	return stats, nil
}

// Ping checks the database connection.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ClampLimit applies the RecentLookups bounds.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}
