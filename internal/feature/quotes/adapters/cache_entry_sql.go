// Package adapters provides storage implementations for the quotes feature.
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quote_backend/internal/feature/quotes/usecase"
)

// CacheEntrySQL is a CacheStore backed by a SQL table, used when Redis is not
// available. Expired rows are invisible to Get and removed by DeleteExpired.
type CacheEntrySQL struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check to ensure CacheEntrySQL implements the store interfaces.
var (
	_ usecase.CacheStore   = (*CacheEntrySQL)(nil)
	_ usecase.CacheDeleter = (*CacheEntrySQL)(nil)
)

// NewCacheEntrySQL creates a new instance of CacheEntrySQL.
func NewCacheEntrySQL(db *gorm.DB) *CacheEntrySQL {
	return &CacheEntrySQL{db: db, now: time.Now}
}

// Get returns the unexpired value stored at key.
func (r *CacheEntrySQL) Get(ctx context.Context, key string) (string, bool, error) {
	var model CacheEntryModel
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, r.clock()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.Value, true, nil
}

// Set inserts or replaces the value at key.
func (r *CacheEntrySQL) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	now := r.clock()
	model := CacheEntryModel{Key: key, Value: value, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&model).Error
}

// Delete removes the given keys.
func (r *CacheEntrySQL) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("cache_key IN ?", keys).Delete(&CacheEntryModel{}).Error
}

// DeleteByPrefix removes every entry whose key starts with prefix.
func (r *CacheEntrySQL) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	result := r.db.WithContext(ctx).
		Where("cache_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Delete(&CacheEntryModel{})
	return int(result.RowsAffected), result.Error
}

// DeleteExpired removes rows that have expired and returns how many were removed.
func (r *CacheEntrySQL) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.clock()).
		Delete(&CacheEntryModel{})
	return result.RowsAffected, result.Error
}

// clock returns the current time in UTC at second precision, so stored
// timestamps compare correctly even where the driver stores them as text.
func (r *CacheEntrySQL) clock() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
