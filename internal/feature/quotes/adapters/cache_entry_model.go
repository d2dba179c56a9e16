package adapters

import "time"

// CacheEntryModel is the GORM model for the quote_cache table.
type CacheEntryModel struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (CacheEntryModel) TableName() string {
	return "quote_cache"
}
