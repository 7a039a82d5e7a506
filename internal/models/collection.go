package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookCollection struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	OwnerID      string          `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:text;not null"`
	Description  *string         `gorm:"type:text"`
	Rating       decimal.Decimal `gorm:"type:numeric(12,8);not null;default:0"`
	RatingsCount int64           `gorm:"not null;default:0"`
	CreatedAt    time.Time       `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"type:timestamptz;autoUpdateTime"`
}

func (BookCollection) TableName() string {
	return "book_collections"
}

func (c *BookCollection) RatingStats() (decimal.Decimal, int64) {
	return c.Rating, c.RatingsCount
}

func (c *BookCollection) SetRatingStats(mean decimal.Decimal, count int64) {
	c.Rating = mean
	c.RatingsCount = count
}

type CollectionItem struct {
	CollectionID   string    `gorm:"primaryKey;type:uuid"`
	BookExternalID string    `gorm:"primaryKey;type:text;index"`
	AddedAt        time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (CollectionItem) TableName() string {
	return "book_collection_items"
}
