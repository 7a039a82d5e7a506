package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AgeRestriction is the normalized audience category of a book.
const (
	AgeRestrictionChildren = "children"
	AgeRestrictionTeen     = "teen"
	AgeRestrictionAdult    = "adult"
	AgeRestrictionUnknown  = "unknown"
)

type Book struct {
	// ExternalID is the upstream catalog identifier and the sole dedup key.
	ExternalID     string          `gorm:"primaryKey;type:text"`
	Title          string          `gorm:"type:text;not null"`
	Description    *string         `gorm:"type:text"`
	Language       *string         `gorm:"type:varchar(20);index"`
	PageCount      *int            `gorm:"default:null"`
	PublishYear    *int            `gorm:"index;default:null"`
	AgeRestriction string          `gorm:"type:varchar(20);not null;default:'unknown';index"`
	PublisherKey   *string         `gorm:"type:text;index"`
	Rating         decimal.Decimal `gorm:"type:numeric(12,8);not null;default:0"`
	RatingsCount   int64           `gorm:"not null;default:0"`
	LastSeenAt     time.Time       `gorm:"type:timestamptz;not null"`
	RawJSON        datatypes.JSON  `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time       `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (Book) TableName() string {
	return "catalog_books"
}

func (b *Book) RatingStats() (decimal.Decimal, int64) {
	return b.Rating, b.RatingsCount
}

func (b *Book) SetRatingStats(mean decimal.Decimal, count int64) {
	b.Rating = mean
	b.RatingsCount = count
}
