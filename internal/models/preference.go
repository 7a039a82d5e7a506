package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreferenceType is a derived classification, recomputed from the accumulated
// weight on every change. It carries no state of its own.
const (
	PreferenceTypeLiked    = "liked"
	PreferenceTypeDisliked = "disliked"
	PreferenceTypeNeutral  = "neutral"
)

// UserGenrePreference identity is (UserID, GenreKey) only; a later signal for
// the same pair updates the row instead of creating a duplicate.
type UserGenrePreference struct {
	UserID         string          `gorm:"primaryKey;type:uuid"`
	GenreKey       string          `gorm:"primaryKey;type:text"`
	Weight         decimal.Decimal `gorm:"type:numeric(12,6);not null;default:0"`
	PreferenceType string          `gorm:"type:varchar(20);not null;default:'neutral'"`
	UpdatedAt      time.Time       `gorm:"type:timestamptz;autoUpdateTime"`
}

func (UserGenrePreference) TableName() string {
	return "user_genre_preferences"
}

type UserAuthorPreference struct {
	UserID         string          `gorm:"primaryKey;type:uuid"`
	AuthorKey      string          `gorm:"primaryKey;type:text"`
	Weight         decimal.Decimal `gorm:"type:numeric(12,6);not null;default:0"`
	PreferenceType string          `gorm:"type:varchar(20);not null;default:'neutral'"`
	UpdatedAt      time.Time       `gorm:"type:timestamptz;autoUpdateTime"`
}

func (UserAuthorPreference) TableName() string {
	return "user_author_preferences"
}
