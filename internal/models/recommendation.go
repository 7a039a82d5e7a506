package models

import "time"

// Recommendation rows are a cache of the latest generated batch per user.
// They are always derivable from catalog + preference state and carry no
// durability guarantee.
type Recommendation struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	BatchID        string    `gorm:"type:uuid;not null;index"`
	UserID         string    `gorm:"type:uuid;not null;index"`
	BookExternalID string    `gorm:"type:text;not null"`
	Score          float64   `gorm:"not null"`
	Rank           int       `gorm:"not null"`
	GeneratedAt    time.Time `gorm:"type:timestamptz;not null;index"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
