package models

import "time"

// Rating is one user's rating of one rateable entity. At most one row exists
// per (user, entity); re-rates update the row in place.
type Rating struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_identity,priority:1"`
	EntityKind string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_ratings_identity,priority:2"`
	EntityID   string    `gorm:"type:text;not null;uniqueIndex:idx_ratings_identity,priority:3;index"`
	Value      int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
