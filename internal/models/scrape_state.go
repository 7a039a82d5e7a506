package models

import (
	"time"

	"gorm.io/datatypes"
)

// Scrape source statuses. Running implies a live claim; no two executions may
// hold Running for the same source.
const (
	ScrapeStatusIdle      = "idle"
	ScrapeStatusRunning   = "running"
	ScrapeStatusCompleted = "completed"
	ScrapeStatusFailed    = "failed"
)

type ScrapeState struct {
	Source        string         `gorm:"primaryKey;type:text"`
	Status        string         `gorm:"type:varchar(20);not null;default:'idle'"`
	Cursor        *string        `gorm:"type:text"`
	ClaimToken    *string        `gorm:"type:uuid"`
	Attempts      int            `gorm:"not null;default:0"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz"`
	LastError     *string        `gorm:"type:text"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb"`
}

func (ScrapeState) TableName() string {
	return "scrape_state"
}
