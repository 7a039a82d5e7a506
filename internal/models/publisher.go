package models

import "time"

type Publisher struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Publisher) TableName() string {
	return "catalog_publishers"
}
