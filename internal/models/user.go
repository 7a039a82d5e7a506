package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"type:text;uniqueIndex;not null"`
	Username  string    `gorm:"type:text;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
