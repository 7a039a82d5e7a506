package models

import "time"

type Author struct {
	// Key is the normalized natural key (lowercased, alphanumeric words).
	Key       string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Author) TableName() string {
	return "catalog_authors"
}

type BookAuthor struct {
	BookExternalID string `gorm:"primaryKey;type:text"`
	AuthorKey      string `gorm:"primaryKey;type:text;index"`
}

func (BookAuthor) TableName() string {
	return "catalog_book_authors"
}
