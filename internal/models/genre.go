package models

import "time"

type Genre struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Genre) TableName() string {
	return "catalog_genres"
}

type BookGenre struct {
	BookExternalID string `gorm:"primaryKey;type:text"`
	GenreKey       string `gorm:"primaryKey;type:text;index"`
}

func (BookGenre) TableName() string {
	return "catalog_book_genres"
}
