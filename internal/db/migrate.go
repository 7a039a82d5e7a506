package db

import (
	"bookhive/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Publisher{},
		&models.Author{},
		&models.Genre{},
		&models.Book{},
		&models.BookAuthor{},
		&models.BookGenre{},
		&models.BookCollection{},
		&models.CollectionItem{},
		&models.User{},
		&models.Rating{},
		&models.UserGenrePreference{},
		&models.UserAuthorPreference{},
		&models.Recommendation{},
		&models.ScrapeState{},
	)
}
