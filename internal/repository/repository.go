package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bookhive/internal/models"
)

// CatalogRepository covers everything the ingestion pipeline touches: catalog
// entities and the per-source scrape state.
type CatalogRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	UpsertBooksTx(ctx context.Context, tx *gorm.DB, items []models.Book) error
	UpsertAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.Author) error
	UpsertGenresTx(ctx context.Context, tx *gorm.DB, items []models.Genre) error
	UpsertPublishersTx(ctx context.Context, tx *gorm.DB, items []models.Publisher) error
	UpsertBookAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.BookAuthor) error
	UpsertBookGenresTx(ctx context.Context, tx *gorm.DB, items []models.BookGenre) error

	GetBookByExternalID(ctx context.Context, externalID string) (*models.Book, error)
	ListBooksByIDs(ctx context.Context, externalIDs []string) ([]models.Book, error)
	ListBooks(ctx context.Context, params ListBooksParams) ([]models.Book, error)
	CountBooks(ctx context.Context, params ListBooksParams) (int64, error)
	ListAuthors(ctx context.Context, params ListNamedParams) ([]models.Author, error)
	ListGenres(ctx context.Context, params ListNamedParams) ([]models.Genre, error)
	ListBookGenresByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error)
	ListBookAuthorsByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error)

	// Scrape state. ClaimScrapeState is a single conditional update with a
	// status precondition; it is the only way a run acquires the source.
	// A running row whose last attempt predates staleBefore counts as an
	// orphaned claim (crashed run) and is reclaimable; a zero staleBefore
	// disables reclaim.
	ClaimScrapeState(ctx context.Context, source, token string, now, staleBefore time.Time) (bool, error)
	GetScrapeState(ctx context.Context, source string) (*models.ScrapeState, error)
	AdvanceScrapeStateTx(ctx context.Context, tx *gorm.DB, token string, cursor *string, stats datatypes.JSON) error
	CompleteScrapeState(ctx context.Context, token string, status string, cursor *string, now time.Time) error
	FailScrapeState(ctx context.Context, token string, lastError string, now time.Time) error
	ListScrapeStates(ctx context.Context) ([]models.ScrapeState, error)
}

// Repository is the unified store shared by ratings, preferences, the
// recommendation generator and the HTTP surface.
type Repository interface {
	CatalogRepository

	// Rateable aggregates: lock-then-save inside one transaction.
	LockRateableTx(ctx context.Context, tx *gorm.DB, kind, entityID string) (models.Rateable, error)
	SaveRateableStatsTx(ctx context.Context, tx *gorm.DB, kind, entityID string, entity models.Rateable) error

	GetRatingTx(ctx context.Context, tx *gorm.DB, userID, kind, entityID string) (*models.Rating, error)
	SaveRatingTx(ctx context.Context, tx *gorm.DB, item *models.Rating) error
	DeleteRatingTx(ctx context.Context, tx *gorm.DB, id uint64) error
	ListRatingsByUser(ctx context.Context, userID string, kind string) ([]models.Rating, error)

	// Preferences: identity is (user, entity); weight rows are locked while
	// accumulating to serialize concurrent signals for the same pair.
	GetGenrePreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, genreKey string) (*models.UserGenrePreference, error)
	SaveGenrePreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserGenrePreference) error
	GetAuthorPreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, authorKey string) (*models.UserAuthorPreference, error)
	SaveAuthorPreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserAuthorPreference) error
	ListGenrePreferences(ctx context.Context, userID string) ([]models.UserGenrePreference, error)
	ListAuthorPreferences(ctx context.Context, userID string) ([]models.UserAuthorPreference, error)

	// Collections.
	CreateCollection(ctx context.Context, item *models.BookCollection) error
	GetCollectionByID(ctx context.Context, id string) (*models.BookCollection, error)
	AddCollectionItem(ctx context.Context, item *models.CollectionItem) error
	ListCollectionItems(ctx context.Context, collectionID string) ([]models.CollectionItem, error)

	// Users (identity lookup).
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, item *models.User) error

	// Recommendations.
	ListCandidateBooks(ctx context.Context, userID string, limit int) ([]models.Book, error)
	ReplaceRecommendations(ctx context.Context, userID string, items []models.Recommendation) error
	ListRecommendations(ctx context.Context, userID string, limit int) ([]models.Recommendation, error)
}

type ListBooksParams struct {
	Search    string
	Language  *string
	GenreKey  *string
	AuthorKey *string
	MinYear   *int
	MaxYear   *int
	OrderBy   string
	Asc       bool
	Limit     int
	Offset    int
}

type ListNamedParams struct {
	Search string
	Limit  int
	Offset int
}
