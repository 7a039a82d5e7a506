package gormrepository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Catalog upserts --------------------------------------------------------

// UpsertBooksTx deduplicates on external_id. The update set is catalog fields
// only: rating and ratings_count belong to the rating aggregator and must
// survive every re-ingestion.
func (s *Store) UpsertBooksTx(ctx context.Context, tx *gorm.DB, items []models.Book) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"description",
			"language",
			"page_count",
			"publish_year",
			"age_restriction",
			"publisher_key",
			"last_seen_at",
			"raw_json",
		}),
	}), items, 200)
}

func (s *Store) UpsertAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.Author) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}), items, 200)
}

func (s *Store) UpsertGenresTx(ctx context.Context, tx *gorm.DB, items []models.Genre) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}), items, 200)
}

func (s *Store) UpsertPublishersTx(ctx context.Context, tx *gorm.DB, items []models.Publisher) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}), items, 200)
}

func (s *Store) UpsertBookAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.BookAuthor) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_external_id"}, {Name: "author_key"}},
		DoNothing: true,
	}), items, 200)
}

func (s *Store) UpsertBookGenresTx(ctx context.Context, tx *gorm.DB, items []models.BookGenre) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_external_id"}, {Name: "genre_key"}},
		DoNothing: true,
	}), items, 200)
}

// --- Catalog reads ----------------------------------------------------------

func (s *Store) GetBookByExternalID(ctx context.Context, externalID string) (*models.Book, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var book models.Book
	err := s.db.WithContext(ctx).First(&book, "external_id = ?", externalID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *Store) ListBooksByIDs(ctx context.Context, externalIDs []string) ([]models.Book, error) {
	if s == nil || s.db == nil || len(externalIDs) == 0 {
		return nil, nil
	}
	var items []models.Book
	for _, chunk := range chunkStrings(externalIDs, 1000) {
		var batch []models.Book
		if err := s.db.WithContext(ctx).
			Where("external_id IN ?", chunk).
			Find(&batch).Error; err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func (s *Store) ListBooks(ctx context.Context, params repository.ListBooksParams) ([]models.Book, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyBookFilters(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Book
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountBooks(ctx context.Context, params repository.ListBooksParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.applyBookFilters(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) applyBookFilters(ctx context.Context, params repository.ListBooksParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Book{})
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if params.Language != nil && strings.TrimSpace(*params.Language) != "" {
		query = query.Where("language = ?", strings.TrimSpace(*params.Language))
	}
	if params.MinYear != nil {
		query = query.Where("publish_year >= ?", *params.MinYear)
	}
	if params.MaxYear != nil {
		query = query.Where("publish_year <= ?", *params.MaxYear)
	}
	if params.GenreKey != nil && *params.GenreKey != "" {
		query = query.Where(
			"external_id IN (?)",
			s.db.Model(&models.BookGenre{}).Select("book_external_id").Where("genre_key = ?", *params.GenreKey),
		)
	}
	if params.AuthorKey != nil && *params.AuthorKey != "" {
		query = query.Where(
			"external_id IN (?)",
			s.db.Model(&models.BookAuthor{}).Select("book_external_id").Where("author_key = ?", *params.AuthorKey),
		)
	}
	return query
}

func (s *Store) ListAuthors(ctx context.Context, params repository.ListNamedParams) ([]models.Author, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Author{})
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var items []models.Author
	if err := query.Order("key asc").
		Limit(normalizeLimit(params.Limit, 100)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListGenres(ctx context.Context, params repository.ListNamedParams) ([]models.Genre, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Genre{})
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var items []models.Genre
	if err := query.Order("key asc").
		Limit(normalizeLimit(params.Limit, 100)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListBookGenresByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	if s == nil || s.db == nil || len(bookIDs) == 0 {
		return out, nil
	}
	for _, chunk := range chunkStrings(bookIDs, 1000) {
		var rows []models.BookGenre
		if err := s.db.WithContext(ctx).
			Where("book_external_id IN ?", chunk).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.BookExternalID] = append(out[row.BookExternalID], row.GenreKey)
		}
	}
	return out, nil
}

func (s *Store) ListBookAuthorsByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	if s == nil || s.db == nil || len(bookIDs) == 0 {
		return out, nil
	}
	for _, chunk := range chunkStrings(bookIDs, 1000) {
		var rows []models.BookAuthor
		if err := s.db.WithContext(ctx).
			Where("book_external_id IN ?", chunk).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.BookExternalID] = append(out[row.BookExternalID], row.AuthorKey)
		}
	}
	return out, nil
}

// --- Scrape state -----------------------------------------------------------

// ClaimScrapeState transitions idle|completed|failed -> running in one
// conditional UPDATE. RowsAffected == 0 means another run holds the claim.
// A running row with a last attempt older than staleBefore belongs to a run
// that died without releasing; it is claimed over.
func (s *Store) ClaimScrapeState(ctx context.Context, source, token string, now, staleBefore time.Time) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}},
		DoNothing: true,
	}).Create(&models.ScrapeState{
		Source: source,
		Status: models.ScrapeStatusIdle,
	}).Error; err != nil {
		return false, err
	}
	q := s.db.WithContext(ctx).Model(&models.ScrapeState{}).
		Where("source = ?", source)
	if staleBefore.IsZero() {
		q = q.Where("status <> ?", models.ScrapeStatusRunning)
	} else {
		q = q.Where("status <> ? OR last_attempt_at < ?", models.ScrapeStatusRunning, staleBefore)
	}
	res := q.Updates(map[string]any{
		"status":          models.ScrapeStatusRunning,
		"claim_token":     token,
		"last_attempt_at": now,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) GetScrapeState(ctx context.Context, source string) (*models.ScrapeState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var state models.ScrapeState
	err := s.db.WithContext(ctx).First(&state, "source = ?", source).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) AdvanceScrapeStateTx(ctx context.Context, tx *gorm.DB, token string, cursor *string, stats datatypes.JSON) error {
	res := tx.WithContext(ctx).Model(&models.ScrapeState{}).
		Where("claim_token = ?", token).
		Where("status = ?", models.ScrapeStatusRunning).
		Updates(map[string]any{
			"cursor":     cursor,
			"stats_json": stats,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("scrape claim lost for token %s", token)
	}
	return nil
}

func (s *Store) CompleteScrapeState(ctx context.Context, token string, status string, cursor *string, now time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	updates := map[string]any{
		"status":          status,
		"claim_token":     nil,
		"attempts":        0,
		"last_success_at": now,
		"last_error":      nil,
	}
	if cursor != nil {
		updates["cursor"] = *cursor
	}
	res := s.db.WithContext(ctx).Model(&models.ScrapeState{}).
		Where("claim_token = ?", token).
		Where("status = ?", models.ScrapeStatusRunning).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("scrape claim lost for token %s", token)
	}
	return nil
}

// FailScrapeState releases the claim but keeps the cursor so the next run
// resumes from the last committed page.
func (s *Store) FailScrapeState(ctx context.Context, token string, lastError string, now time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.ScrapeState{}).
		Where("claim_token = ?", token).
		Where("status = ?", models.ScrapeStatusRunning).
		Updates(map[string]any{
			"status":      models.ScrapeStatusFailed,
			"claim_token": nil,
			"attempts":    gorm.Expr("attempts + 1"),
			"last_error":  lastError,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("scrape claim lost for token %s", token)
	}
	return nil
}

func (s *Store) ListScrapeStates(ctx context.Context) ([]models.ScrapeState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ScrapeState
	if err := s.db.WithContext(ctx).
		Model(&models.ScrapeState{}).
		Order("source asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Rateables and ratings --------------------------------------------------

func (s *Store) LockRateableTx(ctx context.Context, tx *gorm.DB, kind, entityID string) (models.Rateable, error) {
	switch kind {
	case models.RateableKindBook:
		var book models.Book
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "external_id = ?", entityID).Error
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &book, nil
	case models.RateableKindCollection:
		var coll models.BookCollection
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&coll, "id = ?", entityID).Error
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &coll, nil
	default:
		return nil, fmt.Errorf("unsupported rateable kind: %s", kind)
	}
}

func (s *Store) SaveRateableStatsTx(ctx context.Context, tx *gorm.DB, kind, entityID string, entity models.Rateable) error {
	if entity == nil {
		return nil
	}
	mean, count := entity.RatingStats()
	updates := map[string]any{
		"rating":        mean,
		"ratings_count": count,
	}
	switch kind {
	case models.RateableKindBook:
		return tx.WithContext(ctx).Model(&models.Book{}).
			Where("external_id = ?", entityID).
			Updates(updates).Error
	case models.RateableKindCollection:
		return tx.WithContext(ctx).Model(&models.BookCollection{}).
			Where("id = ?", entityID).
			Updates(updates).Error
	default:
		return fmt.Errorf("unsupported rateable kind: %s", kind)
	}
}

func (s *Store) GetRatingTx(ctx context.Context, tx *gorm.DB, userID, kind, entityID string) (*models.Rating, error) {
	var rating models.Rating
	err := tx.WithContext(ctx).
		First(&rating, "user_id = ? AND entity_kind = ? AND entity_id = ?", userID, kind, entityID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *Store) SaveRatingTx(ctx context.Context, tx *gorm.DB, item *models.Rating) error {
	if item == nil {
		return nil
	}
	return tx.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteRatingTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	return tx.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id).Error
}

func (s *Store) ListRatingsByUser(ctx context.Context, userID string, kind string) ([]models.Rating, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Rating{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("entity_kind = ?", kind)
	}
	var items []models.Rating
	if err := query.Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Preferences ------------------------------------------------------------

func (s *Store) GetGenrePreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, genreKey string) (*models.UserGenrePreference, error) {
	var pref models.UserGenrePreference
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pref, "user_id = ? AND genre_key = ?", userID, genreKey).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Store) SaveGenrePreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserGenrePreference) error {
	if item == nil {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "genre_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weight",
			"preference_type",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetAuthorPreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, authorKey string) (*models.UserAuthorPreference, error) {
	var pref models.UserAuthorPreference
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pref, "user_id = ? AND author_key = ?", userID, authorKey).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Store) SaveAuthorPreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserAuthorPreference) error {
	if item == nil {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "author_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weight",
			"preference_type",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListGenrePreferences(ctx context.Context, userID string) ([]models.UserGenrePreference, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.UserGenrePreference
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("genre_key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListAuthorPreferences(ctx context.Context, userID string) ([]models.UserAuthorPreference, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.UserAuthorPreference
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("author_key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Collections ------------------------------------------------------------

func (s *Store) CreateCollection(ctx context.Context, item *models.BookCollection) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCollectionByID(ctx context.Context, id string) (*models.BookCollection, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var coll models.BookCollection
	err := s.db.WithContext(ctx).First(&coll, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coll, nil
}

func (s *Store) AddCollectionItem(ctx context.Context, item *models.CollectionItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "book_external_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (s *Store) ListCollectionItems(ctx context.Context, collectionID string) ([]models.CollectionItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CollectionItem
	if err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Users ------------------------------------------------------------------

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUserBy(ctx, "id = ?", id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserBy(ctx, "email = ?", email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserBy(ctx, "username = ?", username)
}

func (s *Store) getUserBy(ctx context.Context, cond string, arg string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var user models.User
	err := s.db.WithContext(ctx).First(&user, cond, arg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// --- Recommendations --------------------------------------------------------

func (s *Store) ListCandidateBooks(ctx context.Context, userID string, limit int) ([]models.Book, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeCandidateLimit(limit)
	sub := s.db.Model(&models.Rating{}).
		Select("entity_id").
		Where("user_id = ?", userID).
		Where("entity_kind = ?", models.RateableKindBook)
	var items []models.Book
	if err := s.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("external_id NOT IN (?)", sub).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ReplaceRecommendations(ctx context.Context, userID string, items []models.Recommendation) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		return createInBatches(tx, items, 200)
	})
}

func (s *Store) ListRecommendations(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Recommendation
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rank asc").
		Limit(normalizeLimit(limit, 50)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	switch column {
	case "title", "publish_year", "rating", "ratings_count", "created_at":
	default:
		column = fallback
	}
	direction := "desc"
	if asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func normalizeCandidateLimit(limit int) int {
	if limit <= 0 {
		return 2000
	}
	if limit > 10000 {
		return 10000
	}
	return limit
}

func chunkStrings(items []string, size int) [][]string {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) <= size {
		return [][]string{items}
	}
	chunks := make([][]string, 0, (len(items)/size)+1)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ repository.Repository = (*Store)(nil)
