package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bookhive/internal/client/openlibrary"
	"bookhive/internal/config"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

// ErrClaimHeld is returned when another run already holds the source claim.
// The scheduler skips the tick; callers must not treat it as a failure.
var ErrClaimHeld = errors.New("scrape claim held by another run")

// ErrAttemptsExhausted marks a source whose consecutive failures reached the
// configured limit. It stays parked until an operator intervenes; a success
// resets the counter.
var ErrAttemptsExhausted = errors.New("scrape attempts exhausted")

const startCursor = "1"

type CatalogSyncService struct {
	Store   repository.CatalogRepository
	States  *ScrapeStateService
	Library *openlibrary.Client
	Logger  *zap.Logger
	Config  config.CatalogSyncConfig
}

type SyncOutcome struct {
	Source     string `json:"source"`
	Pages      int    `json:"pages"`
	Books      int    `json:"books"`
	Authors    int    `json:"authors"`
	Genres     int    `json:"genres"`
	Publishers int    `json:"publishers"`
	Skipped    int    `json:"skipped"`
	NextCursor string `json:"next_cursor"`
	Terminal   bool   `json:"terminal"`
}

// Run claims the source, ingests up to Config.MaxPages pages and releases the
// claim. A page-level upstream failure releases via Fail so the cursor stays
// at the last committed boundary and the next tick resumes from there.
func (s *CatalogSyncService) Run(ctx context.Context, src config.ScrapeSourceConfig) (SyncOutcome, error) {
	if s == nil || s.Store == nil || s.States == nil || s.Library == nil {
		return SyncOutcome{}, fmt.Errorf("catalog sync unavailable")
	}
	if strings.TrimSpace(src.Name) == "" {
		return SyncOutcome{}, fmt.Errorf("scrape source name is required")
	}

	if max := s.Config.MaxAttempts; max > 0 {
		state, err := s.States.Peek(ctx, src.Name)
		if err != nil {
			return SyncOutcome{}, err
		}
		if state != nil && state.Status == models.ScrapeStatusFailed && state.Attempts >= max {
			return SyncOutcome{Source: src.Name}, ErrAttemptsExhausted
		}
	}

	token, ok, err := s.States.Claim(ctx, src.Name, s.Config.ClaimTimeout)
	if err != nil {
		return SyncOutcome{}, err
	}
	if !ok {
		return SyncOutcome{}, ErrClaimHeld
	}

	outcome, err := s.scrapePages(ctx, token, src)
	if err != nil {
		relCtx, cancel := releaseContext(ctx)
		_ = s.States.Fail(relCtx, token, err)
		cancel()
		return outcome, err
	}

	var finalCursor *string
	if outcome.Terminal && strings.EqualFold(s.Config.ExhaustedPolicy, "restart") {
		restart := startCursor
		finalCursor = &restart
	}
	relCtx, cancel := releaseContext(ctx)
	defer cancel()
	if err := s.States.Complete(relCtx, token, outcome.Terminal, finalCursor); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// releaseContext detaches the claim release from the run's context. A run
// cancelled by shutdown or a dropped request must still hand the claim back,
// otherwise the row stays on running until the claim timeout expires.
func releaseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
}

func (s *CatalogSyncService) scrapePages(ctx context.Context, token string, src config.ScrapeSourceConfig) (SyncOutcome, error) {
	outcome := SyncOutcome{Source: src.Name}

	state, err := s.States.Peek(ctx, src.Name)
	if err != nil {
		return outcome, err
	}
	page := parseCursor(state)

	limit := s.Config.PageLimit
	if limit <= 0 {
		limit = 100
	}
	maxPages := s.Config.MaxPages
	if maxPages <= 0 {
		maxPages = 5
	}

	for i := 0; i < maxPages; i++ {
		if err := ctx.Err(); err != nil {
			// Shutdown between pages; the committed cursor already covers
			// everything ingested so far.
			return outcome, err
		}

		records, err := s.Library.Search(ctx, &openlibrary.SearchParams{
			Subject: src.Subject,
			Query:   src.Query,
			Page:    page,
			Limit:   limit,
		})
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("upstream fetch failed",
					zap.String("source", src.Name),
					zap.Int("page", page),
					zap.Bool("rate_limited", openlibrary.IsRateLimited(err)),
					zap.Error(err))
			}
			return outcome, err
		}
		if len(records) == 0 {
			outcome.Terminal = true
			break
		}

		batch := mapRecords(records, time.Now().UTC())
		nextCursor := strconv.Itoa(page + 1)

		err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
			if err := s.Store.UpsertPublishersTx(ctx, tx, batch.publishers); err != nil {
				return err
			}
			if err := s.Store.UpsertAuthorsTx(ctx, tx, batch.authors); err != nil {
				return err
			}
			if err := s.Store.UpsertGenresTx(ctx, tx, batch.genres); err != nil {
				return err
			}
			if err := s.Store.UpsertBooksTx(ctx, tx, batch.books); err != nil {
				return err
			}
			if err := s.Store.UpsertBookAuthorsTx(ctx, tx, batch.bookAuthors); err != nil {
				return err
			}
			if err := s.Store.UpsertBookGenresTx(ctx, tx, batch.bookGenres); err != nil {
				return err
			}
			return s.States.AdvanceTx(ctx, tx, token, nextCursor, statsJSON(map[string]int{
				"books":   len(batch.books),
				"authors": len(batch.authors),
				"genres":  len(batch.genres),
				"skipped": batch.skipped,
			}))
		})
		if err != nil {
			return outcome, err
		}

		outcome.Pages++
		outcome.Books += len(batch.books)
		outcome.Authors += len(batch.authors)
		outcome.Genres += len(batch.genres)
		outcome.Publishers += len(batch.publishers)
		outcome.Skipped += batch.skipped
		outcome.NextCursor = nextCursor

		if batch.skipped > 0 && s.Logger != nil {
			s.Logger.Warn("skipped malformed records",
				zap.String("source", src.Name),
				zap.Int("page", page),
				zap.Int("skipped", batch.skipped))
		}

		page++
		if len(records) < limit {
			outcome.Terminal = true
			break
		}
	}
	return outcome, nil
}

func parseCursor(state *models.ScrapeState) int {
	if state == nil || state.Cursor == nil {
		return 1
	}
	page, err := strconv.Atoi(*state.Cursor)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type recordBatch struct {
	books       []models.Book
	authors     []models.Author
	genres      []models.Genre
	publishers  []models.Publisher
	bookAuthors []models.BookAuthor
	bookGenres  []models.BookGenre
	skipped     int
}

// mapRecords normalizes one upstream page. Records sharing an external id
// within the page collapse to the last occurrence; a malformed record is
// counted and dropped without failing the page.
func mapRecords(records []openlibrary.Record, now time.Time) recordBatch {
	booksByID := map[string]models.Book{}
	authorsByKey := map[string]models.Author{}
	genresByKey := map[string]models.Genre{}
	publishersByKey := map[string]models.Publisher{}
	bookAuthorSet := map[string]models.BookAuthor{}
	bookGenreSet := map[string]models.BookGenre{}
	order := make([]string, 0, len(records))
	batch := recordBatch{}

	for _, rec := range records {
		externalID := strings.TrimSpace(rec.Key)
		title := strings.TrimSpace(rec.Title)
		if externalID == "" || title == "" {
			batch.skipped++
			continue
		}

		book := models.Book{
			ExternalID:     externalID,
			Title:          title,
			Description:    strPtr(rec.Subtitle),
			Language:       normalizeLanguage(rec.Languages),
			PageCount:      positiveIntPtr(rec.PagesMedian),
			PublishYear:    publishYear(rec),
			AgeRestriction: normalizeAudience(rec.Audience),
			LastSeenAt:     now,
			RawJSON:        mustJSON(rec),
		}

		if len(rec.Publishers) > 0 {
			if name := strings.TrimSpace(rec.Publishers[0]); name != "" {
				key := normalizeKey(name)
				if key != "" {
					publishersByKey[key] = models.Publisher{Key: key, Name: name}
					book.PublisherKey = &key
				}
			}
		}

		for _, name := range rec.AuthorNames {
			name = strings.TrimSpace(name)
			key := normalizeKey(name)
			if key == "" {
				continue
			}
			authorsByKey[key] = models.Author{Key: key, Name: name}
			bookAuthorSet[externalID+"\x00"+key] = models.BookAuthor{
				BookExternalID: externalID,
				AuthorKey:      key,
			}
		}

		for _, name := range rec.Subjects {
			name = strings.TrimSpace(name)
			key := normalizeKey(name)
			if key == "" {
				continue
			}
			genresByKey[key] = models.Genre{Key: key, Name: name}
			bookGenreSet[externalID+"\x00"+key] = models.BookGenre{
				BookExternalID: externalID,
				GenreKey:       key,
			}
		}

		if _, seen := booksByID[externalID]; !seen {
			order = append(order, externalID)
		}
		booksByID[externalID] = book
	}

	for _, id := range order {
		batch.books = append(batch.books, booksByID[id])
	}
	for _, a := range authorsByKey {
		batch.authors = append(batch.authors, a)
	}
	for _, g := range genresByKey {
		batch.genres = append(batch.genres, g)
	}
	for _, p := range publishersByKey {
		batch.publishers = append(batch.publishers, p)
	}
	for _, ba := range bookAuthorSet {
		batch.bookAuthors = append(batch.bookAuthors, ba)
	}
	for _, bg := range bookGenreSet {
		batch.bookGenres = append(batch.bookGenres, bg)
	}
	return batch
}

// normalizeKey is the natural-key normalization shared by authors, genres and
// publishers: lowercase, alphanumeric runs joined by single spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func publishYear(rec openlibrary.Record) *int {
	if rec.FirstPublishYear > 0 {
		year := rec.FirstPublishYear
		return &year
	}
	if year, ok := rec.FirstPublishDate.Year(); ok {
		return &year
	}
	return nil
}

func normalizeLanguage(languages []string) *string {
	for _, lang := range languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			return &lang
		}
	}
	return nil
}

func normalizeAudience(audience []string) string {
	for _, a := range audience {
		switch strings.ToLower(strings.TrimSpace(a)) {
		case "juvenile", "children", "children's":
			return models.AgeRestrictionChildren
		case "young adult", "teen", "juvenile fiction":
			return models.AgeRestrictionTeen
		case "adult", "general":
			return models.AgeRestrictionAdult
		}
	}
	return models.AgeRestrictionUnknown
}

func positiveIntPtr(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func statsJSON(stats map[string]int) datatypes.JSON {
	if len(stats) == 0 {
		return datatypes.JSON([]byte("null"))
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(payload)
}

func mustJSON(v any) datatypes.JSON {
	payload, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(payload)
}
