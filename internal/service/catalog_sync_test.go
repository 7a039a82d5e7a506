package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bookhive/internal/client/openlibrary"
	"bookhive/internal/config"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type stubCatalogRepo struct {
	repository.CatalogRepository

	mu          sync.Mutex
	books       map[string]models.Book
	authors     map[string]models.Author
	genres      map[string]models.Genre
	publishers  map[string]models.Publisher
	bookAuthors map[string]models.BookAuthor
	bookGenres  map[string]models.BookGenre
	states      map[string]*models.ScrapeState
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		books:       map[string]models.Book{},
		authors:     map[string]models.Author{},
		genres:      map[string]models.Genre{},
		publishers:  map[string]models.Publisher{},
		bookAuthors: map[string]models.BookAuthor{},
		bookGenres:  map[string]models.BookGenre{},
		states:      map[string]*models.ScrapeState{},
	}
}

func (r *stubCatalogRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubCatalogRepo) UpsertBooksTx(ctx context.Context, tx *gorm.DB, items []models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if existing, ok := r.books[item.ExternalID]; ok {
			// Catalog columns only; rating aggregates stay untouched.
			item.Rating = existing.Rating
			item.RatingsCount = existing.RatingsCount
			item.CreatedAt = existing.CreatedAt
		}
		r.books[item.ExternalID] = item
	}
	return nil
}

func (r *stubCatalogRepo) UpsertAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.authors[item.Key] = item
	}
	return nil
}

func (r *stubCatalogRepo) UpsertGenresTx(ctx context.Context, tx *gorm.DB, items []models.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.genres[item.Key] = item
	}
	return nil
}

func (r *stubCatalogRepo) UpsertPublishersTx(ctx context.Context, tx *gorm.DB, items []models.Publisher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.publishers[item.Key] = item
	}
	return nil
}

func (r *stubCatalogRepo) UpsertBookAuthorsTx(ctx context.Context, tx *gorm.DB, items []models.BookAuthor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.bookAuthors[item.BookExternalID+"/"+item.AuthorKey] = item
	}
	return nil
}

func (r *stubCatalogRepo) UpsertBookGenresTx(ctx context.Context, tx *gorm.DB, items []models.BookGenre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.bookGenres[item.BookExternalID+"/"+item.GenreKey] = item
	}
	return nil
}

func (r *stubCatalogRepo) ClaimScrapeState(ctx context.Context, source, token string, now, staleBefore time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[source]
	if !ok {
		state = &models.ScrapeState{Source: source, Status: models.ScrapeStatusIdle}
		r.states[source] = state
	}
	if state.Status == models.ScrapeStatusRunning {
		stale := !staleBefore.IsZero() && state.LastAttemptAt != nil && state.LastAttemptAt.Before(staleBefore)
		if !stale {
			return false, nil
		}
	}
	state.Status = models.ScrapeStatusRunning
	state.ClaimToken = &token
	state.LastAttemptAt = &now
	return true, nil
}

func (r *stubCatalogRepo) GetScrapeState(ctx context.Context, source string) (*models.ScrapeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.states[source]; ok {
		clone := *state
		return &clone, nil
	}
	return nil, nil
}

func (r *stubCatalogRepo) byToken(token string) *models.ScrapeState {
	for _, state := range r.states {
		if state.ClaimToken != nil && *state.ClaimToken == token && state.Status == models.ScrapeStatusRunning {
			return state
		}
	}
	return nil
}

func (r *stubCatalogRepo) AdvanceScrapeStateTx(ctx context.Context, tx *gorm.DB, token string, cursor *string, stats datatypes.JSON) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.byToken(token)
	if state == nil {
		return fmt.Errorf("scrape claim lost")
	}
	state.Cursor = cursor
	state.StatsJSON = stats
	return nil
}

func (r *stubCatalogRepo) CompleteScrapeState(ctx context.Context, token string, status string, cursor *string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.byToken(token)
	if state == nil {
		return fmt.Errorf("scrape claim lost")
	}
	state.Status = status
	if cursor != nil {
		state.Cursor = cursor
	}
	state.ClaimToken = nil
	state.Attempts = 0
	state.LastSuccessAt = &now
	state.LastError = nil
	return nil
}

func (r *stubCatalogRepo) FailScrapeState(ctx context.Context, token string, lastError string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.byToken(token)
	if state == nil {
		return fmt.Errorf("scrape claim lost")
	}
	state.Status = models.ScrapeStatusFailed
	state.ClaimToken = nil
	state.Attempts++
	state.LastError = &lastError
	return nil
}

func (r *stubCatalogRepo) ListScrapeStates(ctx context.Context) ([]models.ScrapeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ScrapeState, 0, len(r.states))
	for _, state := range r.states {
		out = append(out, *state)
	}
	return out, nil
}

func newSyncService(t *testing.T, upstream http.HandlerFunc) (*CatalogSyncService, *stubCatalogRepo, func()) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	repo := newStubCatalogRepo()
	svc := &CatalogSyncService{
		Store:   repo,
		States:  &ScrapeStateService{Repo: repo},
		Library: openlibrary.NewClient(srv.Client(), srv.URL),
		Config: config.CatalogSyncConfig{
			PageLimit:       2,
			MaxPages:        5,
			ExhaustedPolicy: "hold",
		},
	}
	return svc, repo, srv.Close
}

func docsPage(docs string) string {
	return `{"numFound":100,"docs":[` + docs + `]}`
}

func TestRun_PagingAndTerminal(t *testing.T) {
	pages := map[string]string{
		"1": docsPage(`{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"subject":["Science Fiction"],"publisher":["Chilton"],"language":["eng"],"number_of_pages_median":412,"first_publish_year":1965},
			{"key":"/works/OL2W","title":"Hyperion","author_name":["Dan Simmons"],"subject":["Science Fiction"],"first_publish_date":"1989-05"}`),
		"2": docsPage(`{"key":"/works/OL3W","title":"Short Tale"}`),
	}
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			body = docsPage("")
		}
		fmt.Fprint(w, body)
	})
	defer done()

	outcome, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi", Subject: "science_fiction"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !outcome.Terminal {
		t.Fatalf("expected terminal outcome: %+v", outcome)
	}
	if outcome.Pages != 2 || outcome.Books != 3 {
		t.Fatalf("pages=%d books=%d", outcome.Pages, outcome.Books)
	}

	state, err := repo.GetScrapeState(context.Background(), "sci-fi")
	if err != nil || state == nil {
		t.Fatalf("state=%v err=%v", state, err)
	}
	if state.Status != models.ScrapeStatusCompleted {
		t.Fatalf("status=%q", state.Status)
	}
	if state.Cursor == nil || *state.Cursor != "3" {
		t.Fatalf("cursor=%v", state.Cursor)
	}

	dune, ok := repo.books["/works/OL1W"]
	if !ok {
		t.Fatalf("dune not stored")
	}
	if dune.PublishYear == nil || *dune.PublishYear != 1965 {
		t.Fatalf("publish year=%v", dune.PublishYear)
	}
	hyperion := repo.books["/works/OL2W"]
	if hyperion.PublishYear == nil || *hyperion.PublishYear != 1989 {
		t.Fatalf("date fallback year=%v", hyperion.PublishYear)
	}
	if _, ok := repo.bookAuthors["/works/OL1W/frank herbert"]; !ok {
		t.Fatalf("book-author link missing: %v", repo.bookAuthors)
	}
}

func TestRun_ClaimHeld(t *testing.T) {
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, docsPage(""))
	})
	defer done()

	token := "held"
	repo.states["sci-fi"] = &models.ScrapeState{
		Source:     "sci-fi",
		Status:     models.ScrapeStatusRunning,
		ClaimToken: &token,
	}
	_, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"})
	if !errors.Is(err, ErrClaimHeld) {
		t.Fatalf("err=%v want ErrClaimHeld", err)
	}
}

func TestRun_UpstreamFailureKeepsCursor(t *testing.T) {
	var calls int
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, docsPage(`{"key":"/works/OL1W","title":"Dune"},{"key":"/works/OL2W","title":"Hyperion"}`))
			return
		}
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	defer done()

	_, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"})
	if err == nil {
		t.Fatalf("expected failure")
	}
	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.Status != models.ScrapeStatusFailed {
		t.Fatalf("status=%q", state.Status)
	}
	if state.Cursor == nil || *state.Cursor != "2" {
		t.Fatalf("cursor should stay at committed page boundary, got %v", state.Cursor)
	}
	if state.LastError == nil {
		t.Fatalf("last error unset")
	}
}

func TestRun_ShutdownReleasesClaim(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		// Shutdown lands while the run is mid-fetch.
		cancel()
		fmt.Fprint(w, docsPage(`{"key":"/works/OL1W","title":"Dune"}`))
	})
	defer done()

	if _, err := svc.Run(ctx, config.ScrapeSourceConfig{Name: "sci-fi"}); err == nil {
		t.Fatalf("cancelled run should report an error")
	}

	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state == nil {
		t.Fatalf("state missing")
	}
	if state.Status != models.ScrapeStatusFailed {
		t.Fatalf("status=%q, claim left wedged after shutdown", state.Status)
	}
	if state.ClaimToken != nil {
		t.Fatalf("claim token not released")
	}
	if state.LastError == nil || *state.LastError == "" {
		t.Fatalf("last error unset")
	}

	// The next run takes the source again and finishes.
	outcome, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"})
	if err != nil {
		t.Fatalf("resume err=%v", err)
	}
	if outcome.Books == 0 {
		t.Fatalf("resume ingested nothing: %+v", outcome)
	}
}

func TestRun_ResumesFromCursor(t *testing.T) {
	var seenPages []string
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		seenPages = append(seenPages, r.URL.Query().Get("page"))
		fmt.Fprint(w, docsPage(`{"key":"/works/OL9W","title":"Resumed"}`))
	})
	defer done()

	cursor := "7"
	repo.states["sci-fi"] = &models.ScrapeState{
		Source: "sci-fi",
		Status: models.ScrapeStatusFailed,
		Cursor: &cursor,
	}
	outcome, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(seenPages) == 0 || seenPages[0] != "7" {
		t.Fatalf("pages fetched=%v, want resume at 7", seenPages)
	}
	if !outcome.Terminal {
		t.Fatalf("short page should be terminal")
	}
}

func TestRun_RestartPolicyResetsCursor(t *testing.T) {
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, docsPage(`{"key":"/works/OL1W","title":"Only"}`))
	})
	defer done()
	svc.Config.ExhaustedPolicy = "restart"

	if _, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.Cursor == nil || *state.Cursor != "1" {
		t.Fatalf("cursor=%v want restart at 1", state.Cursor)
	}
}

func TestRun_ReingestPreservesRatings(t *testing.T) {
	page := docsPage(`{"key":"/works/OL1W","title":"Dune"}`)
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	})
	defer done()

	if _, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"}); err != nil {
		t.Fatalf("first run err=%v", err)
	}
	book := repo.books["/works/OL1W"]
	book.Rating = decimal.RequireFromString("4.5")
	book.RatingsCount = 2
	repo.books["/works/OL1W"] = book

	if _, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"}); err != nil {
		t.Fatalf("second run err=%v", err)
	}
	after := repo.books["/works/OL1W"]
	if after.RatingsCount != 2 || !after.Rating.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("rating aggregates clobbered: %v/%d", after.Rating, after.RatingsCount)
	}
	if len(repo.books) != 1 {
		t.Fatalf("books=%d want 1", len(repo.books))
	}
}

func TestRun_ParksSourceAfterMaxAttempts(t *testing.T) {
	svc, repo, done := newSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	defer done()
	svc.Config.MaxAttempts = 2

	for i := 0; i < 2; i++ {
		if _, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"}); err == nil {
			t.Fatalf("run %d should fail", i)
		}
	}
	_, err := svc.Run(context.Background(), config.ScrapeSourceConfig{Name: "sci-fi"})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("err=%v want ErrAttemptsExhausted", err)
	}
	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.Attempts != 2 {
		t.Fatalf("attempts=%d", state.Attempts)
	}
}

func TestMapRecords_DedupAndSkip(t *testing.T) {
	records := []openlibrary.Record{
		{Key: "/works/OL1W", Title: "First Pass", AuthorNames: []string{"A. Author"}},
		{Key: "", Title: "No Key"},
		{Key: "/works/OL2W", Title: ""},
		{Key: "/works/OL1W", Title: "Second Pass"},
	}
	batch := mapRecords(records, time.Now().UTC())
	if batch.skipped != 2 {
		t.Fatalf("skipped=%d want 2", batch.skipped)
	}
	if len(batch.books) != 1 {
		t.Fatalf("books=%d want 1", len(batch.books))
	}
	if batch.books[0].Title != "Second Pass" {
		t.Fatalf("title=%q, duplicate should collapse to last occurrence", batch.books[0].Title)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"J.R.R. Tolkien", "j r r tolkien"},
		{"  Science   Fiction ", "science fiction"},
		{"O'Brien", "o brien"},
		{"UPPER-case", "upper case"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := normalizeKey(tc.in); got != tc.want {
			t.Fatalf("normalizeKey(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAudience(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"Juvenile"}, models.AgeRestrictionChildren},
		{[]string{"Young Adult"}, models.AgeRestrictionTeen},
		{[]string{"General"}, models.AgeRestrictionAdult},
		{[]string{"something else"}, models.AgeRestrictionUnknown},
		{nil, models.AgeRestrictionUnknown},
	}
	for _, tc := range cases {
		if got := normalizeAudience(tc.in); got != tc.want {
			t.Fatalf("normalizeAudience(%v)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCursor(t *testing.T) {
	if got := parseCursor(nil); got != 1 {
		t.Fatalf("nil state: %d", got)
	}
	bad := "not-a-number"
	if got := parseCursor(&models.ScrapeState{Cursor: &bad}); got != 1 {
		t.Fatalf("bad cursor: %d", got)
	}
	five := "5"
	if got := parseCursor(&models.ScrapeState{Cursor: &five}); got != 5 {
		t.Fatalf("cursor 5: %d", got)
	}
}
