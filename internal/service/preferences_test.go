package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookhive/internal/config"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type stubPrefRepo struct {
	repository.Repository

	genreKeys   []string
	authorKeys  []string
	genrePrefs  map[string]*models.UserGenrePreference
	authorPrefs map[string]*models.UserAuthorPreference
}

func newStubPrefRepo(genres, authors []string) *stubPrefRepo {
	return &stubPrefRepo{
		genreKeys:   genres,
		authorKeys:  authors,
		genrePrefs:  map[string]*models.UserGenrePreference{},
		authorPrefs: map[string]*models.UserAuthorPreference{},
	}
}

func (r *stubPrefRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubPrefRepo) ListBookGenresByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, id := range bookIDs {
		out[id] = r.genreKeys
	}
	return out, nil
}

func (r *stubPrefRepo) ListBookAuthorsByBookIDs(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, id := range bookIDs {
		out[id] = r.authorKeys
	}
	return out, nil
}

func (r *stubPrefRepo) GetGenrePreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, genreKey string) (*models.UserGenrePreference, error) {
	return r.genrePrefs[userID+"/"+genreKey], nil
}

func (r *stubPrefRepo) SaveGenrePreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserGenrePreference) error {
	r.genrePrefs[item.UserID+"/"+item.GenreKey] = item
	return nil
}

func (r *stubPrefRepo) GetAuthorPreferenceForUpdateTx(ctx context.Context, tx *gorm.DB, userID, authorKey string) (*models.UserAuthorPreference, error) {
	return r.authorPrefs[userID+"/"+authorKey], nil
}

func (r *stubPrefRepo) SaveAuthorPreferenceTx(ctx context.Context, tx *gorm.DB, item *models.UserAuthorPreference) error {
	r.authorPrefs[item.UserID+"/"+item.AuthorKey] = item
	return nil
}

func newPrefService(repo *stubPrefRepo) *PreferenceService {
	return &PreferenceService{
		Store: repo,
		Config: config.PreferencesConfig{
			MinWeight:        -10,
			MaxWeight:        10,
			LikedThreshold:   1,
			DislikeThreshold: -1,
		},
	}
}

func TestRecordAction_UpsertsByIdentity(t *testing.T) {
	repo := newStubPrefRepo([]string{"science fiction"}, []string{"frank herbert"})
	svc := newPrefService(repo)

	if err := svc.RecordAction(context.Background(), "u1", "/works/OL1W", ActionAddedToFavourites); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := svc.RecordAction(context.Background(), "u1", "/works/OL1W", ActionReadBook); err != nil {
		t.Fatalf("err=%v", err)
	}

	if len(repo.genrePrefs) != 1 {
		t.Fatalf("genre prefs=%d want 1 row per (user, genre)", len(repo.genrePrefs))
	}
	pref := repo.genrePrefs["u1/science fiction"]
	if pref == nil {
		t.Fatalf("pref missing")
	}
	if !pref.Weight.Equal(decimal.RequireFromString("1.75")) {
		t.Fatalf("weight=%s want 1.75", pref.Weight)
	}
	if pref.PreferenceType != models.PreferenceTypeLiked {
		t.Fatalf("type=%q", pref.PreferenceType)
	}
	author := repo.authorPrefs["u1/frank herbert"]
	if author == nil || !author.Weight.Equal(decimal.RequireFromString("1.75")) {
		t.Fatalf("author pref=%v", author)
	}
}

func TestRecordAction_UnknownAction(t *testing.T) {
	svc := newPrefService(newStubPrefRepo(nil, nil))
	if err := svc.RecordAction(context.Background(), "u1", "/works/OL1W", "glanced_at_cover"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecordRating_CenteredDeltas(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{5, "1"},
		{4, "0.5"},
		{3, "0"},
		{2, "-0.5"},
		{1, "-1"},
	}
	for _, tc := range cases {
		repo := newStubPrefRepo([]string{"fantasy"}, nil)
		svc := newPrefService(repo)
		if err := svc.RecordRating(context.Background(), "u1", "/works/OL1W", tc.value); err != nil {
			t.Fatalf("value %d: err=%v", tc.value, err)
		}
		pref := repo.genrePrefs["u1/fantasy"]
		if pref == nil || !pref.Weight.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("value %d: pref=%v want weight %s", tc.value, pref, tc.want)
		}
	}
}

func TestRecordAction_ClampsWeight(t *testing.T) {
	repo := newStubPrefRepo([]string{"fantasy"}, nil)
	svc := newPrefService(repo)
	repo.genrePrefs["u1/fantasy"] = &models.UserGenrePreference{
		UserID:   "u1",
		GenreKey: "fantasy",
		Weight:   decimal.RequireFromString("9.8"),
	}
	if err := svc.RecordAction(context.Background(), "u1", "/works/OL1W", ActionAddedToFavourites); err != nil {
		t.Fatalf("err=%v", err)
	}
	if got := repo.genrePrefs["u1/fantasy"].Weight; !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("weight=%s want clamp at 10", got)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	svc := newPrefService(nil)
	cases := []struct {
		weight string
		want   string
	}{
		{"1", models.PreferenceTypeLiked},
		{"0.99", models.PreferenceTypeNeutral},
		{"0", models.PreferenceTypeNeutral},
		{"-0.99", models.PreferenceTypeNeutral},
		{"-1", models.PreferenceTypeDisliked},
	}
	for _, tc := range cases {
		if got := svc.classify(decimal.RequireFromString(tc.weight)); got != tc.want {
			t.Fatalf("classify(%s)=%q want %q", tc.weight, got, tc.want)
		}
	}
}
