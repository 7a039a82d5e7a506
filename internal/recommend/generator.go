package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookhive/internal/config"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

// Volume size buckets by page count. Books without a page count stay out of
// the volume dimension entirely.
const (
	VolumeShort   = "short"
	VolumeMedium  = "medium"
	VolumeLong    = "long"
	VolumeUnknown = "unknown"
)

// defaultPreferenceScale matches the default preference clamp bound. The
// divisor must track the configured bound or stored weights stop mapping
// onto [-1, 1].
const defaultPreferenceScale = 10.0

// Weights holds the per-dimension blend. Scoring always uses the normalized
// form so partial configs still sum to one.
type Weights struct {
	Genre          float64
	Author         float64
	Language       float64
	AgeRestriction float64
	VolumeSize     float64
}

func DefaultWeights() Weights {
	return Weights{
		Genre:          0.35,
		Author:         0.30,
		Language:       0.15,
		AgeRestriction: 0.10,
		VolumeSize:     0.10,
	}
}

func WeightsFromConfig(cfg config.RecommendConfig) Weights {
	w := Weights{
		Genre:          cfg.GenreWeight,
		Author:         cfg.AuthorWeight,
		Language:       cfg.LanguageWeight,
		AgeRestriction: cfg.AgeRestrictionWeight,
		VolumeSize:     cfg.VolumeSizeWeight,
	}
	if w.sum() <= 0 {
		return DefaultWeights()
	}
	return w
}

func (w Weights) sum() float64 {
	return w.Genre + w.Author + w.Language + w.AgeRestriction + w.VolumeSize
}

// Normalize returns a copy whose components sum to 1.0.
func (w Weights) Normalize() Weights {
	total := w.sum()
	if total <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Genre:          w.Genre / total,
		Author:         w.Author / total,
		Language:       w.Language / total,
		AgeRestriction: w.AgeRestriction / total,
		VolumeSize:     w.VolumeSize / total,
	}
}

// ScoredBook is one recommendation with its per-dimension breakdown.
type ScoredBook struct {
	Book       models.Book        `json:"book"`
	Score      float64            `json:"score"`
	Rank       int                `json:"rank"`
	Dimensions map[string]float64 `json:"dimensions"`
}

type Generator struct {
	Store  repository.Repository
	Logger *zap.Logger
	Config config.RecommendConfig
	Prefs  config.PreferencesConfig
}

// prefScale is the divisor turning stored preference weights into unit
// scores; it follows the same config bound the clamp uses.
func (g *Generator) prefScale() float64 {
	if g.Prefs.MaxWeight > 0 {
		return g.Prefs.MaxWeight
	}
	return defaultPreferenceScale
}

// Generate scores unrated books against the user's preference profile and
// returns the top entries in deterministic order. When persistence is
// enabled the batch replaces the user's previous one.
func (g *Generator) Generate(ctx context.Context, userID string, limit int) ([]ScoredBook, error) {
	if g == nil || g.Store == nil {
		return nil, fmt.Errorf("recommendation generator unavailable")
	}
	if limit <= 0 {
		limit = 20
	}

	profile, err := g.buildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := g.Store.ListCandidateBooks(ctx, userID, g.Config.CandidateLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, b := range candidates {
		ids = append(ids, b.ExternalID)
	}
	genresByBook, err := g.Store.ListBookGenresByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authorsByBook, err := g.Store.ListBookAuthorsByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	weights := WeightsFromConfig(g.Config).Normalize()
	scored := make([]ScoredBook, 0, len(candidates))
	for _, book := range candidates {
		// The candidate query already excludes rated books; this guards
		// against a stale read between the two queries.
		if profile.rated[book.ExternalID] {
			continue
		}
		dims := map[string]float64{
			"by_genre":           keyedScore(profile.genres, genresByBook[book.ExternalID]),
			"by_author":          keyedScore(profile.authors, authorsByBook[book.ExternalID]),
			"by_language":        affinity(profile.languages, derefLower(book.Language)),
			"by_age_restriction": affinity(profile.ages, book.AgeRestriction),
			"by_volume_size":     affinity(profile.volumes, VolumeBucket(book.PageCount)),
		}
		score := weights.Genre*dims["by_genre"] +
			weights.Author*dims["by_author"] +
			weights.Language*dims["by_language"] +
			weights.AgeRestriction*dims["by_age_restriction"] +
			weights.VolumeSize*dims["by_volume_size"]
		scored = append(scored, ScoredBook{Book: book, Score: score, Dimensions: dims})
	}

	sortScored(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	if g.Config.PersistBatches {
		if err := g.persist(ctx, userID, scored); err != nil {
			return nil, err
		}
	}
	if g.Logger != nil {
		g.Logger.Debug("recommendations generated",
			zap.String("user_id", userID),
			zap.Int("candidates", len(candidates)),
			zap.Int("returned", len(scored)))
	}
	return scored, nil
}

// sortScored orders by score, then catalog rating, then recency, with the
// external id as a final stable tiebreak.
func sortScored(items []ScoredBook) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if cmp := items[i].Book.Rating.Cmp(items[j].Book.Rating); cmp != 0 {
			return cmp > 0
		}
		if !items[i].Book.CreatedAt.Equal(items[j].Book.CreatedAt) {
			return items[i].Book.CreatedAt.After(items[j].Book.CreatedAt)
		}
		return items[i].Book.ExternalID < items[j].Book.ExternalID
	})
}

func (g *Generator) persist(ctx context.Context, userID string, scored []ScoredBook) error {
	batchID := uuid.NewString()
	now := time.Now().UTC()
	items := make([]models.Recommendation, 0, len(scored))
	for _, s := range scored {
		items = append(items, models.Recommendation{
			BatchID:        batchID,
			UserID:         userID,
			BookExternalID: s.Book.ExternalID,
			Score:          s.Score,
			Rank:           s.Rank,
			GeneratedAt:    now,
		})
	}
	return g.Store.ReplaceRecommendations(ctx, userID, items)
}

// profile carries the user's taste as per-key signed weights scaled to
// [-1, 1] per dimension.
type profile struct {
	genres    map[string]float64
	authors   map[string]float64
	languages map[string]float64
	ages      map[string]float64
	volumes   map[string]float64
	rated     map[string]bool
}

func (g *Generator) buildProfile(ctx context.Context, userID string) (profile, error) {
	p := profile{
		genres:    map[string]float64{},
		authors:   map[string]float64{},
		languages: map[string]float64{},
		ages:      map[string]float64{},
		volumes:   map[string]float64{},
		rated:     map[string]bool{},
	}

	scale := g.prefScale()
	genrePrefs, err := g.Store.ListGenrePreferences(ctx, userID)
	if err != nil {
		return p, err
	}
	for _, pref := range genrePrefs {
		p.genres[pref.GenreKey] = pref.Weight.InexactFloat64() / scale
	}
	authorPrefs, err := g.Store.ListAuthorPreferences(ctx, userID)
	if err != nil {
		return p, err
	}
	for _, pref := range authorPrefs {
		p.authors[pref.AuthorKey] = pref.Weight.InexactFloat64() / scale
	}

	// Language, audience and volume taste is derived from ratings on the
	// fly rather than stored; strong ratings vote the book's traits up or
	// down.
	ratings, err := g.Store.ListRatingsByUser(ctx, userID, models.RateableKindBook)
	if err != nil {
		return p, err
	}
	if len(ratings) == 0 {
		return p, nil
	}
	ratedIDs := make([]string, 0, len(ratings))
	valueByID := make(map[string]int, len(ratings))
	for _, r := range ratings {
		ratedIDs = append(ratedIDs, r.EntityID)
		valueByID[r.EntityID] = r.Value
		p.rated[r.EntityID] = true
	}
	ratedBooks, err := g.Store.ListBooksByIDs(ctx, ratedIDs)
	if err != nil {
		return p, err
	}
	for _, book := range ratedBooks {
		var vote float64
		switch v := valueByID[book.ExternalID]; {
		case v >= 4:
			vote = 1
		case v <= 2:
			vote = -1
		default:
			continue
		}
		if lang := derefLower(book.Language); lang != "" {
			p.languages[lang] += vote
		}
		if book.AgeRestriction != "" && book.AgeRestriction != models.AgeRestrictionUnknown {
			p.ages[book.AgeRestriction] += vote
		}
		if bucket := VolumeBucket(book.PageCount); bucket != VolumeUnknown {
			p.volumes[bucket] += vote
		}
	}
	scaleVector(p.languages)
	scaleVector(p.ages)
	scaleVector(p.volumes)
	return p, nil
}

// scaleVector divides by the largest absolute entry so votes land in [-1, 1].
func scaleVector(v map[string]float64) {
	var max float64
	for _, val := range v {
		if a := abs(val); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	for k, val := range v {
		v[k] = val / max
	}
}

// keyedScore averages the user's weights across the book's keys. Keys with
// no recorded preference count as neutral.
func keyedScore(prefs map[string]float64, keys []string) float64 {
	if len(keys) == 0 {
		return 0
	}
	var total float64
	for _, k := range keys {
		total += prefs[k]
	}
	return clampUnit(total / float64(len(keys)))
}

func affinity(vector map[string]float64, key string) float64 {
	if key == "" || key == VolumeUnknown || key == models.AgeRestrictionUnknown {
		return 0
	}
	return clampUnit(vector[key])
}

func VolumeBucket(pageCount *int) string {
	if pageCount == nil || *pageCount <= 0 {
		return VolumeUnknown
	}
	switch {
	case *pageCount < 150:
		return VolumeShort
	case *pageCount < 400:
		return VolumeMedium
	default:
		return VolumeLong
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func derefLower(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(*s)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
