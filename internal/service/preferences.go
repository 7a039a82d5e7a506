package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookhive/internal/config"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

// PreferenceAction is a user signal that moves genre and author weights.
const (
	ActionAddedToFavourites       = "added_to_favourites"
	ActionRemovedFromFavourites   = "removed_from_favourites"
	ActionStartedToRead           = "started_to_read"
	ActionReadBook                = "read_book"
	ActionAcceptedRecommendation  = "accepted_recommendation"
	ActionDismissedRecommendation = "dismissed_recommendation"
)

var actionDeltas = map[string]decimal.Decimal{
	ActionAddedToFavourites:       decimal.NewFromFloat(1.0),
	ActionRemovedFromFavourites:   decimal.NewFromFloat(-1.0),
	ActionStartedToRead:           decimal.NewFromFloat(0.25),
	ActionReadBook:                decimal.NewFromFloat(0.75),
	ActionAcceptedRecommendation:  decimal.NewFromFloat(0.5),
	ActionDismissedRecommendation: decimal.NewFromFloat(-0.5),
}

type PreferenceService struct {
	Store  repository.Repository
	Logger *zap.Logger
	Config config.PreferencesConfig
}

// RecordAction applies one behavioural signal to every genre and author of
// the book.
func (s *PreferenceService) RecordAction(ctx context.Context, userID, bookExternalID, action string) error {
	delta, ok := actionDeltas[action]
	if !ok {
		return fmt.Errorf("unknown preference action %q", action)
	}
	return s.applyDelta(ctx, userID, bookExternalID, delta)
}

// RecordRating translates a 1..5 star rating into a signed delta centered on
// the neutral midpoint 3.
func (s *PreferenceService) RecordRating(ctx context.Context, userID, bookExternalID string, value int) error {
	delta := decimal.NewFromInt(int64(value - 3)).Mul(decimal.NewFromFloat(0.5))
	return s.applyDelta(ctx, userID, bookExternalID, delta)
}

func (s *PreferenceService) applyDelta(ctx context.Context, userID, bookExternalID string, delta decimal.Decimal) error {
	if s == nil || s.Store == nil {
		return fmt.Errorf("preference service unavailable")
	}

	genres, err := s.Store.ListBookGenresByBookIDs(ctx, []string{bookExternalID})
	if err != nil {
		return err
	}
	authors, err := s.Store.ListBookAuthorsByBookIDs(ctx, []string{bookExternalID})
	if err != nil {
		return err
	}
	genreKeys := genres[bookExternalID]
	authorKeys := authors[bookExternalID]
	if len(genreKeys) == 0 && len(authorKeys) == 0 {
		return nil
	}

	err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		for _, key := range genreKeys {
			pref, err := s.Store.GetGenrePreferenceForUpdateTx(ctx, tx, userID, key)
			if err != nil {
				return err
			}
			if pref == nil {
				pref = &models.UserGenrePreference{UserID: userID, GenreKey: key}
			}
			pref.Weight = s.clamp(pref.Weight.Add(delta))
			pref.PreferenceType = s.classify(pref.Weight)
			if err := s.Store.SaveGenrePreferenceTx(ctx, tx, pref); err != nil {
				return err
			}
		}
		for _, key := range authorKeys {
			pref, err := s.Store.GetAuthorPreferenceForUpdateTx(ctx, tx, userID, key)
			if err != nil {
				return err
			}
			if pref == nil {
				pref = &models.UserAuthorPreference{UserID: userID, AuthorKey: key}
			}
			pref.Weight = s.clamp(pref.Weight.Add(delta))
			pref.PreferenceType = s.classify(pref.Weight)
			if err := s.Store.SaveAuthorPreferenceTx(ctx, tx, pref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.Logger != nil {
		s.Logger.Debug("preference delta applied",
			zap.String("user_id", userID),
			zap.String("book_id", bookExternalID),
			zap.String("delta", delta.String()),
			zap.Int("genres", len(genreKeys)),
			zap.Int("authors", len(authorKeys)))
	}
	return nil
}

func (s *PreferenceService) clamp(w decimal.Decimal) decimal.Decimal {
	min := decimal.NewFromFloat(s.Config.MinWeight)
	max := decimal.NewFromFloat(s.Config.MaxWeight)
	if max.IsZero() && min.IsZero() {
		min = decimal.NewFromInt(-10)
		max = decimal.NewFromInt(10)
	}
	if w.LessThan(min) {
		return min
	}
	if w.GreaterThan(max) {
		return max
	}
	return w
}

func (s *PreferenceService) classify(w decimal.Decimal) string {
	liked := decimal.NewFromFloat(s.Config.LikedThreshold)
	disliked := decimal.NewFromFloat(s.Config.DislikeThreshold)
	if liked.IsZero() {
		liked = decimal.NewFromInt(1)
	}
	if disliked.IsZero() {
		disliked = decimal.NewFromInt(-1)
	}
	switch {
	case w.GreaterThanOrEqual(liked):
		return models.PreferenceTypeLiked
	case w.LessThanOrEqual(disliked):
		return models.PreferenceTypeDisliked
	default:
		return models.PreferenceTypeNeutral
	}
}
