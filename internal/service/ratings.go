package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type RatingService struct {
	Store  repository.Repository
	Prefs  *PreferenceService
	Logger *zap.Logger
}

// Rate sets or replaces the caller's rating of one entity. The aggregate on
// the entity moves incrementally so a re-rate never double counts.
func (s *RatingService) Rate(ctx context.Context, userID, kind, entityID string, value int) error {
	if s == nil || s.Store == nil {
		return fmt.Errorf("rating service unavailable")
	}
	if value < 1 || value > 5 {
		return fmt.Errorf("rating value %d out of range [1,5]", value)
	}
	if kind != models.RateableKindBook && kind != models.RateableKindCollection {
		return fmt.Errorf("unknown rateable kind %q", kind)
	}

	err := s.Store.InTx(ctx, func(tx *gorm.DB) error {
		entity, err := s.Store.LockRateableTx(ctx, tx, kind, entityID)
		if err != nil {
			return err
		}
		if entity == nil {
			return fmt.Errorf("%s %s not found", kind, entityID)
		}
		mean, count := entity.RatingStats()

		existing, err := s.Store.GetRatingTx(ctx, tx, userID, kind, entityID)
		if err != nil {
			return err
		}
		if existing == nil {
			mean, count = addToMean(mean, count, value)
			existing = &models.Rating{
				UserID:     userID,
				EntityKind: kind,
				EntityID:   entityID,
				Value:      value,
			}
		} else {
			mean = updateMean(mean, count, existing.Value, value)
			existing.Value = value
		}

		entity.SetRatingStats(mean, count)
		if err := s.Store.SaveRateableStatsTx(ctx, tx, kind, entityID, entity); err != nil {
			return err
		}
		return s.Store.SaveRatingTx(ctx, tx, existing)
	})
	if err != nil {
		return err
	}

	if kind == models.RateableKindBook && s.Prefs != nil {
		if err := s.Prefs.RecordRating(ctx, userID, entityID, value); err != nil && s.Logger != nil {
			s.Logger.Warn("preference update failed after rating",
				zap.String("user_id", userID),
				zap.String("book_id", entityID),
				zap.Error(err))
		}
	}
	return nil
}

// Unrate removes the caller's rating if present. Removing the last rating
// resets the aggregate to zero.
func (s *RatingService) Unrate(ctx context.Context, userID, kind, entityID string) error {
	if s == nil || s.Store == nil {
		return fmt.Errorf("rating service unavailable")
	}
	return s.Store.InTx(ctx, func(tx *gorm.DB) error {
		entity, err := s.Store.LockRateableTx(ctx, tx, kind, entityID)
		if err != nil {
			return err
		}
		if entity == nil {
			return nil
		}
		existing, err := s.Store.GetRatingTx(ctx, tx, userID, kind, entityID)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}

		mean, count := entity.RatingStats()
		mean, count = removeFromMean(mean, count, existing.Value)
		entity.SetRatingStats(mean, count)
		if err := s.Store.SaveRateableStatsTx(ctx, tx, kind, entityID, entity); err != nil {
			return err
		}
		return s.Store.DeleteRatingTx(ctx, tx, existing.ID)
	})
}

func addToMean(mean decimal.Decimal, count int64, value int) (decimal.Decimal, int64) {
	total := mean.Mul(decimal.NewFromInt(count)).Add(decimal.NewFromInt(int64(value)))
	count++
	return total.DivRound(decimal.NewFromInt(count), 8), count
}

func updateMean(mean decimal.Decimal, count int64, oldValue, newValue int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	delta := decimal.NewFromInt(int64(newValue - oldValue))
	return mean.Add(delta.DivRound(decimal.NewFromInt(count), 8))
}

func removeFromMean(mean decimal.Decimal, count int64, value int) (decimal.Decimal, int64) {
	if count <= 1 {
		return decimal.Zero, 0
	}
	total := mean.Mul(decimal.NewFromInt(count)).Sub(decimal.NewFromInt(int64(value)))
	count--
	return total.DivRound(decimal.NewFromInt(count), 8), count
}
