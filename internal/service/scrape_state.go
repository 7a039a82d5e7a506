package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

// ScrapeStateService is the durable cursor store for ingestion. Every state
// transition goes through the claim token handed out by Claim, so a stale
// run that lost its claim cannot clobber a newer one.
type ScrapeStateService struct {
	Repo   repository.CatalogRepository
	Logger *zap.Logger
}

// Claim attempts to take the source for a single run. ok=false means another
// run is in flight; that is expected contention, not an error. A positive
// claimTimeout lets a run claim over a running row whose last attempt is
// older than the timeout, so a crashed holder cannot park the source forever.
func (s *ScrapeStateService) Claim(ctx context.Context, source string, claimTimeout time.Duration) (string, bool, error) {
	if s == nil || s.Repo == nil {
		return "", false, nil
	}
	token := uuid.NewString()
	now := time.Now().UTC()
	var staleBefore time.Time
	if claimTimeout > 0 {
		staleBefore = now.Add(-claimTimeout)
	}
	ok, err := s.Repo.ClaimScrapeState(ctx, source, token, now, staleBefore)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// AdvanceTx persists the new cursor inside the same transaction as the page's
// upserts, so the cursor never points past uncommitted work.
func (s *ScrapeStateService) AdvanceTx(ctx context.Context, tx *gorm.DB, token string, cursor string, stats datatypes.JSON) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	return s.Repo.AdvanceScrapeStateTx(ctx, tx, token, &cursor, stats)
}

// Complete releases the claim after a successful run. When terminal is true
// the run exhausted the upstream and the status reflects that; otherwise the
// source goes back to idle for the next tick.
func (s *ScrapeStateService) Complete(ctx context.Context, token string, terminal bool, cursor *string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	status := models.ScrapeStatusIdle
	if terminal {
		status = models.ScrapeStatusCompleted
	}
	return s.Repo.CompleteScrapeState(ctx, token, status, cursor, time.Now().UTC())
}

// Fail releases the claim, bumps the attempt counter and records the error.
// The cursor is left at the last committed page boundary.
func (s *ScrapeStateService) Fail(ctx context.Context, token string, cause error) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	if err := s.Repo.FailScrapeState(ctx, token, msg, time.Now().UTC()); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("failed to record scrape failure", zap.Error(err))
		}
		return err
	}
	return nil
}

// Peek returns the current state of a source without touching the claim.
func (s *ScrapeStateService) Peek(ctx context.Context, source string) (*models.ScrapeState, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.GetScrapeState(ctx, source)
}
