package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookhive/internal/models"
)

func TestClaim_SingleFlight(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := &ScrapeStateService{Repo: repo}

	const attempts = 16
	var wg sync.WaitGroup
	won := make(chan string, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, ok, err := svc.Claim(context.Background(), "sci-fi", 0)
			if err != nil {
				t.Errorf("claim err=%v", err)
				return
			}
			if ok {
				won <- token
			}
		}()
	}
	wg.Wait()
	close(won)

	var winners []string
	for token := range won {
		winners = append(winners, token)
	}
	if len(winners) != 1 {
		t.Fatalf("winners=%d want exactly 1", len(winners))
	}

	state, err := repo.GetScrapeState(context.Background(), "sci-fi")
	if err != nil || state == nil {
		t.Fatalf("state=%v err=%v", state, err)
	}
	if state.ClaimToken == nil || *state.ClaimToken != winners[0] {
		t.Fatalf("claim token mismatch")
	}
}

func TestClaim_ReleasedByComplete(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := &ScrapeStateService{Repo: repo}

	token, ok, err := svc.Claim(context.Background(), "sci-fi", 0)
	if err != nil || !ok {
		t.Fatalf("first claim ok=%v err=%v", ok, err)
	}
	if _, ok, _ := svc.Claim(context.Background(), "sci-fi", 0); ok {
		t.Fatalf("claim should be held")
	}
	if err := svc.Complete(context.Background(), token, false, nil); err != nil {
		t.Fatalf("complete err=%v", err)
	}

	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.Status != models.ScrapeStatusIdle {
		t.Fatalf("status=%q want idle", state.Status)
	}
	if _, ok, _ := svc.Claim(context.Background(), "sci-fi", 0); !ok {
		t.Fatalf("claim should reopen after release")
	}
}

func TestClaim_ReclaimsStaleClaim(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := &ScrapeStateService{Repo: repo}

	orphaned := "orphaned"
	staleAt := time.Now().UTC().Add(-time.Hour)
	repo.states["sci-fi"] = &models.ScrapeState{
		Source:        "sci-fi",
		Status:        models.ScrapeStatusRunning,
		ClaimToken:    &orphaned,
		LastAttemptAt: &staleAt,
	}

	if _, ok, _ := svc.Claim(context.Background(), "sci-fi", 0); ok {
		t.Fatalf("zero timeout must never reclaim a running row")
	}
	token, ok, err := svc.Claim(context.Background(), "sci-fi", 10*time.Minute)
	if err != nil || !ok {
		t.Fatalf("stale claim not taken over: ok=%v err=%v", ok, err)
	}
	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.ClaimToken == nil || *state.ClaimToken != token {
		t.Fatalf("claim token not rotated to the new run")
	}
}

func TestClaim_FreshClaimNotReclaimed(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := &ScrapeStateService{Repo: repo}

	held := "held"
	recent := time.Now().UTC().Add(-time.Minute)
	repo.states["sci-fi"] = &models.ScrapeState{
		Source:        "sci-fi",
		Status:        models.ScrapeStatusRunning,
		ClaimToken:    &held,
		LastAttemptAt: &recent,
	}

	if _, ok, _ := svc.Claim(context.Background(), "sci-fi", 10*time.Minute); ok {
		t.Fatalf("live claim stolen before the timeout elapsed")
	}
}

func TestFail_RecordsErrorAndReleases(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := &ScrapeStateService{Repo: repo}

	token, _, err := svc.Claim(context.Background(), "sci-fi", 0)
	if err != nil {
		t.Fatalf("claim err=%v", err)
	}
	if err := svc.Fail(context.Background(), token, context.DeadlineExceeded); err != nil {
		t.Fatalf("fail err=%v", err)
	}
	state, _ := repo.GetScrapeState(context.Background(), "sci-fi")
	if state.Status != models.ScrapeStatusFailed {
		t.Fatalf("status=%q", state.Status)
	}
	if state.LastError == nil || *state.LastError == "" {
		t.Fatalf("last error missing")
	}
	if _, ok, _ := svc.Claim(context.Background(), "sci-fi", 0); !ok {
		t.Fatalf("failed state should be claimable again")
	}
}
