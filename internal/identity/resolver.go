// Package identity resolves a caller-supplied identifier to a known user by
// trying a fixed chain of lookup strategies in order.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

var ErrUnknownUser = errors.New("unknown user")

// Lookup tries one interpretation of the identifier. A nil user with a nil
// error means this strategy does not apply or found nothing.
type Lookup func(ctx context.Context, store repository.Repository, ident string) (*models.User, error)

func byID(ctx context.Context, store repository.Repository, ident string) (*models.User, error) {
	if _, err := uuid.Parse(ident); err != nil {
		return nil, nil
	}
	return store.GetUserByID(ctx, ident)
}

func byEmail(ctx context.Context, store repository.Repository, ident string) (*models.User, error) {
	if !strings.Contains(ident, "@") {
		return nil, nil
	}
	return store.GetUserByEmail(ctx, strings.ToLower(ident))
}

func byUsername(ctx context.Context, store repository.Repository, ident string) (*models.User, error) {
	return store.GetUserByUsername(ctx, ident)
}

type Resolver struct {
	Store   repository.Repository
	lookups []Lookup
}

func NewResolver(store repository.Repository) *Resolver {
	return &Resolver{
		Store:   store,
		lookups: []Lookup{byID, byEmail, byUsername},
	}
}

// Resolve returns the first match across the strategy chain, or
// ErrUnknownUser when no strategy finds one.
func (r *Resolver) Resolve(ctx context.Context, ident string) (*models.User, error) {
	if r == nil || r.Store == nil {
		return nil, ErrUnknownUser
	}
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil, ErrUnknownUser
	}
	for _, lookup := range r.lookups {
		user, err := lookup(ctx, r.Store, ident)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, ErrUnknownUser
}
