package identity

import (
	"context"
	"errors"
	"testing"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type stubUserStore struct {
	repository.Repository

	users []models.User
}

func (s *stubUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func TestResolve_StrategyChain(t *testing.T) {
	store := &stubUserStore{users: []models.User{
		{ID: "7e2f9b9c-51a4-4a43-9c5f-2f8f3df5a111", Email: "ada@example.com", Username: "ada"},
		{ID: "0b7a3d1e-8893-4f3f-9a61-55b41c6f2222", Email: "grace@example.com", Username: "grace"},
	}}
	r := NewResolver(store)

	cases := []struct {
		ident string
		want  string
	}{
		{"7e2f9b9c-51a4-4a43-9c5f-2f8f3df5a111", "ada"},
		{"GRACE@example.com", "grace"},
		{"ada", "ada"},
		{"  grace  ", "grace"},
	}
	for _, tc := range cases {
		user, err := r.Resolve(context.Background(), tc.ident)
		if err != nil {
			t.Fatalf("Resolve(%q) err=%v", tc.ident, err)
		}
		if user.Username != tc.want {
			t.Fatalf("Resolve(%q)=%q want %q", tc.ident, user.Username, tc.want)
		}
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := NewResolver(&stubUserStore{})
	for _, ident := range []string{"", "nobody", "nobody@example.com", "3b2e0c3e-0000-4000-8000-000000000000"} {
		if _, err := r.Resolve(context.Background(), ident); !errors.Is(err, ErrUnknownUser) {
			t.Fatalf("Resolve(%q) err=%v want ErrUnknownUser", ident, err)
		}
	}
}
