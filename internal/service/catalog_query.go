package service

import (
	"context"
	"fmt"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type CatalogQueryService struct {
	Repo repository.CatalogRepository
}

type BookPage struct {
	Items []BookView
	Total int64
}

// BookView is a catalog book with its genre and author keys attached. The
// join rows are fetched in one pass per page instead of per book.
type BookView struct {
	models.Book
	GenreKeys  []string `json:"genre_keys"`
	AuthorKeys []string `json:"author_keys"`
}

func (s *CatalogQueryService) ListBooks(ctx context.Context, params repository.ListBooksParams) (BookPage, error) {
	if s == nil || s.Repo == nil {
		return BookPage{}, fmt.Errorf("catalog query unavailable")
	}
	items, err := s.Repo.ListBooks(ctx, params)
	if err != nil {
		return BookPage{}, err
	}
	total, err := s.Repo.CountBooks(ctx, params)
	if err != nil {
		return BookPage{}, err
	}
	views, err := s.attachKeys(ctx, items)
	if err != nil {
		return BookPage{}, err
	}
	return BookPage{Items: views, Total: total}, nil
}

func (s *CatalogQueryService) GetBook(ctx context.Context, externalID string) (*BookView, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("catalog query unavailable")
	}
	book, err := s.Repo.GetBookByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	views, err := s.attachKeys(ctx, []models.Book{*book})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CatalogQueryService) ListAuthors(ctx context.Context, params repository.ListNamedParams) ([]models.Author, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("catalog query unavailable")
	}
	return s.Repo.ListAuthors(ctx, params)
}

func (s *CatalogQueryService) ListGenres(ctx context.Context, params repository.ListNamedParams) ([]models.Genre, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("catalog query unavailable")
	}
	return s.Repo.ListGenres(ctx, params)
}

func (s *CatalogQueryService) attachKeys(ctx context.Context, items []models.Book) ([]BookView, error) {
	ids := make([]string, 0, len(items))
	for _, b := range items {
		ids = append(ids, b.ExternalID)
	}
	genres, err := s.Repo.ListBookGenresByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors, err := s.Repo.ListBookAuthorsByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]BookView, 0, len(items))
	for _, b := range items {
		views = append(views, BookView{
			Book:       b,
			GenreKeys:  genres[b.ExternalID],
			AuthorKeys: authors[b.ExternalID],
		})
	}
	return views, nil
}
