package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type CollectionService struct {
	Store repository.Repository
}

func (s *CollectionService) Create(ctx context.Context, ownerID, name string, description *string) (*models.BookCollection, error) {
	if s == nil || s.Store == nil {
		return nil, fmt.Errorf("collection service unavailable")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	item := &models.BookCollection{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.Store.CreateCollection(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddBook attaches a catalog book to the collection. The book must exist;
// adding the same book twice is a no-op at the storage layer.
func (s *CollectionService) AddBook(ctx context.Context, collectionID, bookExternalID string) error {
	if s == nil || s.Store == nil {
		return fmt.Errorf("collection service unavailable")
	}
	coll, err := s.Store.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if coll == nil {
		return fmt.Errorf("collection %s not found", collectionID)
	}
	book, err := s.Store.GetBookByExternalID(ctx, bookExternalID)
	if err != nil {
		return err
	}
	if book == nil {
		return fmt.Errorf("book %s not found", bookExternalID)
	}
	return s.Store.AddCollectionItem(ctx, &models.CollectionItem{
		CollectionID:   collectionID,
		BookExternalID: bookExternalID,
	})
}

type CollectionView struct {
	models.BookCollection
	Items []models.Book `json:"items"`
}

func (s *CollectionService) Get(ctx context.Context, collectionID string) (*CollectionView, error) {
	if s == nil || s.Store == nil {
		return nil, fmt.Errorf("collection service unavailable")
	}
	coll, err := s.Store.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return nil, nil
	}
	rows, err := s.Store.ListCollectionItems(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.BookExternalID)
	}
	books, err := s.Store.ListBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &CollectionView{BookCollection: *coll, Items: books}, nil
}
