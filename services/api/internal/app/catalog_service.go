package app

import (
	"context"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// CatalogFilter narrows an item listing. Empty fields match everything.
type CatalogFilter struct {
	Query    string
	Category string
	Size     string
	Color    string
	Style    string
}

type CatalogRepository interface {
	GetItem(ctx context.Context, itemID int64) (domain.Item, error)
	ListItems(ctx context.Context, filter CatalogFilter) ([]domain.Item, error)
}

// CatalogService is the read-only item surface. Item management lives
// outside this service; nothing here writes.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *CatalogService) ListItems(ctx context.Context, filter CatalogFilter) ([]domain.Item, error) {
	return s.repo.ListItems(ctx, filter)
}
