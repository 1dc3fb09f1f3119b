package service

import (
	"context"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

// CatalogService exposes the catalog lookups the purchase-list screens
// need: product search for the add box, supplier and store pickers.
type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

func (s *CatalogService) SearchProducts(ctx context.Context, search string, limit, offset int) ([]*domain.Product, error) {
	return s.catalog.SearchProducts(ctx, search, limit, offset)
}

func (s *CatalogService) GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error) {
	return s.catalog.GetSuppliers(ctx, search, limit, offset)
}

func (s *CatalogService) GetStores(ctx context.Context) ([]*domain.Store, error) {
	return s.catalog.GetStores(ctx)
}
