package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// Service exposes storefront catalog reads.
type Service interface {
	ListProducts(ctx context.Context, filter Filter) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

// ListProducts fetches the active catalog and applies the filter in memory.
func (s *service) ListProducts(ctx context.Context, filter Filter) ([]models.Product, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return Apply(products, normalized), nil
}

// FindByID resolves a product for detail pages and cart additions.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}
