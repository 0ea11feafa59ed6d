package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// productLoader is the slice of the catalog the cart needs: resolving a
// product id into its current name and price. Prices and names are always
// taken from the catalog, never from the request body.
type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes session-scoped cart operations. Every mutation follows the
// same shape: load the session's cart, mutate it in memory, save it back.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
}

type service struct {
	repo     Repository
	products productLoader
}

func NewService(repo Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, errors.New("cart repository is required")
	}
	if products == nil {
		return nil, errors.New("product loader is required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.repo.Load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is no longer available")
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.AddItem(Item{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   quantity,
			ImageURL:   product.ImageURL,
		})
	})
}

func (s *service) UpdateItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.UpdateItem(productID, quantity)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("persisting cart: %w", err)
	}
	return c, nil
}
