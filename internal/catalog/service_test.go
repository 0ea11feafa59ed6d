package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

func TestServiceListProductsAppliesFilter(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{products: fixtureProducts()}
	svc := newTestService(t, repo)

	got, err := svc.ListProducts(context.Background(), Filter{Category: enums.ProductCategoryKids})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Kids Hoodie" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestServiceListProductsInvalidFilter(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{})

	_, err := svc.ListProducts(context.Background(), Filter{SortBy: enums.ProductSort("bogus")})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceFindByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.FindByID(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for missing product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceFindByIDSuccess(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New(), Name: "Canvas Tote", PriceCents: 1900, IsActive: true}
	svc := newTestService(t, &stubRepo{product: product})

	got, err := svc.FindByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != product {
		t.Fatal("expected product to match")
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

type stubRepo struct {
	products []models.Product
	product  *models.Product
	findErr  error
	listErr  error
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}
