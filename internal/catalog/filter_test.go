package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

func fixtureProducts() []models.Product {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return []models.Product{
		{ID: uuid.New(), Name: "Denim Jacket", Category: enums.ProductCategoryMen, PriceCents: 8900, CreatedAt: base.Add(3 * time.Hour)},
		{ID: uuid.New(), Name: "Summer Dress", Category: enums.ProductCategoryWomen, PriceCents: 5900, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Name: "Kids Hoodie", Category: enums.ProductCategoryKids, PriceCents: 3400, CreatedAt: base.Add(1 * time.Hour)},
		{ID: uuid.New(), Name: "Leather Belt", Category: enums.ProductCategoryAccessories, PriceCents: 2500, CreatedAt: base},
	}
}

func TestApplyCategoryFilter(t *testing.T) {
	t.Parallel()

	got := Apply(fixtureProducts(), Filter{Category: enums.ProductCategoryWomen, SortBy: enums.ProductSortLatest})
	if len(got) != 1 || got[0].Name != "Summer Dress" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestApplyPriceRangeIsInclusive(t *testing.T) {
	t.Parallel()

	min, max := int64(2500), int64(5900)
	got := Apply(fixtureProducts(), Filter{PriceMinCents: &min, PriceMaxCents: &max, SortBy: enums.ProductSortLatest})

	if len(got) != 3 {
		t.Fatalf("expected 3 products within bounds, got %d", len(got))
	}
	for _, p := range got {
		if p.PriceCents < min || p.PriceCents > max {
			t.Fatalf("product %q outside bounds: %d", p.Name, p.PriceCents)
		}
	}
}

func TestApplyCombinedFilters(t *testing.T) {
	t.Parallel()

	min := int64(5000)
	got := Apply(fixtureProducts(), Filter{Category: enums.ProductCategoryMen, PriceMinCents: &min, SortBy: enums.ProductSortLatest})
	if len(got) != 1 || got[0].Name != "Denim Jacket" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestApplySortOrders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		sort  enums.ProductSort
		first string
		last  string
	}{
		{"latest first", enums.ProductSortLatest, "Denim Jacket", "Leather Belt"},
		{"price ascending", enums.ProductSortPriceLow, "Leather Belt", "Denim Jacket"},
		{"price descending", enums.ProductSortPriceHigh, "Denim Jacket", "Leather Belt"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Apply(fixtureProducts(), Filter{SortBy: tc.sort})
			if len(got) != 4 {
				t.Fatalf("expected all products, got %d", len(got))
			}
			if got[0].Name != tc.first || got[3].Name != tc.last {
				t.Fatalf("unexpected order: first=%q last=%q", got[0].Name, got[3].Name)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()
	firstBefore := products[0].Name

	Apply(products, Filter{SortBy: enums.ProductSortPriceLow})

	if products[0].Name != firstBefore {
		t.Fatal("input slice was reordered")
	}
}

func TestNormalizeDefaultsAndRejections(t *testing.T) {
	t.Parallel()

	got, err := Filter{}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SortBy != enums.ProductSortLatest {
		t.Fatalf("expected latest default, got %q", got.SortBy)
	}

	min, max := int64(5000), int64(1000)
	bad := []Filter{
		{Category: enums.ProductCategory("toys")},
		{SortBy: enums.ProductSort("cheapest")},
		{PriceMinCents: &min, PriceMaxCents: &max},
	}
	for _, f := range bad {
		if _, err := f.Normalize(); err == nil {
			t.Fatalf("expected validation error for %+v", f)
		} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error code: %v", err)
		}
	}
}
