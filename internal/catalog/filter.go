package catalog

import (
	"sort"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// Filter describes the browse knobs. A zero Category means all categories;
// nil price bounds mean unbounded on that side.
type Filter struct {
	Category      enums.ProductCategory `json:"category,omitempty"`
	PriceMinCents *int64                `json:"price_min_cents,omitempty"`
	PriceMaxCents *int64                `json:"price_max_cents,omitempty"`
	SortBy        enums.ProductSort     `json:"sort_by,omitempty"`
}

// Normalize validates the filter and fills defaults. An empty sort falls back
// to latest-first.
func (f Filter) Normalize() (Filter, error) {
	if f.Category != "" && !f.Category.IsValid() {
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": f.Category.String()})
	}
	if f.SortBy == "" {
		f.SortBy = enums.ProductSortLatest
	}
	if !f.SortBy.IsValid() {
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort option").
			WithDetails(map[string]string{"sort": f.SortBy.String()})
	}
	if f.PriceMinCents != nil && *f.PriceMinCents < 0 {
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "price_min cannot be negative")
	}
	if f.PriceMaxCents != nil && *f.PriceMaxCents < 0 {
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "price_max cannot be negative")
	}
	if f.PriceMinCents != nil && f.PriceMaxCents != nil && *f.PriceMinCents > *f.PriceMaxCents {
		return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "price_min cannot exceed price_max")
	}
	return f, nil
}

func (f Filter) matches(p models.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.PriceMinCents != nil && p.PriceCents < *f.PriceMinCents {
		return false
	}
	if f.PriceMaxCents != nil && p.PriceCents > *f.PriceMaxCents {
		return false
	}
	return true
}

// Apply filters in a single pass and then sorts. The input slice is never
// mutated. Ties on the price sorts keep newest first so the ordering stays
// stable across reloads.
func Apply(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	newerFirst := func(a, b models.Product) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	}

	switch f.SortBy {
	case enums.ProductSortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].PriceCents != out[j].PriceCents {
				return out[i].PriceCents < out[j].PriceCents
			}
			return newerFirst(out[i], out[j])
		})
	case enums.ProductSortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].PriceCents != out[j].PriceCents {
				return out[i].PriceCents > out[j].PriceCents
			}
			return newerFirst(out[i], out[j])
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return newerFirst(out[i], out[j])
		})
	}
	return out
}
