package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendora-io/storefront-backend/api/responses"
	"github.com/trendora-io/storefront-backend/api/validators"
	"github.com/trendora-io/storefront-backend/internal/catalog"
	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/logger"
	"github.com/trendora-io/storefront-backend/pkg/types"
)

// ProductsList serves the storefront browse endpoint. All filter knobs are
// optional query parameters.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := filterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]productResponse, 0, len(products))
		for i := range products {
			items = append(items, newProductResponse(&products[i]))
		}
		responses.WriteSuccess(w, productListResponse{Products: items})
	}
}

// ProductGet serves the product detail page.
func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !product.IsActive {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	var filter catalog.Filter

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" && raw != "all" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filter.Category = category
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		sortBy, err := enums.ParseProductSort(raw)
		if err != nil {
			return catalog.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
		}
		filter.SortBy = sortBy
	}

	min, err := validators.ParseQueryAmountCents(r, "price_min")
	if err != nil {
		return catalog.Filter{}, err
	}
	filter.PriceMinCents = min

	max, err := validators.ParseQueryAmountCents(r, "price_max")
	if err != nil {
		return catalog.Filter{}, err
	}
	filter.PriceMaxCents = max

	return filter, nil
}

type productListResponse struct {
	Products []productResponse `json:"products"`
}

type productResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	PriceCents  int64           `json:"price_cents"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
	Sizes       []string        `json:"sizes"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newProductResponse(product *models.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category.String(),
		Price:       types.AmountFromCents(product.PriceCents),
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Tags:        product.Tags,
		Sizes:       product.Sizes,
		CreatedAt:   product.CreatedAt,
	}
}
