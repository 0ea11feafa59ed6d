package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendora-io/storefront-backend/api/middleware"
	"github.com/trendora-io/storefront-backend/api/responses"
	"github.com/trendora-io/storefront-backend/api/validators"
	"github.com/trendora-io/storefront-backend/internal/orders"
	"github.com/trendora-io/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/logger"
	"github.com/trendora-io/storefront-backend/pkg/pagination"
	"github.com/trendora-io/storefront-backend/pkg/types"
)

// OrdersList returns the caller's order history, newest first. Guests get the
// orders placed from their session; signed-in customers get their account's.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user := middleware.UserFromContext(ctx)
		sessionID := middleware.SessionIDFromContext(ctx)
		page, err := svc.ListForViewer(ctx, user, sessionID, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderListResponse(page))
	}
}

// OrderGet returns a single order the caller is allowed to see.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		ctx := r.Context()
		user := middleware.UserFromContext(ctx)
		sessionID := middleware.SessionIDFromContext(ctx)
		order, err := svc.GetForViewer(ctx, user, sessionID, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

func paginationFromQuery(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

type orderListResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type orderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Status           string              `json:"status"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	CustomerPhone    string              `json:"customer_phone"`
	ShippingInfo     types.ShippingInfo  `json:"shipping_info"`
	PaymentInfo      types.PaymentInfo   `json:"payment_info"`
	Notes            *string             `json:"notes,omitempty"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	Items            []orderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type orderItemResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	Quantity       int             `json:"quantity"`
	ImageURL       string          `json:"image_url,omitempty"`
}

func newOrderListResponse(page *orders.Page) orderListResponse {
	items := make([]orderResponse, 0, len(page.Orders))
	for i := range page.Orders {
		items = append(items, newOrderResponse(&page.Orders[i]))
	}
	return orderListResponse{Orders: items, NextCursor: page.NextCursor}
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPrice:      types.AmountFromCents(item.UnitPriceCents),
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			ImageURL:       item.ImageURL,
		})
	}
	return orderResponse{
		ID:               order.ID,
		Status:           order.Status.String(),
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		ShippingInfo:     order.ShippingInfo,
		PaymentInfo:      order.PaymentInfo,
		Notes:            order.Notes,
		TotalAmount:      types.AmountFromCents(order.TotalAmountCents),
		TotalAmountCents: order.TotalAmountCents,
		Items:            items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
