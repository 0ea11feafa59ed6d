package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trendora-io/storefront-backend/api/middleware"
	"github.com/trendora-io/storefront-backend/api/responses"
	"github.com/trendora-io/storefront-backend/api/validators"
	"github.com/trendora-io/storefront-backend/internal/checkout"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/logger"
)

const idempotencyHeader = "Idempotency-Key"

// CheckoutGet returns the session's draft so the wizard can resume where the
// shopper left off.
func CheckoutGet(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		draft, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDraftResponse(draft, nil))
	}
}

// CheckoutSubmitStep accepts one wizard step's form. Validation failures come
// back 200 with field errors so the client can re-render the form in place;
// only malformed requests and step skipping are HTTP errors.
func CheckoutSubmitStep(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, err := enums.ParseCheckoutStep(chi.URLParam(r, "step"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout step"))
			return
		}

		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var (
			draft     *checkout.Draft
			fieldErrs checkout.FieldErrors
		)
		switch step {
		case enums.CheckoutStepPersonalInfo:
			var payload personalStepRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			draft, fieldErrs, err = svc.SubmitPersonal(ctx, sessionID, checkout.PersonalInfo{
				Name:  payload.Name,
				Email: payload.Email,
				Phone: payload.Phone,
			})
		case enums.CheckoutStepShippingInfo:
			var payload shippingStepRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			draft, fieldErrs, err = svc.SubmitShipping(ctx, sessionID, checkout.ShippingForm{
				Address:    payload.Address,
				City:       payload.City,
				State:      payload.State,
				PostalCode: payload.PostalCode,
				Country:    payload.Country,
			})
		case enums.CheckoutStepPayment:
			var payload paymentStepRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			method, parseErr := enums.ParsePaymentMethod(payload.Method)
			if parseErr != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid payment method"))
				return
			}
			draft, fieldErrs, err = svc.SubmitPayment(ctx, sessionID, checkout.PaymentForm{
				Method:     method,
				CardNumber: payload.CardNumber,
				CardExpiry: payload.CardExpiry,
				CardCvv:    payload.CardCvv,
				CardName:   payload.CardName,
			}, payload.Notes)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newDraftResponse(draft, fieldErrs))
	}
}

// CheckoutBack steps the wizard backwards without validating or discarding
// anything.
func CheckoutBack(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		draft, err := svc.Back(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDraftResponse(draft, nil))
	}
}

// CheckoutSubmit places the order. Clients should send an Idempotency-Key so a
// retried request replays the original order instead of double charging.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		user := middleware.UserFromContext(ctx)
		idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))

		order, err := svc.Submit(ctx, sessionID, user, idempotencyKey)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

type personalStepRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type shippingStepRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type paymentStepRequest struct {
	Method     string `json:"method" validate:"required"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCvv    string `json:"card_cvv"`
	CardName   string `json:"card_name"`
	Notes      string `json:"notes"`
}

type draftResponse struct {
	Step        string                `json:"step"`
	Personal    checkout.PersonalInfo `json:"personal"`
	Shipping    checkout.ShippingForm `json:"shipping"`
	Payment     paymentDraftResponse  `json:"payment"`
	Notes       string                `json:"notes,omitempty"`
	FieldErrors checkout.FieldErrors  `json:"field_errors,omitempty"`
}

// paymentDraftResponse echoes the payment step with the card number and CVV
// masked. The raw values stay inside the draft store.
type paymentDraftResponse struct {
	Method     string `json:"method,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCvv    string `json:"card_cvv,omitempty"`
	CardName   string `json:"card_name,omitempty"`
}

func newDraftResponse(draft *checkout.Draft, fieldErrs checkout.FieldErrors) draftResponse {
	payment := paymentDraftResponse{
		Method:   draft.Payment.Method.String(),
		CardName: draft.Payment.CardName,
	}
	if draft.Payment.CardNumber != "" {
		payment.CardNumber = checkout.MaskCardNumber(draft.Payment.CardNumber)
	}
	if draft.Payment.CardCvv != "" {
		payment.CardCvv = checkout.MaskCardCvv(draft.Payment.CardCvv)
	}
	payment.CardExpiry = draft.Payment.CardExpiry

	return draftResponse{
		Step:        draft.Step.String(),
		Personal:    draft.Personal,
		Shipping:    draft.Shipping,
		Payment:     payment,
		Notes:       draft.Notes,
		FieldErrors: fieldErrs,
	}
}
