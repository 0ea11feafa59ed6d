package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/trendora-io/storefront-backend/internal/cart"
	"github.com/trendora-io/storefront-backend/pkg/config"
	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/identity"
	"github.com/trendora-io/storefront-backend/pkg/logger"
	"github.com/trendora-io/storefront-backend/pkg/types"
)

const idempotencyScope = "checkout_submit"

type cartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type idempotencyStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	IdempotencyKey(scope, id string) string
}

// Service drives the checkout wizard and the final order submission.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Draft, error)
	SubmitPersonal(ctx context.Context, sessionID string, info PersonalInfo) (*Draft, FieldErrors, error)
	SubmitShipping(ctx context.Context, sessionID string, form ShippingForm) (*Draft, FieldErrors, error)
	SubmitPayment(ctx context.Context, sessionID string, form PaymentForm, notes string) (*Draft, FieldErrors, error)
	Back(ctx context.Context, sessionID string) (*Draft, error)
	Submit(ctx context.Context, sessionID string, user identity.User, idempotencyKey string) (*models.Order, error)
}

// ServiceParams bundles the submission boundary collaborators.
type ServiceParams struct {
	Drafts      DraftRepository
	Carts       cartStore
	Orders      orderWriter
	Idempotency idempotencyStore
	Config      config.CheckoutConfig
	Logger      *logger.Logger
}

type service struct {
	drafts      DraftRepository
	carts       cartStore
	orders      orderWriter
	idempotency idempotencyStore
	cfg         config.CheckoutConfig
	logg        *logger.Logger
	now         func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Drafts == nil {
		return nil, errors.New("draft repository is required")
	}
	if params.Carts == nil {
		return nil, errors.New("cart store is required")
	}
	if params.Orders == nil {
		return nil, errors.New("order writer is required")
	}
	if params.Idempotency == nil {
		return nil, errors.New("idempotency store is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		drafts:      params.Drafts,
		carts:       params.Carts,
		orders:      params.Orders,
		idempotency: params.Idempotency,
		cfg:         params.Config,
		logg:        params.Logger,
		now:         time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Draft, error) {
	return s.drafts.Load(ctx, sessionID)
}

func (s *service) SubmitPersonal(ctx context.Context, sessionID string, info PersonalInfo) (*Draft, FieldErrors, error) {
	return s.mutate(ctx, sessionID, func(d *Draft) (FieldErrors, error) {
		return d.SubmitPersonal(info)
	})
}

func (s *service) SubmitShipping(ctx context.Context, sessionID string, form ShippingForm) (*Draft, FieldErrors, error) {
	return s.mutate(ctx, sessionID, func(d *Draft) (FieldErrors, error) {
		return d.SubmitShipping(form)
	})
}

func (s *service) SubmitPayment(ctx context.Context, sessionID string, form PaymentForm, notes string) (*Draft, FieldErrors, error) {
	return s.mutate(ctx, sessionID, func(d *Draft) (FieldErrors, error) {
		d.Notes = notes
		return d.SubmitPayment(form)
	})
}

func (s *service) Back(ctx context.Context, sessionID string) (*Draft, error) {
	d, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d.Back()
	if err := s.drafts.Save(ctx, sessionID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit turns the draft plus the session cart into a persisted order. The
// write is guarded three ways: the cart must be non-empty, the whole draft
// must re-validate, and an Idempotency-Key replays the previously created
// order instead of writing a duplicate.
func (s *service) Submit(ctx context.Context, sessionID string, user identity.User, idempotencyKey string) (*models.Order, error) {
	draft, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != enums.CheckoutStepPayment {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not on the payment step").
			WithDetails(map[string]string{"current_step": draft.Step.String()})
	}
	if errs := draft.Validate(); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout draft is incomplete").WithDetails(errs)
	}

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot submit an order with an empty cart")
	}

	order := s.buildOrder(sessionID, user, draft, c)

	if idempotencyKey != "" {
		replayed, replay, err := s.reserveIdempotency(ctx, idempotencyKey, order.ID)
		if err != nil {
			return nil, err
		}
		if replay {
			return replayed, nil
		}
	}

	submitCtx := ctx
	if s.cfg.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		submitCtx, cancel = context.WithTimeout(ctx, s.cfg.SubmitTimeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(s.cfg.SubmitMaxAttempts, retry.NewConstant(s.cfg.SubmitRetryBackoff))
	var created *models.Order
	err = retry.Do(submitCtx, backoff, func(ctx context.Context) error {
		got, createErr := s.orders.Create(ctx, order)
		if createErr != nil {
			return retry.RetryableError(createErr)
		}
		created = got
		return nil
	})
	if err != nil {
		if idempotencyKey != "" {
			s.releaseIdempotency(ctx, idempotencyKey)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
	}

	s.cleanupSession(ctx, sessionID)
	return created, nil
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Draft) (FieldErrors, error)) (*Draft, FieldErrors, error) {
	d, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	errs, err := fn(d)
	if err != nil {
		return nil, nil, err
	}
	if err := s.drafts.Save(ctx, sessionID, d); err != nil {
		return nil, nil, err
	}
	return d, errs, nil
}

func (s *service) buildOrder(sessionID string, user identity.User, draft *Draft, c *cart.Cart) *models.Order {
	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Snapshot() {
		items = append(items, models.OrderItem{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.PriceCents,
			Quantity:       line.Quantity,
			ImageURL:       line.ImageURL,
		})
	}

	payment := types.PaymentInfo{
		Method: draft.Payment.Method.String(),
		Status: enums.PaymentStatusPending.String(),
	}
	if draft.Payment.Method == enums.PaymentMethodCard {
		payment.Status = enums.PaymentStatusPaid.String()
		payment.MaskedCardNumber = MaskCardNumber(draft.Payment.CardNumber)
		payment.MaskedCardCvv = MaskCardCvv(draft.Payment.CardCvv)
		payment.CardHolder = draft.Payment.CardName
	}

	var notes *string
	if draft.Notes != "" {
		value := draft.Notes
		notes = &value
	}

	return &models.Order{
		ID:            uuid.New(),
		UserID:        user.ID,
		SessionID:     sessionID,
		CustomerName:  draft.Personal.Name,
		CustomerEmail: draft.Personal.Email,
		CustomerPhone: draft.Personal.Phone,
		ShippingInfo: types.ShippingInfo{
			Address:    draft.Shipping.Address,
			City:       draft.Shipping.City,
			State:      draft.Shipping.State,
			PostalCode: draft.Shipping.PostalCode,
			Country:    draft.Shipping.Country,
		},
		PaymentInfo:      payment,
		Notes:            notes,
		TotalAmountCents: c.TotalAmountCents,
		Status:           enums.OrderStatusPending,
		Items:            items,
		CreatedAt:        s.now().UTC(),
	}
}

// reserveIdempotency claims the key for this submission. A prior claim means
// the order already exists (or is being created); the stored id is replayed.
func (s *service) reserveIdempotency(ctx context.Context, key string, orderID uuid.UUID) (*models.Order, bool, error) {
	storageKey := s.idempotency.IdempotencyKey(idempotencyScope, key)
	claimed, err := s.idempotency.SetNX(ctx, storageKey, orderID.String(), s.cfg.IdempotencyTTL)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserving idempotency key")
	}
	if claimed {
		return nil, false, nil
	}

	stored, err := s.idempotency.Get(ctx, storageKey)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading idempotency key")
	}
	existingID, err := uuid.Parse(stored)
	if err != nil {
		return nil, false, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key holds an unexpected value")
	}
	existing, err := s.orders.FindByID(ctx, existingID)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeIdempotency, err, "replaying idempotent submission")
	}
	return existing, true, nil
}

func (s *service) releaseIdempotency(ctx context.Context, key string) {
	storageKey := s.idempotency.IdempotencyKey(idempotencyScope, key)
	if err := s.idempotency.Del(ctx, storageKey); err != nil {
		s.logg.Warn(ctx, "failed to release idempotency key after submission error")
	}
}

// cleanupSession clears the cart and draft after a successful submission. The
// order is already durable at this point, so failures here only log; the next
// request would see a stale cart at worst.
func (s *service) cleanupSession(ctx context.Context, sessionID string) {
	ctx = s.logg.WithSessionID(ctx, sessionID)
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logg.Warn(ctx, "failed to clear cart after order submission")
	}
	if err := s.drafts.Delete(ctx, sessionID); err != nil {
		s.logg.Warn(ctx, "failed to clear checkout draft after order submission")
	}
}
