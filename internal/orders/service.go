package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/identity"
	"github.com/trendora-io/storefront-backend/pkg/pagination"
)

type orderRepo interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]models.Order, error)
	ListBySession(ctx context.Context, sessionID string, params pagination.Params) ([]models.Order, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Page is one keyset page of orders. NextCursor is empty on the last page.
type Page struct {
	Orders     []models.Order
	NextCursor string
}

// Service owns order reads, the storefront ownership rules, and the admin
// status workflow.
type Service interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetForViewer(ctx context.Context, user identity.User, sessionID string, id uuid.UUID) (*models.Order, error)
	ListForViewer(ctx context.Context, user identity.User, sessionID string, params pagination.Params) (*Page, error)
	ListAll(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo orderRepo
}

func NewService(repo orderRepo) (Service, error) {
	if repo == nil {
		return nil, errors.New("orders repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	return s.repo.Create(ctx, order)
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

// GetForViewer loads an order and enforces ownership. Admins see everything;
// signed-in customers see their own orders; guests see orders placed from
// their session only. Foreign orders read as not found so existence does not
// leak.
func (s *service) GetForViewer(ctx context.Context, user identity.User, sessionID string, id uuid.UUID) (*models.Order, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return order, nil
	}
	if user.IsGuest() {
		if order.SessionID != sessionID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return order, nil
	}
	if order.UserID != user.ID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListForViewer(ctx context.Context, user identity.User, sessionID string, params pagination.Params) (*Page, error) {
	var (
		rows []models.Order
		err  error
	)
	if user.IsGuest() {
		rows, err = s.repo.ListBySession(ctx, sessionID, params)
	} else {
		rows, err = s.repo.ListByUser(ctx, user.ID, params)
	}
	if err != nil {
		return nil, s.listError(err)
	}
	return buildPage(rows, params.Limit), nil
}

func (s *service) ListAll(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": filter.Status.String()})
	}
	rows, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, s.listError(err)
	}
	return buildPage(rows, params.Limit), nil
}

// UpdateStatus applies an admin status change after checking the transition
// graph against the order's current status.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(order.Status, status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = status
	return order, nil
}

func (s *service) listError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
}

func buildPage(rows []models.Order, limit int) *Page {
	normalized := pagination.NormalizeLimit(limit)
	page := &Page{Orders: rows}
	if len(rows) > normalized {
		page.Orders = rows[:normalized]
		last := page.Orders[normalized-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	if page.Orders == nil {
		page.Orders = []models.Order{}
	}
	return page
}
