package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
	"github.com/trendora-io/storefront-backend/pkg/identity"
	"github.com/trendora-io/storefront-backend/pkg/pagination"
)

func TestValidateTransition(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to enums.OrderStatus
	}{
		{enums.OrderStatusPending, enums.OrderStatusProcessing},
		{enums.OrderStatusPending, enums.OrderStatusCancelled},
		{enums.OrderStatusProcessing, enums.OrderStatusShipped},
		{enums.OrderStatusProcessing, enums.OrderStatusCancelled},
		{enums.OrderStatusShipped, enums.OrderStatusDelivered},
		{enums.OrderStatusDelivered, enums.OrderStatusCompleted},
	}
	for _, tc := range allowed {
		if err := ValidateTransition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %s -> %s to be allowed: %v", tc.from, tc.to, err)
		}
	}

	rejected := []struct {
		from, to enums.OrderStatus
	}{
		{enums.OrderStatusPending, enums.OrderStatusShipped},
		{enums.OrderStatusShipped, enums.OrderStatusCancelled},
		{enums.OrderStatusCancelled, enums.OrderStatusPending},
		{enums.OrderStatusCompleted, enums.OrderStatusDelivered},
		{enums.OrderStatusPending, enums.OrderStatusPending},
	}
	for _, tc := range rejected {
		err := ValidateTransition(tc.from, tc.to)
		if err == nil {
			t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("unexpected error code: %v", err)
		}
	}

	if err := ValidateTransition(enums.OrderStatusPending, enums.OrderStatus("bogus")); err == nil {
		t.Fatal("expected validation error for unknown status")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceUpdateStatusEnforcesGraph(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusShipped}
	repo := &stubOrderRepo{order: order}
	svc := newTestService(t, repo)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	if err == nil {
		t.Fatal("expected rejection of shipped -> cancelled")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("no write should happen for an illegal transition")
	}

	got, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %q", got.Status)
	}
}

func TestServiceGetForViewerOwnership(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), UserID: "user-7", SessionID: "sess-7", Status: enums.OrderStatusPending}
	svc := newTestService(t, &stubOrderRepo{order: order})

	owner := identity.User{ID: "user-7", Role: identity.RoleCustomer}
	if _, err := svc.GetForViewer(context.Background(), owner, "other-sess", order.ID); err != nil {
		t.Fatalf("owner should read own order: %v", err)
	}

	stranger := identity.User{ID: "user-9", Role: identity.RoleCustomer}
	_, err := svc.GetForViewer(context.Background(), stranger, "other-sess", order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("foreign order must read as not found, got %v", err)
	}

	admin := identity.User{ID: "admin-1", Role: identity.RoleAdmin}
	if _, err := svc.GetForViewer(context.Background(), admin, "", order.ID); err != nil {
		t.Fatalf("admin should read any order: %v", err)
	}
}

func TestServiceGetForViewerGuestScopedBySession(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), UserID: identity.GuestUserID, SessionID: "sess-1", Status: enums.OrderStatusPending}
	svc := newTestService(t, &stubOrderRepo{order: order})

	if _, err := svc.GetForViewer(context.Background(), identity.Guest(), "sess-1", order.ID); err != nil {
		t.Fatalf("guest should read own session's order: %v", err)
	}

	_, err := svc.GetForViewer(context.Background(), identity.Guest(), "sess-2", order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("other sessions must not see guest orders, got %v", err)
	}
}

func TestServiceListForViewerBuildsPage(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	rows := []models.Order{
		{ID: uuid.New(), UserID: "user-1", CreatedAt: now},
		{ID: uuid.New(), UserID: "user-1", CreatedAt: now.Add(-time.Minute)},
		{ID: uuid.New(), UserID: "user-1", CreatedAt: now.Add(-2 * time.Minute)},
	}
	repo := &stubOrderRepo{listRows: rows}
	svc := newTestService(t, repo)

	user := identity.User{ID: "user-1", Role: identity.RoleCustomer}
	page, err := svc.ListForViewer(context.Background(), user, "sess-1", pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Orders) != 2 {
		t.Fatalf("expected trimmed page of 2, got %d", len(page.Orders))
	}
	if page.NextCursor == "" {
		t.Fatal("expected next cursor when more rows exist")
	}
	if repo.lastListByUser != "user-1" {
		t.Fatalf("expected user listing, got %q", repo.lastListByUser)
	}
}

func TestServiceListForViewerGuestUsesSession(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	svc := newTestService(t, repo)

	if _, err := svc.ListForViewer(context.Background(), identity.Guest(), "sess-5", pagination.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastListBySession != "sess-5" {
		t.Fatalf("expected session listing, got %q", repo.lastListBySession)
	}
}

func TestServiceFindByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrderRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.FindByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func newTestService(t *testing.T, repo orderRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

type stubOrderRepo struct {
	order             *models.Order
	listRows          []models.Order
	findErr           error
	updateCalls       int
	lastListByUser    string
	lastListBySession string
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s.order
	return &clone, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]models.Order, error) {
	s.lastListByUser = userID
	return s.listRows, nil
}

func (s *stubOrderRepo) ListBySession(ctx context.Context, sessionID string, params pagination.Params) ([]models.Order, error) {
	s.lastListBySession = sessionID
	return s.listRows, nil
}

func (s *stubOrderRepo) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error) {
	return s.listRows, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.updateCalls++
	if s.order != nil && s.order.ID == id {
		s.order.Status = status
	}
	return nil
}
