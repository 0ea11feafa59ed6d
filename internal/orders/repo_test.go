package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trendora-io/storefront-backend/pkg/db/models"
	"github.com/trendora-io/storefront-backend/pkg/enums"
	"github.com/trendora-io/storefront-backend/pkg/pagination"
	"github.com/trendora-io/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT 'guest',
  session_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  shipping_info TEXT NOT NULL,
  payment_info TEXT NOT NULL,
  notes TEXT,
  total_amount_cents INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID, sessionID string, created time.Time, status enums.OrderStatus) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		SessionID:     sessionID,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "03001234567",
		ShippingInfo: types.ShippingInfo{
			Address:    "12 Harbor Lane",
			City:       "Portsmouth",
			State:      "NH",
			PostalCode: "03801",
			Country:    "US",
		},
		PaymentInfo: types.PaymentInfo{
			Method: enums.PaymentMethodCashOnDelivery.String(),
			Status: enums.PaymentStatusPending.String(),
		},
		TotalAmountCents: 2500,
		Status:           status,
		Items: []models.OrderItem{
			{
				ID:             uuid.New(),
				ProductID:      uuid.New(),
				Name:           "Shirt",
				UnitPriceCents: 1000,
				Quantity:       2,
			},
			{
				ID:             uuid.New(),
				ProductID:      uuid.New(),
				Name:           "Belt",
				UnitPriceCents: 500,
				Quantity:       1,
			},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	created := createTestOrder(t, db, "user-1", uuid.NewString(), time.Now().UTC(), enums.OrderStatusPending)

	got, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, int64(2500), got.TotalAmountCents)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
}

func TestRepositoryListByUserPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := "user-" + uuid.NewString()
	now := time.Now().UTC()
	older := createTestOrder(t, db, userID, uuid.NewString(), now.Add(-time.Hour), enums.OrderStatusPending)
	newer := createTestOrder(t, db, userID, uuid.NewString(), now, enums.OrderStatusProcessing)

	first, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 2, "buffered page carries one extra row")
	assert.Equal(t, newer.ID, first[0].ID)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: first[0].CreatedAt, ID: first[0].ID})
	second, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.ID, second[0].ID)
}

func TestRepositoryListBySession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	sessionA := uuid.NewString()
	sessionB := uuid.NewString()
	now := time.Now().UTC()
	mine := createTestOrder(t, db, "guest", sessionA, now, enums.OrderStatusPending)
	createTestOrder(t, db, "guest", sessionB, now, enums.OrderStatusPending)

	got, err := repo.ListBySession(context.Background(), sessionA, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestRepositoryListStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	marker := "user-" + uuid.NewString()
	now := time.Now().UTC()
	createTestOrder(t, db, marker, uuid.NewString(), now, enums.OrderStatusPending)
	shipped := createTestOrder(t, db, marker, uuid.NewString(), now.Add(time.Minute), enums.OrderStatusShipped)

	status := enums.OrderStatusShipped
	got, err := repo.List(context.Background(), ListFilter{Status: &status}, pagination.Params{Limit: 50})
	require.NoError(t, err)

	var found bool
	for _, order := range got {
		require.Equal(t, enums.OrderStatusShipped, order.Status)
		if order.ID == shipped.ID {
			found = true
		}
	}
	assert.True(t, found, "expected the shipped order in the filtered listing")
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := createTestOrder(t, db, "user-1", uuid.NewString(), time.Now().UTC(), enums.OrderStatusPending)

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusProcessing))

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, got.Status)

	err = repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusProcessing)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryInvalidCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ListByUser(context.Background(), "user-1", pagination.Params{Cursor: "!!!"})
	require.Error(t, err)
}
