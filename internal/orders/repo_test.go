package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	"github.com/verdantcarry/veganbags-backend/pkg/pagination"
)

func ordersTestDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(ordersTestDSN()), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  shipping_fee NUMERIC NOT NULL,
  total_amount NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  shipping_full_name TEXT NOT NULL,
  shipping_address TEXT NOT NULL,
  shipping_city TEXT NOT NULL,
  shipping_postal_code TEXT NOT NULL,
  shipping_country TEXT NOT NULL,
  shipping_phone TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_at_purchase NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                 uuid.New(),
		UserID:             userID,
		Status:             enums.OrderStatusPending,
		Subtotal:           decimal.NewFromInt(80),
		ShippingFee:        decimal.NewFromInt(10),
		TotalAmount:        decimal.NewFromInt(90),
		PaymentMethod:      enums.PaymentMethodCOD,
		ShippingFullName:   "Ada Shopper",
		ShippingAddress:    "1 Vine St",
		ShippingCity:       "Portland",
		ShippingPostalCode: "97201",
		ShippingCountry:    "US",
		ShippingPhone:      "+1 555 0100",
		Items: []models.OrderItem{
			{
				ProductID:       uuid.New(),
				ProductName:     "City Tote",
				Quantity:        2,
				PriceAtPurchase: decimal.NewFromInt(40),
			},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	repo := NewRepository(db)
	require.NoError(t, repo.Insert(context.Background(), order))
	return order
}

func TestRepositoryInsertAssignsItemIDs(t *testing.T) {
	db := setupOrdersTestDB(t)
	order := createTestOrder(t, db, uuid.New(), time.Now().UTC())

	require.NotEqual(t, uuid.Nil, order.Items[0].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	loaded, err := NewRepository(db).FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "City Tote", loaded.Items[0].ProductName)
}

func TestRepositoryListForUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	now := time.Now().UTC()
	older := createTestOrder(t, db, userID, now.Add(-time.Hour))
	newer := createTestOrder(t, db, userID, now)
	createTestOrder(t, db, uuid.New(), now) // someone else's order

	list, err := repo.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestRepositoryListAllPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	first := createTestOrder(t, db, uuid.New(), now.Add(-2*time.Hour))
	second := createTestOrder(t, db, uuid.New(), now.Add(-time.Hour))
	third := createTestOrder(t, db, uuid.New(), now)

	rows, err := repo.ListAll(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 3) // limit+1 buffer row signals a next page
	assert.Equal(t, third.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID})
	next, err := repo.ListAll(context.Background(), pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, first.ID, next[0].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	order := createTestOrder(t, db, uuid.New(), time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped))

	loaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, loaded.Status)
}

func TestRepositoryUpdateStatusUnknownOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
