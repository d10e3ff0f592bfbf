package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantcarry/veganbags-backend/internal/cart"
	"github.com/verdantcarry/veganbags-backend/pkg/config"
	"github.com/verdantcarry/veganbags-backend/pkg/db"
	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
)

func setupOrderServiceTest(t *testing.T) (*db.Client, Service) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		DSN:    ordersTestDSN(),
		Driver: "sqlite",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  material TEXT NOT NULL DEFAULT '',
  is_vegan BOOLEAN NOT NULL DEFAULT 1,
  image_url TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE(user_id, product_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
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
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_at_purchase NUMERIC NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}

	svc, err := NewService(ServiceParams{DB: client, Repo: NewRepository(client.DB())})
	require.NoError(t, err)
	return client, svc
}

func seedProduct(t *testing.T, client *db.Client, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     "City Tote",
		Price:    decimal.RequireFromString(price),
		Category: enums.BagCategoryTote,
		Material: "Cork",
		Stock:    stock,
	}
	require.NoError(t, client.DB().Create(product).Error)
	return product
}

func seedCartLine(t *testing.T, client *db.Client, userID uuid.UUID, product *models.Product, quantity int) {
	t.Helper()

	line := &models.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  quantity,
	}
	require.NoError(t, client.DB().Create(line).Error)
}

func testShippingDetails() ShippingDetails {
	return ShippingDetails{
		FullName:   "Ada Shopper",
		Address:    "1 Vine St",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "US",
		Phone:      "+1 555 0100",
	}
}

func TestServicePlaceFreezesPricesAndClearsCart(t *testing.T) {
	client, svc := setupOrderServiceTest(t)
	userID := uuid.New()
	product := seedProduct(t, client, "40.00", 10)
	seedCartLine(t, client, userID, product, 2)

	placed, err := svc.Place(context.Background(), userID, PlaceOrderInput{Shipping: testShippingDetails()})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusPending, placed.Status)
	assert.Equal(t, enums.PaymentMethodCOD, placed.PaymentMethod)
	assert.True(t, placed.Subtotal.Equal(decimal.RequireFromString("80.00")), "subtotal %s", placed.Subtotal)
	assert.True(t, placed.ShippingFee.Equal(decimal.NewFromInt(10)), "fee %s", placed.ShippingFee)
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("90.00")), "total %s", placed.TotalAmount)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "City Tote", placed.Items[0].ProductName)

	// catalog edits after placement never rewrite the order
	require.NoError(t, client.DB().Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{"price": "99.99", "name": "Renamed Tote"}).Error)

	reloaded, err := svc.Get(context.Background(), userID, enums.UserRoleUser, placed.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, "City Tote", reloaded.Items[0].ProductName)

	var stock int
	require.NoError(t, client.DB().Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("stock").Scan(&stock).Error)
	assert.Equal(t, 8, stock)

	lines, err := cart.NewRepository(client.DB()).ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestServicePlaceFreeShippingOverThreshold(t *testing.T) {
	client, svc := setupOrderServiceTest(t)
	userID := uuid.New()
	product := seedProduct(t, client, "50.01", 10)
	seedCartLine(t, client, userID, product, 2)

	placed, err := svc.Place(context.Background(), userID, PlaceOrderInput{Shipping: testShippingDetails()})
	require.NoError(t, err)
	assert.True(t, placed.ShippingFee.IsZero(), "fee %s", placed.ShippingFee)
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("100.02")))
}

func TestServicePlaceEmptyCart(t *testing.T) {
	_, svc := setupOrderServiceTest(t)

	_, err := svc.Place(context.Background(), uuid.New(), PlaceOrderInput{Shipping: testShippingDetails()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestServicePlaceInsufficientStockRollsBack(t *testing.T) {
	client, svc := setupOrderServiceTest(t)
	userID := uuid.New()
	cheap := seedProduct(t, client, "10.00", 10)
	scarce := seedProduct(t, client, "20.00", 1)
	seedCartLine(t, client, userID, cheap, 2)
	seedCartLine(t, client, userID, scarce, 3)

	_, err := svc.Place(context.Background(), userID, PlaceOrderInput{Shipping: testShippingDetails()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// nothing was committed: stock untouched, cart intact, no order rows
	var stock int
	require.NoError(t, client.DB().Model(&models.Product{}).
		Where("id = ?", cheap.ID).
		Select("stock").Scan(&stock).Error)
	assert.Equal(t, 10, stock)

	lines, err := cart.NewRepository(client.DB()).ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	var count int64
	require.NoError(t, client.DB().Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceGetScopesShoppersToOwnOrders(t *testing.T) {
	client, svc := setupOrderServiceTest(t)
	owner := uuid.New()
	stranger := uuid.New()
	product := seedProduct(t, client, "40.00", 10)
	seedCartLine(t, client, owner, product, 1)

	placed, err := svc.Place(context.Background(), owner, PlaceOrderInput{Shipping: testShippingDetails()})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, enums.UserRoleUser, placed.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// owners see every order
	got, err := svc.Get(context.Background(), stranger, enums.UserRoleOwner, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}

func TestServiceUpdateStatus(t *testing.T) {
	client, svc := setupOrderServiceTest(t)
	userID := uuid.New()
	product := seedProduct(t, client, "40.00", 10)
	seedCartLine(t, client, userID, product, 1)

	placed, err := svc.Place(context.Background(), userID, PlaceOrderInput{Shipping: testShippingDetails()})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: enums.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), UpdateStatusRequest{Status: enums.OrderStatusConfirmed})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = svc.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: enums.OrderStatus("teleported")})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
