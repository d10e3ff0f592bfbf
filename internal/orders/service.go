package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/verdantcarry/veganbags-backend/internal/cart"
	"github.com/verdantcarry/veganbags-backend/internal/products"
	"github.com/verdantcarry/veganbags-backend/pkg/db"
	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
	"github.com/verdantcarry/veganbags-backend/pkg/pagination"
)

// Service defines the behavior needed by the order controllers.
type Service interface {
	Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*OrderResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error)
	ListAll(ctx context.Context, params pagination.Params) (*OrderPage, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error)
}

type service struct {
	db   *db.Client
	repo *Repository
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	DB   *db.Client
	Repo *Repository
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{db: params.DB, repo: params.Repo}, nil
}

// Place converts the cart into an order inside a single transaction: the
// order and its items are written, stock is decremented, and the cart is
// cleared, or none of it happens. Prices and names are frozen from the
// catalog as it stands at placement.
func (s *service) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderResponse, error) {
	var placed *models.Order

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		productRepo := products.NewRepository(tx)
		orderRepo := s.repo.WithTx(tx)

		lines, err := cartRepo.ListForUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}

		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for i := range lines {
			line := &lines[i]
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cart references missing product")
			}
			if err := productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}

			items = append(items, models.OrderItem{
				ProductID:       line.ProductID,
				ProductName:     line.Product.Name,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Product.Price,
			})
			subtotal = subtotal.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		totals := ComputeTotals(subtotal)
		order := &models.Order{
			UserID:             userID,
			Status:             enums.OrderStatusPending,
			Subtotal:           totals.Subtotal,
			ShippingFee:        totals.ShippingFee,
			TotalAmount:        totals.TotalAmount,
			PaymentMethod:      enums.PaymentMethodCOD,
			ShippingFullName:   input.Shipping.FullName,
			ShippingAddress:    input.Shipping.Address,
			ShippingCity:       input.Shipping.City,
			ShippingPostalCode: input.Shipping.PostalCode,
			ShippingCountry:    input.Shipping.Country,
			ShippingPhone:      input.Shipping.Phone,
			Items:              items,
		}
		if err := orderRepo.Insert(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert order")
		}

		if err := cartRepo.DeleteForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := FromModel(placed)
	return &resp, nil
}

// Get returns one order. Shoppers only see their own; owners see any.
func (s *service) Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	if role != enums.UserRoleOwner && order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	resp := FromModel(order)
	return &resp, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	out, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return FromModels(out), nil
}

// ListAll serves the owner dashboard with a cursor page across all accounts.
func (s *service) ListAll(ctx context.Context, params pagination.Params) (*OrderPage, error) {
	rows, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &OrderPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	page.Orders = FromModels(rows)
	return page, nil
}

// UpdateStatus transitions one order to the requested lifecycle state.
// Unknown order IDs are reported, never silently ignored.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if err := s.repo.UpdateStatus(ctx, orderID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	resp := FromModel(order)
	return &resp, nil
}
