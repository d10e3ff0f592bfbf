package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
)

// Service defines the behavior needed by the cart controller.
type Service interface {
	Items(ctx context.Context, userID uuid.UUID) (*CartResponse, error)
	Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type repository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	FindLineByID(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     repository
	products productFinder
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Repo     repository
	Products productFinder
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) Items(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	resp := cartFromModels(items)
	return &resp, nil
}

// Add merges into an existing line for the same product instead of creating a
// duplicate. Quantities below one are clamped to one.
func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	quantity := clampQuantity(req.Quantity)

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}

	line, err := s.repo.FindLine(ctx, userID, req.ProductID)
	switch {
	case err == nil:
		merged := line.Quantity + quantity
		if merged > product.Stock {
			return nil, insufficientStock(product)
		}
		if err := s.repo.UpdateQuantity(ctx, line.ID, merged); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart line")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			return nil, insufficientStock(product)
		}
		item := &models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  quantity,
		}
		if err := s.repo.Insert(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart line")
	}

	return s.Items(ctx, userID)
}

// SetQuantity replaces a line's quantity. Values below one are clamped to one
// rather than removing the line; removal is an explicit operation.
func (s *service) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	quantity := clampQuantity(req.Quantity)

	line, err := s.repo.FindLineByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart line")
	}

	product, err := s.products.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	if quantity > product.Stock {
		return nil, insufficientStock(product)
	}

	if err := s.repo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}

	return s.Items(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	if err := s.repo.DeleteLine(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.Items(ctx, userID)
}

// Clear empties the cart. Clearing twice leaves the same empty cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

func insufficientStock(product *models.Product) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
		WithDetails(map[string]any{
			"product_id": product.ID,
			"stock":      product.Stock,
		})
}
