package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
)

// Service defines the behavior needed by the product controllers.
type Service interface {
	List(ctx context.Context, params FilterParams) ([]ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error)
	Create(ctx context.Context, dto CreateProductDTO) (*ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs a catalog service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	return &service{repo: repo}, nil
}

// List fetches the full catalog snapshot and applies the filter in memory.
// Filtering never re-queries, so the same snapshot backs every combination
// of constraints.
func (s *service) List(ctx context.Context, params FilterParams) ([]ProductResponse, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	snapshot := FromModels(items)
	if params.IsZero() {
		return snapshot, nil
	}
	return Filter(snapshot, params), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	resp := FromModel(product)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, dto CreateProductDTO) (*ProductResponse, error) {
	if !dto.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	product, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	resp := FromModel(product)
	return &resp, nil
}

// Update replaces every editable field. Orders placed before the update keep
// their recorded prices; only the live catalog changes.
func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*ProductResponse, error) {
	if !dto.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	product, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	resp := FromModel(product)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}
