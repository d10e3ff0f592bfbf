package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// CreateProductDTO carries the fields needed to persist a new listing.
type CreateProductDTO struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Price       decimal.Decimal   `json:"price" validate:"required"`
	Category    enums.BagCategory `json:"category" validate:"required"`
	Material    string            `json:"material" validate:"required"`
	IsVegan     bool              `json:"is_vegan"`
	ImageURL    string            `json:"image_url" validate:"required,url"`
	Stock       int               `json:"stock" validate:"gte=0"`
}

// ToModel converts the DTO into a persistable product model.
func (d CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Material:    d.Material,
		IsVegan:     d.IsVegan,
		ImageURL:    d.ImageURL,
		Stock:       d.Stock,
	}
}

// UpdateProductDTO replaces every editable field of a listing.
type UpdateProductDTO struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Price       decimal.Decimal   `json:"price" validate:"required"`
	Category    enums.BagCategory `json:"category" validate:"required"`
	Material    string            `json:"material" validate:"required"`
	IsVegan     bool              `json:"is_vegan"`
	ImageURL    string            `json:"image_url" validate:"required,url"`
	Stock       int               `json:"stock" validate:"gte=0"`
}

// ProductResponse is the public shape of a catalog listing.
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Category    enums.BagCategory `json:"category"`
	Material    string            `json:"material"`
	IsVegan     bool              `json:"is_vegan"`
	ImageURL    string            `json:"image_url"`
	Stock       int               `json:"stock"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FromModel maps a persisted product into its response shape.
func FromModel(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Material:    product.Material,
		IsVegan:     product.IsVegan,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromModels maps a slice of products preserving order.
func FromModels(productsList []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(productsList))
	for i := range productsList {
		out = append(out, FromModel(&productsList[i]))
	}
	return out
}
