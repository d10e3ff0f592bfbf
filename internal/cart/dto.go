package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/internal/products"
	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateItemRequest sets the absolute quantity of an existing line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// ItemResponse is one cart line joined with its live product data.
type ItemResponse struct {
	ID        uuid.UUID                `json:"id"`
	ProductID uuid.UUID                `json:"product_id"`
	Quantity  int                      `json:"quantity"`
	LineTotal decimal.Decimal          `json:"line_total"`
	Product   products.ProductResponse `json:"product"`
	AddedAt   time.Time                `json:"added_at"`
}

// CartResponse is the full cart with its running subtotal.
type CartResponse struct {
	Items    []ItemResponse  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func itemFromModel(item *models.CartItem) ItemResponse {
	resp := ItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.CreatedAt,
	}
	if item.Product != nil {
		resp.Product = products.FromModel(item.Product)
		resp.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return resp
}

func cartFromModels(items []models.CartItem) CartResponse {
	out := CartResponse{
		Items:    make([]ItemResponse, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for i := range items {
		line := itemFromModel(&items[i])
		out.Items = append(out.Items, line)
		out.Subtotal = out.Subtotal.Add(line.LineTotal)
	}
	return out
}
