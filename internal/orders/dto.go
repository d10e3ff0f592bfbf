package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/pkg/db/models"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// ShippingDetails is the destination captured by the checkout wizard.
type ShippingDetails struct {
	FullName   string `json:"full_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	Shipping ShippingDetails
}

// UpdateStatusRequest moves an order through its lifecycle.
type UpdateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// ItemResponse is one frozen purchase line.
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderResponse is the public shape of a placed order.
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Status        enums.OrderStatus   `json:"status"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingFee   decimal.Decimal     `json:"shipping_fee"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Shipping      ShippingDetails     `json:"shipping"`
	Items         []ItemResponse      `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderPage is a cursor page of orders for the owner dashboard.
type OrderPage struct {
	Orders     []OrderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted order into its response shape.
func FromModel(order *models.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, ItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			LineTotal:       item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Shipping: ShippingDetails{
			FullName:   order.ShippingFullName,
			Address:    order.ShippingAddress,
			City:       order.ShippingCity,
			PostalCode: order.ShippingPostalCode,
			Country:    order.ShippingCountry,
			Phone:      order.ShippingPhone,
		},
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
}

// FromModels maps a slice of orders preserving order.
func FromModels(ordersList []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(ordersList))
	for i := range ordersList {
		out = append(out, FromModel(&ordersList[i]))
	}
	return out
}
