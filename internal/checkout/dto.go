package checkout

import (
	"github.com/google/uuid"

	"github.com/verdantcarry/veganbags-backend/internal/cart"
	"github.com/verdantcarry/veganbags-backend/internal/orders"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// SubmitShippingRequest carries the wizard's shipping form.
type SubmitShippingRequest struct {
	Shipping orders.ShippingDetails `json:"shipping" validate:"required"`
}

// StateResponse reports the wizard position plus the live cart quote.
type StateResponse struct {
	Step        enums.CheckoutStep      `json:"step"`
	Shipping    *orders.ShippingDetails `json:"shipping,omitempty"`
	Cart        cart.CartResponse       `json:"cart"`
	Totals      orders.Totals           `json:"totals"`
	LastOrderID *uuid.UUID              `json:"last_order_id,omitempty"`
}

// PlaceResponse is returned when the wizard completes.
type PlaceResponse struct {
	Order orders.OrderResponse `json:"order"`
	Step  enums.CheckoutStep   `json:"step"`
}
