package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/verdantcarry/veganbags-backend/internal/cart"
	"github.com/verdantcarry/veganbags-backend/internal/orders"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
)

// Service drives the three-step checkout wizard: shipping, summary,
// confirmation. State lives server-side so a reload lands the shopper on the
// step they left.
type Service interface {
	Current(ctx context.Context, userID uuid.UUID) (*StateResponse, error)
	SubmitShipping(ctx context.Context, userID uuid.UUID, req SubmitShippingRequest) (*StateResponse, error)
	EditShipping(ctx context.Context, userID uuid.UUID) (*StateResponse, error)
	Place(ctx context.Context, userID uuid.UUID) (*PlaceResponse, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

type cartReader interface {
	Items(ctx context.Context, userID uuid.UUID) (*cart.CartResponse, error)
}

type orderPlacer interface {
	Place(ctx context.Context, userID uuid.UUID, input orders.PlaceOrderInput) (*orders.OrderResponse, error)
}

type service struct {
	sessions *SessionStore
	cart     cartReader
	orders   orderPlacer
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Sessions *SessionStore
	Cart     cartReader
	Orders   orderPlacer
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("checkout session store is required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders service is required")
	}
	return &service{
		sessions: params.Sessions,
		cart:     params.Cart,
		orders:   params.Orders,
	}, nil
}

// Current returns the wizard position and the live quote. An empty cart
// bounces the wizard back to the shipping step unless the shopper just
// completed an order, where the cart is legitimately empty.
func (s *service) Current(ctx context.Context, userID uuid.UUID) (*StateResponse, error) {
	state, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load checkout state")
	}

	cartResp, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cartResp.Items) == 0 && state.Step != enums.CheckoutStepConfirmation {
		state = defaultState()
	}

	return s.buildState(state, cartResp), nil
}

// SubmitShipping records the destination and advances to the summary step.
func (s *service) SubmitShipping(ctx context.Context, userID uuid.UUID, req SubmitShippingRequest) (*StateResponse, error) {
	cartResp, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := State{
		Step:     enums.CheckoutStepSummary,
		Shipping: &req.Shipping,
	}
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save checkout state")
	}

	return s.buildState(state, cartResp), nil
}

// EditShipping steps back from summary to the shipping form, keeping the
// previously entered destination so the form can be prefilled.
func (s *service) EditShipping(ctx context.Context, userID uuid.UUID) (*StateResponse, error) {
	state, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load checkout state")
	}
	if state.Step != enums.CheckoutStepSummary {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "nothing to edit at this step")
	}

	cartResp, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.Step = enums.CheckoutStepShipping
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save checkout state")
	}

	return s.buildState(state, cartResp), nil
}

// Place completes the wizard from the summary step. Order placement and the
// step transition to confirmation happen together; a failed placement leaves
// the shopper on summary.
func (s *service) Place(ctx context.Context, userID uuid.UUID) (*PlaceResponse, error) {
	state, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load checkout state")
	}
	if state.Step != enums.CheckoutStepSummary || state.Shipping == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shipping details required before placing an order")
	}

	order, err := s.orders.Place(ctx, userID, orders.PlaceOrderInput{Shipping: *state.Shipping})
	if err != nil {
		return nil, err
	}

	state.Step = enums.CheckoutStepConfirmation
	state.LastOrderID = &order.ID
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save checkout state")
	}

	return &PlaceResponse{
		Order: *order,
		Step:  enums.CheckoutStepConfirmation,
	}, nil
}

// Reset abandons the wizard.
func (s *service) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear checkout state")
	}
	return nil
}

func (s *service) requireCart(ctx context.Context, userID uuid.UUID) (*cart.CartResponse, error) {
	cartResp, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartResp.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	return cartResp, nil
}

func (s *service) buildState(state State, cartResp *cart.CartResponse) *StateResponse {
	return &StateResponse{
		Step:        state.Step,
		Shipping:    state.Shipping,
		Cart:        *cartResp,
		Totals:      orders.ComputeTotals(cartResp.Subtotal),
		LastOrderID: state.LastOrderID,
	}
}
