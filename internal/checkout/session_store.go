package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/verdantcarry/veganbags-backend/internal/orders"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// State is the wizard position persisted between checkout requests.
type State struct {
	Step        enums.CheckoutStep      `json:"step"`
	Shipping    *orders.ShippingDetails `json:"shipping,omitempty"`
	LastOrderID *uuid.UUID              `json:"last_order_id,omitempty"`
}

func defaultState() State {
	return State{Step: enums.CheckoutStepShipping}
}

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type stateKeyer interface {
	CheckoutSessionKey(userID string) string
}

// SessionStore persists wizard state in Redis, one entry per shopper.
type SessionStore struct {
	store stateStore
	keyer stateKeyer
	ttl   time.Duration
}

// NewSessionStore builds a Redis-backed wizard state store.
func NewSessionStore(store stateStore, keyer stateKeyer, ttl time.Duration) (*SessionStore, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store is required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("redis keyer is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("checkout session ttl must be positive")
	}
	return &SessionStore{store: store, keyer: keyer, ttl: ttl}, nil
}

// Load returns the shopper's wizard state, falling back to the first step
// when nothing is stored or the entry has expired.
func (s *SessionStore) Load(ctx context.Context, userID uuid.UUID) (State, error) {
	raw, err := s.store.Get(ctx, s.keyer.CheckoutSessionKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return defaultState(), nil
		}
		return State{}, err
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// A corrupt entry restarts the wizard rather than wedging it.
		return defaultState(), nil
	}
	if !state.Step.IsValid() {
		return defaultState(), nil
	}
	return state, nil
}

// Save writes the wizard state, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, userID uuid.UUID, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal checkout state: %w", err)
	}
	return s.store.Set(ctx, s.keyer.CheckoutSessionKey(userID.String()), payload, s.ttl)
}

// Clear drops the wizard state entirely.
func (s *SessionStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Del(ctx, s.keyer.CheckoutSessionKey(userID.String()))
}
