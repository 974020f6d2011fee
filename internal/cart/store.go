package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/kv"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
)

// KeyFunc maps a session id to the snapshot key for that cart.
type KeyFunc func(sessionID string) string

// Store owns cart persistence: every mutation rewrites the session's
// snapshot, and loads silently fall back to an empty cart when the stored
// snapshot does not parse.
type Store struct {
	snapshots kv.Store
	key       KeyFunc
	logg      *logger.Logger
}

// NewStore builds a cart store over the provided snapshot backend.
func NewStore(snapshots kv.Store, key KeyFunc, logg *logger.Logger) (*Store, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot store required")
	}
	if key == nil {
		return nil, errors.New("key func required")
	}
	return &Store{snapshots: snapshots, key: key, logg: logg}, nil
}

// Load restores the cart for the session. Missing or corrupt snapshots
// yield an empty cart; corruption is logged, never surfaced.
func (s *Store) Load(ctx context.Context, sessionID string) Cart {
	var c Cart
	err := s.snapshots.GetJSON(ctx, s.key(sessionID), &c)
	switch {
	case err == nil:
		return c
	case errors.Is(err, kv.ErrNotFound):
		return Cart{}
	default:
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "discarding unreadable cart snapshot")
		}
		return Cart{}
	}
}

// AddItem merges the product into the session cart and persists it.
func (s *Store) AddItem(ctx context.Context, sessionID string, product Product) (Cart, error) {
	c := s.Load(ctx, sessionID)
	c.AddItem(product)
	return c, s.persist(ctx, sessionID, c)
}

// RemoveItem drops the product from the session cart and persists it.
func (s *Store) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error) {
	c := s.Load(ctx, sessionID)
	c.RemoveItem(productID)
	return c, s.persist(ctx, sessionID, c)
}

// UpdateQuantity adjusts the product's quantity and persists the cart.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantityKG decimal.Decimal) (Cart, error) {
	c := s.Load(ctx, sessionID)
	c.UpdateQuantity(productID, quantityKG)
	return c, s.persist(ctx, sessionID, c)
}

// Clear empties and persists the session cart.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.persist(ctx, sessionID, Cart{})
}

func (s *Store) persist(ctx context.Context, sessionID string, c Cart) error {
	return s.snapshots.SetJSON(ctx, s.key(sessionID), c)
}
