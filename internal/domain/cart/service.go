// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
)

// ErrCartFull is returned when a cart reaches the configured line limit
var ErrCartFull = errors.New("cart is full")

// SessionStore abstracts the key-value store backing session carts.
// The Redis client wrapper implements it.
type SessionStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ProductLookup resolves catalog products when items are added
type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*catalog.Product, error)
}

// Service handles session cart business logic
type Service struct {
	store    SessionStore
	products ProductLookup
	config   *config.Config
}

// NewService creates a new cart service
func NewService(store SessionStore, products ProductLookup, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		products: products,
		config:   cfg,
	}
}

// cartKey builds the Redis key for a session cart
func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get loads the cart for a session, creating an empty one if none is
// stored. When the session is authenticated and the stored cart carries
// a different owner, the cart is restamped with the current user.
func (s *Service) Get(ctx context.Context, sessionID string, userID *uint) (*Cart, error) {
	value, found, err := s.store.Get(ctx, cartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	now := time.Now().UTC()
	if !found {
		return &Cart{
			SessionID: sessionID,
			UserID:    userID,
			Items:     []Item{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(value), &c); err != nil {
		// A corrupt blob is unrecoverable; start the session over
		logrus.WithField("session_id", sessionID).Warn("Discarding unreadable session cart")
		return &Cart{
			SessionID: sessionID,
			UserID:    userID,
			Items:     []Item{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	c.SessionID = sessionID

	if userID != nil && (c.UserID == nil || *c.UserID != *userID) {
		if c.UserID != nil {
			logrus.WithFields(logrus.Fields{
				"session_id":    sessionID,
				"previous_user": *c.UserID,
				"current_user":  *userID,
			}).Debug("Restamping session cart owner")
		}
		c.UserID = userID
		if err := s.Save(ctx, &c); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// AddItem adds one unit of a product to the session cart. The product
// must still exist in the catalog, even when the cart already has a
// line for it. Adding a product already in the cart increments its
// quantity by one and keeps the original price snapshot; the note is
// only recorded for new lines.
func (s *Service) AddItem(ctx context.Context, sessionID string, userID *uint, productID uint, note string) (*Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if item := c.Find(productID); item != nil {
		item.Quantity++
	} else {
		if s.config.Cart.MaxItemsPerCart > 0 && len(c.Items) >= s.config.Cart.MaxItemsPerCart {
			return nil, ErrCartFull
		}

		c.Items = append(c.Items, Item{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    1,
			Note:        note,
			AddedAt:     time.Now().UTC(),
		})
	}

	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItems removes the lines for the given product IDs and persists
// the cart. Unknown product IDs are ignored.
func (s *Service) RemoveItems(ctx context.Context, sessionID string, userID *uint, productIDs []uint) (*Cart, error) {
	c, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	c.Remove(productIDs)

	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear drops the session cart from the store entirely
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Save persists the cart with the configured session TTL. Every save
// refreshes the TTL, so active sessions never expire mid-visit.
func (s *Service) Save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.store.Set(ctx, cartKey(c.SessionID), string(data), s.config.Cart.TTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
