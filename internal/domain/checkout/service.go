// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffeeshop-backend/internal/domain/cart"
	"github.com/your-org/coffeeshop-backend/internal/domain/order"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
	"github.com/your-org/coffeeshop-backend/internal/pkg/email"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderPersistence is returned when the order could not be stored.
	// The cart is left intact so the buyer can retry.
	ErrOrderPersistence = errors.New("failed to place order")
)

// OrderCreator persists new orders
type OrderCreator interface {
	Create(ctx context.Context, o *order.Order) error
}

// UserDirectory resolves the account placing the order
type UserDirectory interface {
	GetProfile(ctx context.Context, userID uint) (*user.User, error)
}

// CartClearer empties the session cart once the order is safely stored
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

// Mailer sends the order confirmation email
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, data email.OrderConfirmationData) error
}

// Service turns session carts into persisted orders
type Service struct {
	orders OrderCreator
	users  UserDirectory
	carts  CartClearer
	mailer Mailer
}

// NewService creates a new checkout service
func NewService(orders OrderCreator, users UserDirectory, carts CartClearer, mailer Mailer) *Service {
	return &Service{
		orders: orders,
		users:  users,
		carts:  carts,
		mailer: mailer,
	}
}

// Checkout converts the session cart into a pending order. The order and
// all of its lines are written in one transaction; the cart is cleared
// only after the order is safely persisted, so a storage failure leaves
// the cart intact for retry.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, userID uint) (*order.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	buyer, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		UserID:      buyer.ID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: c.TotalAmount(),
		Status:      order.StatusPending,
		Details:     make([]order.OrderDetail, 0, len(c.Items)),
	}

	for _, item := range c.Items {
		o.Details = append(o.Details, order.OrderDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Note:      item.Note,
		})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// The order exists from here on. A failed cart clear is not worth
	// failing the checkout over; the cart TTL will reap it.
	if err := s.carts.Clear(ctx, c.SessionID); err != nil {
		logrus.WithError(err).WithField("order_id", o.ID).Warn("Failed to clear cart after checkout")
	}

	s.sendConfirmation(ctx, buyer, o, c)

	return o, nil
}

// sendConfirmation emails the order confirmation. Delivery problems are
// logged, never surfaced to the buyer.
func (s *Service) sendConfirmation(ctx context.Context, buyer *user.User, o *order.Order, c *cart.Cart) {
	if s.mailer == nil {
		return
	}

	data := email.OrderConfirmationData{
		Name:        buyer.GetDisplayName(),
		OrderID:     o.ID,
		OrderDate:   o.OrderDate.Format("January 2, 2006 15:04"),
		TotalAmount: formatCents(o.TotalAmount),
		Items:       make([]email.OrderConfirmationItem, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		data.Items = append(data.Items, email.OrderConfirmationItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    formatCents(item.Price),
			Note:     item.Note,
		})
	}

	if err := s.mailer.SendOrderConfirmation(ctx, buyer.Email, data); err != nil {
		logrus.WithError(err).WithField("order_id", o.ID).Warn("Failed to send order confirmation email")
	}
}

// formatCents renders a cent amount as a dollar string
func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
