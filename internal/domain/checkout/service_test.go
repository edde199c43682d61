package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffeeshop-backend/internal/domain/cart"
	"github.com/your-org/coffeeshop-backend/internal/domain/order"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
	"github.com/your-org/coffeeshop-backend/internal/pkg/email"
)

type fakeOrders struct {
	created []*order.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, o *order.Order) error {
	if f.err != nil {
		return f.err
	}
	o.ID = uint(len(f.created) + 1)
	f.created = append(f.created, o)
	return nil
}

type fakeUsers struct {
	users map[uint]*user.User
}

func (f *fakeUsers) GetProfile(_ context.Context, userID uint) (*user.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeCarts struct {
	cleared []string
	err     error
}

func (f *fakeCarts) Clear(_ context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = append(f.cleared, sessionID)
	return nil
}

type fakeMailer struct {
	sent []email.OrderConfirmationData
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, _ string, data email.OrderConfirmationData) error {
	f.sent = append(f.sent, data)
	return nil
}

func sampleCart() *cart.Cart {
	return &cart.Cart{
		SessionID: "session-1",
		Items: []cart.Item{
			{ProductID: 1, ProductName: "Flat White", Price: 450, Quantity: 2, Note: "oat milk"},
			{ProductID: 2, ProductName: "Croissant", Price: 250, Quantity: 1},
		},
	}
}

func newCheckout() (*Service, *fakeOrders, *fakeCarts, *fakeMailer) {
	orders := &fakeOrders{}
	carts := &fakeCarts{}
	mailer := &fakeMailer{}
	users := &fakeUsers{users: map[uint]*user.User{
		7: {ID: 7, Email: "ada@example.com", FirstName: "Ada"},
	}}
	return NewService(orders, users, carts, mailer), orders, carts, mailer
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, orders, carts, _ := newCheckout()

	_, err := svc.Checkout(context.Background(), &cart.Cart{SessionID: "session-1"}, 7)
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Empty(t, orders.created)
	assert.Empty(t, carts.cleared)
}

func TestCheckoutNilCart(t *testing.T) {
	svc, _, _, _ := newCheckout()

	_, err := svc.Checkout(context.Background(), nil, 7)
	assert.True(t, errors.Is(err, ErrEmptyCart))
}

func TestCheckoutUnknownUser(t *testing.T) {
	svc, orders, _, _ := newCheckout()

	_, err := svc.Checkout(context.Background(), sampleCart(), 99)
	assert.True(t, errors.Is(err, user.ErrNotFound))
	assert.Empty(t, orders.created)
}

func TestCheckoutBuildsPendingOrder(t *testing.T) {
	svc, orders, carts, mailer := newCheckout()
	before := time.Now().UTC()

	o, err := svc.Checkout(context.Background(), sampleCart(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)
	// 2 * 450 + 1 * 250
	assert.Equal(t, int64(1150), o.TotalAmount)
	assert.False(t, o.OrderDate.Before(before))

	require.Len(t, o.Details, 2)
	assert.Equal(t, uint(1), o.Details[0].ProductID)
	assert.Equal(t, 2, o.Details[0].Quantity)
	assert.Equal(t, int64(450), o.Details[0].Price)
	assert.Equal(t, "oat milk", o.Details[0].Note)

	require.Len(t, orders.created, 1)
	assert.Equal(t, []string{"session-1"}, carts.cleared)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, o.ID, mailer.sent[0].OrderID)
	assert.Equal(t, "$11.50", mailer.sent[0].TotalAmount)
}

func TestCheckoutPersistenceFailureLeavesCart(t *testing.T) {
	svc, orders, carts, mailer := newCheckout()
	orders.err = errors.New("database is down")

	c := sampleCart()
	_, err := svc.Checkout(context.Background(), c, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderPersistence))

	// The cart survives a failed order write
	assert.Empty(t, carts.cleared)
	assert.Len(t, c.Items, 2)
	assert.Empty(t, mailer.sent)
}

func TestCheckoutSucceedsWhenCartClearFails(t *testing.T) {
	svc, orders, carts, _ := newCheckout()
	carts.err = errors.New("redis is down")

	o, err := svc.Checkout(context.Background(), sampleCart(), 7)
	require.NoError(t, err)
	assert.NotZero(t, o.ID)
	assert.Len(t, orders.created, 1)
}

func TestCheckoutTotalMatchesCartTotal(t *testing.T) {
	svc, _, _, _ := newCheckout()

	c := sampleCart()
	o, err := svc.Checkout(context.Background(), c, 7)
	require.NoError(t, err)

	var detailSum int64
	for _, d := range o.Details {
		detailSum += d.Price * int64(d.Quantity)
	}
	assert.Equal(t, o.TotalAmount, detailSum)
}
