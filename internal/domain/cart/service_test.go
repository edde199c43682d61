package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffeeshop-backend/internal/config"
	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
)

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type fakeLookup struct {
	products map[uint]*catalog.Product
}

func (f *fakeLookup) GetProduct(_ context.Context, id uint) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cart: config.CartConfig{
			TTL:             24 * time.Hour,
			MaxItemsPerCart: 50,
		},
	}
}

func testService(products map[uint]*catalog.Product) (*Service, *memoryStore) {
	store := newMemoryStore()
	return NewService(store, &fakeLookup{products: products}, testConfig()), store
}

func TestGetReturnsEmptyCartForNewSession(t *testing.T) {
	svc, _ := testService(nil)

	c, err := svc.Get(context.Background(), "session-1", nil)
	require.NoError(t, err)

	assert.Equal(t, "session-1", c.SessionID)
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.UserID)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	svc, _ := testService(map[uint]*catalog.Product{
		1: {ID: 1, Name: "Flat White", Price: 450},
	})

	c, err := svc.AddItem(context.Background(), "session-1", nil, 1, "oat milk")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(1), c.Items[0].ProductID)
	assert.Equal(t, "Flat White", c.Items[0].ProductName)
	assert.Equal(t, int64(450), c.Items[0].Price)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, "oat milk", c.Items[0].Note)
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	svc, _ := testService(map[uint]*catalog.Product{
		1: {ID: 1, Name: "Flat White", Price: 450},
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", nil, 1, "oat milk")
	require.NoError(t, err)

	c, err := svc.AddItem(ctx, "session-1", nil, 1, "ignored")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	// The note from the first add sticks
	assert.Equal(t, "oat milk", c.Items[0].Note)
	assert.Equal(t, int64(900), c.TotalAmount())
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := testService(nil)

	_, err := svc.AddItem(context.Background(), "session-1", nil, 99, "")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
}

func TestAddItemDelistedProductRejectedEvenWhenInCart(t *testing.T) {
	products := map[uint]*catalog.Product{
		1: {ID: 1, Name: "Cortado", Price: 400},
	}
	svc, _ := testService(products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	// Product disappears from the catalog after the first add
	delete(products, 1)

	_, err = svc.AddItem(ctx, "session-1", nil, 1, "")
	assert.True(t, errors.Is(err, catalog.ErrProductNotFound))

	// The existing line is untouched
	c, err := svc.Get(ctx, "session-1", nil)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestAddItemKeepsSnapshotAfterPriceChange(t *testing.T) {
	products := map[uint]*catalog.Product{
		1: {ID: 1, Name: "Espresso", Price: 300},
	}
	svc, _ := testService(products)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	// Catalog price changes after the item is in the cart
	products[1].Price = 350

	c, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(300), c.Items[0].Price)
	assert.Equal(t, int64(600), c.TotalAmount())
}

func TestRemoveItems(t *testing.T) {
	svc, _ := testService(map[uint]*catalog.Product{
		1: {ID: 1, Name: "Espresso", Price: 300},
		2: {ID: 2, Name: "Croissant", Price: 250},
		3: {ID: 3, Name: "Mocha", Price: 500},
	})
	ctx := context.Background()

	for _, id := range []uint{1, 2, 3} {
		_, err := svc.AddItem(ctx, "session-1", nil, id, "")
		require.NoError(t, err)
	}

	c, err := svc.RemoveItems(ctx, "session-1", nil, []uint{1, 3, 42})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(2), c.Items[0].ProductID)

	// Removal is persisted
	c, err = svc.Get(ctx, "session-1", nil)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestClearDropsStoredCart(t *testing.T) {
	svc, store := testService(map[uint]*catalog.Product{
		1: {ID: 1, Name: "Espresso", Price: 300},
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)
	require.Len(t, store.data, 1)

	require.NoError(t, svc.Clear(ctx, "session-1"))
	assert.Empty(t, store.data)

	c, err := svc.Get(ctx, "session-1", nil)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestGetRestampsOwnerOnLogin(t *testing.T) {
	svc, _ := testService(map[uint]*catalog.Product{
		1: {ID: 1, Name: "Espresso", Price: 300},
	})
	ctx := context.Background()

	// Guest builds a cart, then authenticates
	_, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	userID := uint(7)
	c, err := svc.Get(ctx, "session-1", &userID)
	require.NoError(t, err)
	require.NotNil(t, c.UserID)
	assert.Equal(t, uint(7), *c.UserID)

	// Items survive the restamp
	require.Len(t, c.Items, 1)

	// A different user on the same session takes the cart over
	otherID := uint(8)
	c, err = svc.Get(ctx, "session-1", &otherID)
	require.NoError(t, err)
	require.NotNil(t, c.UserID)
	assert.Equal(t, uint(8), *c.UserID)
}

func TestTotalAmountSumsLines(t *testing.T) {
	c := &Cart{
		Items: []Item{
			{ProductID: 1, Price: 300, Quantity: 2},
			{ProductID: 2, Price: 250, Quantity: 1},
			{ProductID: 3, Price: 500, Quantity: 3},
		},
	}

	assert.Equal(t, int64(2350), c.TotalAmount())
	assert.Equal(t, 6, c.TotalQuantity())
}

func TestAddItemRespectsLineLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Cart.MaxItemsPerCart = 1
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{products: map[uint]*catalog.Product{
		1: {ID: 1, Name: "Espresso", Price: 300},
		2: {ID: 2, Name: "Croissant", Price: 250},
	}}, cfg)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	// Same product still increments
	_, err = svc.AddItem(ctx, "session-1", nil, 1, "")
	require.NoError(t, err)

	// A new line is rejected
	_, err = svc.AddItem(ctx, "session-1", nil, 2, "")
	assert.True(t, errors.Is(err, ErrCartFull))
}
