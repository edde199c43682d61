package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
)

type fakeUserLookup struct {
	known map[uint]bool
}

func (f *fakeUserLookup) Exists(_ context.Context, id uint) (bool, error) {
	return f.known[id], nil
}

func TestHistoryReturnsOrdersNewestFirst(t *testing.T) {
	repo := newFakeRepo(
		sampleOrder(1, 7, 900),  // order date 2025-03-01
		sampleOrder(5, 7, 1200), // order date 2025-03-05
		sampleOrder(3, 7, 450),  // order date 2025-03-03
		sampleOrder(4, 8, 600),  // another customer
	)
	svc := NewService(repo, &fakeUserLookup{known: map[uint]bool{7: true}})

	orders, err := svc.History(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, orders, 3)
	assert.Equal(t, uint(5), orders[0].ID)
	assert.Equal(t, uint(3), orders[1].ID)
	assert.Equal(t, uint(1), orders[2].ID)
}

func TestHistoryUnknownUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeUserLookup{known: map[uint]bool{}})

	_, err := svc.History(context.Background(), 99)
	assert.True(t, errors.Is(err, user.ErrNotFound))
}

func TestHistoryEmptyForUserWithoutOrders(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 8, 900))
	svc := NewService(repo, &fakeUserLookup{known: map[uint]bool{7: true}})

	orders, err := svc.History(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetHidesForeignOrders(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 7, 900))
	svc := NewService(repo, &fakeUserLookup{known: map[uint]bool{7: true, 8: true}})
	ctx := context.Background()

	// Owner sees the order
	o, err := svc.Get(ctx, 1, 7, false)
	require.NoError(t, err)
	assert.Equal(t, uint(1), o.ID)

	// Another customer gets not found, not forbidden
	_, err = svc.Get(ctx, 1, 8, false)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Admin sees everything
	o, err = svc.Get(ctx, 1, 8, true)
	require.NoError(t, err)
	assert.Equal(t, uint(1), o.ID)
}
