package order

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for archiver and service tests
type fakeRepo struct {
	orders    map[uint]Order
	archived  []ArchivedOrder
	moveCalls int
}

func newFakeRepo(orders ...Order) *fakeRepo {
	r := &fakeRepo{orders: map[uint]Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, o *Order) error {
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uint) ([]Order, error) {
	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, _ *ListFilter) ([]Order, int64, error) {
	var out []Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) FindWithDetails(_ context.Context, ids []uint) ([]Order, error) {
	var out []Order
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeRepo) MoveToArchive(_ context.Context, orders []Order, archivedAt time.Time) error {
	r.moveCalls++
	for i := range orders {
		r.archived = append(r.archived, NewArchivedOrder(&orders[i], archivedAt))
		delete(r.orders, orders[i].ID)
	}
	return nil
}

func (r *fakeRepo) ListArchived(_ context.Context) ([]ArchivedOrder, error) {
	return r.archived, nil
}

func sampleOrder(id, userID uint, total int64) Order {
	return Order{
		ID:          id,
		UserID:      userID,
		OrderDate:   time.Date(2025, 3, int(id), 10, 0, 0, 0, time.UTC),
		TotalAmount: total,
		Status:      StatusPending,
		Details: []OrderDetail{
			{OrderID: id, ProductID: 1, Quantity: 2, Price: total / 2, Note: "extra hot"},
		},
	}
}

func TestArchiveEmptyBatchIsNoOp(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 7, 900))
	archiver := NewArchiver(repo)

	result, err := archiver.Archive(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Archived)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, repo.moveCalls)
	assert.Len(t, repo.orders, 1)
}

func TestArchiveMovesOrders(t *testing.T) {
	repo := newFakeRepo(
		sampleOrder(1, 7, 900),
		sampleOrder(2, 7, 1200),
		sampleOrder(3, 8, 450),
	)
	archiver := NewArchiver(repo)

	result, err := archiver.Archive(context.Background(), []uint{1, 3})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Archived)
	assert.Equal(t, 0, result.Skipped)

	// The originals are gone, the untouched order remains
	assert.Len(t, repo.orders, 1)
	_, stillLive := repo.orders[2]
	assert.True(t, stillLive)

	require.Len(t, repo.archived, 2)
}

func TestArchiveSkipsMissingOrders(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 7, 900))
	archiver := NewArchiver(repo)

	result, err := archiver.Archive(context.Background(), []uint{1, 99, 100})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 2, result.Skipped)
}

func TestArchiveIsIdempotent(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 7, 900))
	archiver := NewArchiver(repo)
	ctx := context.Background()

	first, err := archiver.Archive(ctx, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Archived)

	// Same batch again: nothing left to archive, only skips
	second, err := archiver.Archive(ctx, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Archived)
	assert.Equal(t, 1, second.Skipped)

	assert.Len(t, repo.archived, 1)
}

func TestArchiveDeduplicatesBatch(t *testing.T) {
	repo := newFakeRepo(sampleOrder(1, 7, 900))
	archiver := NewArchiver(repo)

	result, err := archiver.Archive(context.Background(), []uint{1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, repo.archived, 1)
}

func TestNewArchivedOrderCopiesEverything(t *testing.T) {
	o := Order{
		ID:          42,
		UserID:      7,
		OrderDate:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		TotalAmount: 1550,
		Status:      StatusCompleted,
		Details: []OrderDetail{
			{ID: 1, OrderID: 42, ProductID: 3, Quantity: 2, Price: 400, Note: "no sugar"},
			{ID: 2, OrderID: 42, ProductID: 5, Quantity: 1, Price: 750, Note: ""},
		},
	}
	archivedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	archived := NewArchivedOrder(&o, archivedAt)

	assert.Equal(t, uint(42), archived.SourceOrderID)
	assert.Equal(t, uint(7), archived.UserID)
	assert.Equal(t, o.OrderDate, archived.OrderDate)
	assert.Equal(t, int64(1550), archived.TotalAmount)
	assert.Equal(t, StatusCompleted, archived.Status)
	assert.Equal(t, archivedAt, archived.ArchivedDate)

	require.Len(t, archived.Details, 2)
	assert.Equal(t, uint(3), archived.Details[0].ProductID)
	assert.Equal(t, 2, archived.Details[0].Quantity)
	assert.Equal(t, int64(400), archived.Details[0].Price)
	assert.Equal(t, "no sugar", archived.Details[0].Note)
	assert.Equal(t, uint(5), archived.Details[1].ProductID)
}

func TestArchivePreservesTotals(t *testing.T) {
	orders := []Order{
		sampleOrder(1, 7, 900),
		sampleOrder(2, 7, 1200),
		sampleOrder(3, 8, 450),
	}
	repo := newFakeRepo(orders...)
	archiver := NewArchiver(repo)

	var liveSum int64
	for _, o := range orders {
		liveSum += o.TotalAmount
	}

	_, err := archiver.Archive(context.Background(), []uint{1, 2, 3})
	require.NoError(t, err)

	archived, err := archiver.ListArchived(context.Background())
	require.NoError(t, err)

	var archivedSum int64
	for _, a := range archived {
		archivedSum += a.TotalAmount
	}
	assert.Equal(t, liveSum, archivedSum)
	assert.Empty(t, repo.orders)
}
