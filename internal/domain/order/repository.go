// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an order does not exist
var ErrNotFound = errors.New("order not found")

// ListFilter narrows admin order listings
type ListFilter struct {
	UserID        *uint
	Status        string
	CustomerEmail string
	From          *time.Time
	To            *time.Time
	MinTotal      *int64
	MaxTotal      *int64
	Page          int
	Limit         int
}

// Repository persists orders and their archive copies
type Repository interface {
	// Create persists an order and all of its lines in one transaction
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	// ListByUser returns a user's orders, most recent order date first
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	List(ctx context.Context, filter *ListFilter) ([]Order, int64, error)
	// FindWithDetails loads the orders that exist among the given IDs
	FindWithDetails(ctx context.Context, ids []uint) ([]Order, error)
	// MoveToArchive copies the orders into the archive tables and
	// deletes the originals, all in one transaction
	MoveToArchive(ctx context.Context, orders []Order, archivedAt time.Time) error
	ListArchived(ctx context.Context) ([]ArchivedOrder, error)
}

// gormRepository is the PostgreSQL-backed Repository
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create persists an order and its details in one transaction
func (r *gormRepository) Create(ctx context.Context, o *Order) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	details := o.Details
	o.Details = nil

	if err := tx.Create(o).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range details {
		details[i].OrderID = o.ID
		if err := tx.Create(&details[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create order detail: %w", err)
		}
	}
	o.Details = details

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// GetByID loads a single order with its lines and products
func (r *gormRepository) GetByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// ListByUser lists a user's orders, newest order date first
func (r *gormRepository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List lists orders across all users with optional filters
func (r *gormRepository) List(ctx context.Context, filter *ListFilter) ([]Order, int64, error) {
	if filter == nil {
		filter = &ListFilter{}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&Order{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerEmail != "" {
		query = query.Where(
			"user_id IN (SELECT id FROM users WHERE email ILIKE ?)",
			"%"+filter.CustomerEmail+"%",
		)
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}
	if filter.MinTotal != nil {
		query = query.Where("total_amount >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		query = query.Where("total_amount <= ?", *filter.MaxTotal)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Details").
		Preload("Details.Product").
		Preload("User").
		Order("order_date DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// FindWithDetails loads the orders that exist among the given IDs
func (r *gormRepository) FindWithDetails(ctx context.Context, ids []uint) ([]Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("id IN ?", ids).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// MoveToArchive copies orders into the archive tables and deletes the
// originals in one transaction. Either all given orders move or none do.
func (r *gormRepository) MoveToArchive(ctx context.Context, orders []Order, archivedAt time.Time) error {
	if len(orders) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	for i := range orders {
		archived := NewArchivedOrder(&orders[i], archivedAt)

		if err := tx.Create(&archived).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to archive order %d: %w", orders[i].ID, err)
		}

		if err := tx.Where("order_id = ?", orders[i].ID).Delete(&OrderDetail{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete order details for order %d: %w", orders[i].ID, err)
		}

		if err := tx.Delete(&Order{}, orders[i].ID).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete order %d: %w", orders[i].ID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit archive: %w", err)
	}
	return nil
}

// ListArchived lists archived orders, newest archive date first
func (r *gormRepository) ListArchived(ctx context.Context) ([]ArchivedOrder, error) {
	var archived []ArchivedOrder
	err := r.db.WithContext(ctx).
		Preload("Details").
		Order("archived_date DESC").
		Find(&archived).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list archived orders: %w", err)
	}
	return archived, nil
}
