// internal/domain/order/service.go
package order

import (
	"context"

	"github.com/your-org/coffeeshop-backend/internal/domain/user"
)

// UserLookup resolves whether a user account exists
type UserLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service handles order reading business logic
type Service struct {
	repo  Repository
	users UserLookup
}

// NewService creates a new order service
func NewService(repo Repository, users UserLookup) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

// History returns a user's orders with their lines and products, most
// recent order date first
func (s *Service) History(ctx context.Context, userID uint) ([]Order, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, user.ErrNotFound
	}

	return s.repo.ListByUser(ctx, userID)
}

// Get loads a single order. Non-admin callers only see their own
// orders; a foreign order reads as not found rather than forbidden.
func (s *Service) Get(ctx context.Context, id, userID uint, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrNotFound
	}

	return o, nil
}

// List lists orders across all users with optional filters. Admin only.
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]Order, int64, error) {
	return s.repo.List(ctx, filter)
}
