// internal/domain/feedback/service.go
package feedback

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Moderation lists show this many entries per page
const pageSize = 10

var (
	// ErrNotFound is returned when a feedback entry does not exist
	ErrNotFound = errors.New("feedback not found")
	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("invalid feedback status")
)

// Service handles feedback business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new feedback service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitRequest represents a public feedback submission
type SubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Content string `json:"content" binding:"required"`
}

// ListResponse represents a page of feedback entries
type ListResponse struct {
	Feedbacks []Feedback `json:"feedbacks"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// Submit records a new feedback entry
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Feedback, error) {
	f := Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Content: req.Content,
		Status:  StatusNew,
	}

	if err := s.db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &f, nil
}

// List returns a page of feedback entries, newest first, optionally
// filtered by status
func (s *Service) List(ctx context.Context, page int, status string) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	query := s.db.WithContext(ctx).Model(&Feedback{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	var feedbacks []Feedback
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	return &ListResponse{
		Feedbacks: feedbacks,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Get loads a feedback entry. Opening a new entry marks it as read.
func (s *Service) Get(ctx context.Context, id uint) (*Feedback, error) {
	var f Feedback
	err := s.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	if f.Status == StatusNew {
		if err := s.db.WithContext(ctx).Model(&f).Update("status", StatusRead).Error; err != nil {
			return nil, fmt.Errorf("failed to mark feedback as read: %w", err)
		}
		f.Status = StatusRead
	}

	return &f, nil
}

// UpdateStatus moves a feedback entry to a new status
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*Feedback, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var f Feedback
	err := s.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&f).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update feedback status: %w", err)
	}
	f.Status = status

	return &f, nil
}

// Delete soft-deletes a feedback entry; it disappears from listings but
// stays in the table
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Feedback{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
