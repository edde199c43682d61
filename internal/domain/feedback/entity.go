// internal/domain/feedback/entity.go
package feedback

import (
	"time"

	"gorm.io/gorm"
)

// Feedback status values. New submissions start as StatusNew and are
// marked StatusRead automatically the first time staff opens them.
const (
	StatusNew        = "New"
	StatusRead       = "Read"
	StatusProcessing = "Processing"
	StatusClosed     = "Closed"
)

// Feedback represents a customer feedback submission
type Feedback struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Email     string         `gorm:"not null;size:255" json:"email"`
	Subject   string         `gorm:"size:255" json:"subject"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Status    string         `gorm:"not null;size:20;default:'New';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Feedback
func (Feedback) TableName() string {
	return "feedbacks"
}

// ValidStatus reports whether s is one of the known feedback statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusProcessing, StatusClosed:
		return true
	}
	return false
}
