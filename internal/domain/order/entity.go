// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
)

// Order status values
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Order represents a placed order
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	OrderDate   time.Time `gorm:"not null;index" json:"order_date"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"` // In cents
	Status      string    `gorm:"not null;size:50;default:'Pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	User    user.User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`
	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"details"`
}

// OrderDetail represents a line of a placed order
type OrderDetail struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderID   uint   `gorm:"not null;index" json:"order_id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"` // Unit price in cents at purchase time
	Note      string `gorm:"size:500" json:"note"`

	// Relationships
	Product catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// ArchivedOrder is a completed order moved out of the live tables.
// SourceOrderID keeps the original order ID; the archived row gets its
// own primary key.
type ArchivedOrder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SourceOrderID uint      `gorm:"not null;index" json:"source_order_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	OrderDate     time.Time `gorm:"not null" json:"order_date"`
	TotalAmount   int64     `gorm:"not null" json:"total_amount"`
	Status        string    `gorm:"not null;size:50" json:"status"`
	ArchivedDate  time.Time `gorm:"not null" json:"archived_date"`

	// Relationships
	Details []ArchivedOrderDetail `gorm:"foreignKey:ArchivedOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"details"`
}

// ArchivedOrderDetail is a line of an archived order
type ArchivedOrderDetail struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ArchivedOrderID uint   `gorm:"not null;index" json:"archived_order_id"`
	ProductID       uint   `gorm:"not null;index" json:"product_id"`
	Quantity        int    `gorm:"not null" json:"quantity"`
	Price           int64  `gorm:"not null" json:"price"`
	Note            string `gorm:"size:500" json:"note"`
}

// NewArchivedOrder builds the archive copy of an order. Every field of
// the order and its lines carries over; the archive timestamp records
// when the move happened.
func NewArchivedOrder(o *Order, archivedAt time.Time) ArchivedOrder {
	archived := ArchivedOrder{
		SourceOrderID: o.ID,
		UserID:        o.UserID,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		ArchivedDate:  archivedAt,
		Details:       make([]ArchivedOrderDetail, 0, len(o.Details)),
	}

	for _, d := range o.Details {
		archived.Details = append(archived.Details, ArchivedOrderDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Price:     d.Price,
			Note:      d.Note,
		})
	}

	return archived
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderDetail
func (OrderDetail) TableName() string {
	return "order_details"
}

// TableName overrides the table name for ArchivedOrder
func (ArchivedOrder) TableName() string {
	return "archived_orders"
}

// TableName overrides the table name for ArchivedOrderDetail
func (ArchivedOrderDetail) TableName() string {
	return "archived_order_details"
}
