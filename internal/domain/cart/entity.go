// internal/domain/cart/entity.go
package cart

import "time"

// Cart represents a session-scoped shopping cart stored in Redis
type Cart struct {
	SessionID string    `json:"session_id"`
	UserID    *uint     `json:"user_id,omitempty"` // Set once the session authenticates
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item represents a cart line. Price is snapshotted at the time the
// product is first added, so later catalog price changes do not affect
// carts already holding the item.
type Item struct {
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       int64     `json:"price"` // Unit price in cents at add time
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note"`
	AddedAt     time.Time `json:"added_at"`
}

// Find returns the line for a product, or nil if the product is not in
// the cart
func (c *Cart) Find(productID uint) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Remove deletes the lines for the given product IDs and returns how
// many lines were removed. IDs not present in the cart are ignored.
func (c *Cart) Remove(productIDs []uint) int {
	drop := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		drop[id] = true
	}

	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if drop[item.ProductID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// Clear removes all lines from the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalAmount returns the cart total in cents, summing unit price times
// quantity over all lines
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// TotalQuantity returns the total number of units across all lines
func (c *Cart) TotalQuantity() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
