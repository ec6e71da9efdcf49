package shop

import "time"

// Order represents the orders table.
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_orders_user" json:"user_id"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	Status      string    `gorm:"type:text;not null;default:'pending'" json:"status"` // pending, paid
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// OrderItem represents the order_items table. CO2ReductionKg is denormalized
// from the product at order time so later catalog edits don't change the
// carbon credit of a past purchase.
type OrderItem struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	OrderID        uint    `gorm:"not null;index:idx_order_items_order" json:"order_id"`
	ProductID      uint    `gorm:"not null" json:"product_id"`
	Quantity       int     `gorm:"not null;default:1" json:"quantity"`
	Price          float64 `gorm:"not null" json:"price"`
	CO2ReductionKg float64 `gorm:"not null;default:0" json:"co2_reduction_kg"`
}

const (
	OrderPending = "pending"
	OrderPaid    = "paid"
)
