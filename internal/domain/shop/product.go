package shop

import "time"

// Product represents the products table. New products start as pending and
// become visible in the catalog once an admin approves them.
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SellerID       uint      `gorm:"not null;index:idx_products_seller" json:"seller_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Price          float64   `gorm:"not null" json:"price"`
	CO2ReductionKg float64   `gorm:"not null;default:0" json:"co2_reduction_kg"`
	ImageURL       string    `gorm:"type:text" json:"image_url,omitempty"`
	Status         string    `gorm:"type:text;not null;default:'pending';index:idx_products_status" json:"status"` // pending, approved
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)
