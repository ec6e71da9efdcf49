package notification

import "time"

// Notification represents the notifications table. Rows are only ever
// created by server-side domain logic, never directly by a client.
// Type is an open enum (info, success, friend, challenge, order, ...) used
// for client-side icon selection; the server does not validate it.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_notifications_user" json:"user_id"`
	Title         string    `gorm:"type:text;not null" json:"title"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Type          string    `gorm:"type:text;not null;default:'info'" json:"type"`
	ReferenceID   uint      `gorm:"default:0" json:"reference_id,omitempty"`
	ReferenceType string    `gorm:"type:text" json:"reference_type,omitempty"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
