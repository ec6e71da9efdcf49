package user

import "time"

// User represents the users table
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"type:text;not null;uniqueIndex:idx_users_username" json:"username"`
	Email         string    `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash  string    `gorm:"type:text;not null" json:"-"`
	FirstName     string    `gorm:"type:text" json:"first_name,omitempty"`
	LastName      string    `gorm:"type:text" json:"last_name,omitempty"`
	Role          string    `gorm:"type:text;not null;default:'user'" json:"role"` // user, seller, admin
	Bio           string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL     string    `gorm:"type:text" json:"avatar_url,omitempty"`
	EcoPoints     int       `gorm:"not null;default:0" json:"eco_points"`
	CarbonSavedKg float64   `gorm:"not null;default:0" json:"carbon_saved_kg"`
	TreesPlanted  int       `gorm:"not null;default:0" json:"trees_planted"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// PublicProfile is the subset of User exposed on leaderboards and search.
type PublicProfile struct {
	ID            uint    `json:"id"`
	Username      string  `json:"username"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	CarbonSavedKg float64 `json:"carbon_saved_kg"`
	Role          string  `json:"role"`
}
