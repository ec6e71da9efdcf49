package challenge

import "time"

// Challenge represents the challenges table.
type Challenge struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	PointsReward int       `gorm:"not null;default:0" json:"points_reward"`
	CO2SavingKg  float64   `gorm:"not null;default:0" json:"co2_saving_kg"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// UserChallenge represents the user_challenges table.
type UserChallenge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_challenges,priority:1" json:"user_id"`
	ChallengeID uint       `gorm:"not null;uniqueIndex:idx_user_challenges,priority:2" json:"challenge_id"`
	Status      string     `gorm:"type:text;not null;default:'joined'" json:"status"` // joined, completed
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// CarbonLog represents the carbon_logs table: an append-only record of
// every CO2 credit a user earns.
type CarbonLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_carbon_logs_user" json:"user_id"`
	AmountKg  float64   `gorm:"not null" json:"amount_kg"`
	Source    string    `gorm:"type:text" json:"source,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

const (
	StatusJoined    = "joined"
	StatusCompleted = "completed"
)
