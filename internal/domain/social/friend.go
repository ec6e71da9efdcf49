package social

import "time"

// Friend represents the friends table. The pair is stored ordered
// (UserID1 < UserID2) so each relationship has exactly one row;
// ActionUserID is whoever performed the last state change.
type Friend struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID1      uint      `gorm:"not null;uniqueIndex:idx_friends_pair,priority:1" json:"user_id_1"`
	UserID2      uint      `gorm:"not null;uniqueIndex:idx_friends_pair,priority:2" json:"user_id_2"`
	Status       string    `gorm:"type:text;not null;default:'pending'" json:"status"` // pending, accepted
	ActionUserID uint      `gorm:"not null" json:"action_user_id"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// FriendEntry is a friend row joined with the other user's profile.
type FriendEntry struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequest is a pending row joined with the requester's profile.
type FriendRequest struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	RequestID uint      `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}
