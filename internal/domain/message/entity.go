package message

import "time"

// Message represents the messages table: a directed edge between two users.
// is_read only ever flips false -> true.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_sender" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_receiver" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ThreadMessage is a message joined with its sender's username, as returned
// by the thread listing.
type ThreadMessage struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	ReceiverID     uint      `json:"receiver_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	SenderUsername string    `json:"sender_username"`
}

// ConversationSummary is the latest message exchanged with one peer. A
// conversation is derived, never stored: the unordered pair of the two users.
type ConversationSummary struct {
	OtherUserID         uint      `json:"other_user_id"`
	Username            string    `json:"username"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	LastMessageSenderID uint      `json:"last_message_sender_id"`
	LastMessage         string    `json:"last_message"`
	LastMessageTime     time.Time `json:"last_message_time"`
	IsRead              bool      `json:"is_read"`
}
