package services

import "context"

// Pusher delivers an event to every live connection of a user. The hub
// satisfies this; services receive it at construction time and never reach
// for a global registry. A push to an offline user is a silent no-op.
type Pusher interface {
	Push(userID uint, event string, payload interface{})
}

// MessageLimiter caps how fast a user may send messages. A nil limiter
// means unlimited.
type MessageLimiter interface {
	AllowMessage(ctx context.Context, userID uint) (bool, error)
}
