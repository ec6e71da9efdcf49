package services

import (
	"context"
	"time"

	"ecosync-hub/internal/domain/message"
	"ecosync-hub/internal/repository"
	ecosync_errors "ecosync-hub/pkg/errors"
	"ecosync-hub/pkg/logger"
)

// MessageService is the single delivery path for direct messages. The REST
// handler and the realtime event handler both call Send; there are no
// transport-specific business rules.
type MessageService struct {
	repo    repository.MessageRepository
	pusher  Pusher
	limiter MessageLimiter
	logger  *logger.Logger
}

func NewMessageService(repo repository.MessageRepository, pusher Pusher, limiter MessageLimiter, l *logger.Logger) *MessageService {
	return &MessageService{
		repo:    repo,
		pusher:  pusher,
		limiter: limiter,
		logger:  l,
	}
}

// Send persists the message and pushes a new_message event to the receiver's
// room. The push is best-effort: an offline receiver just misses the event
// and picks the message up over REST. A persistence error is returned to the
// caller; there are no retries and no dedup, so a client retry after a
// timeout can create a duplicate row.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (message.Message, error) {
	if receiverID == 0 || content == "" {
		return message.Message{}, ecosync_errors.ErrInvalidInput
	}

	if s.limiter != nil {
		allowed, err := s.limiter.AllowMessage(ctx, senderID)
		if err != nil {
			// Limiter outage must not block messaging.
			s.logger.Warnf("message limiter unavailable: %s", err.Error())
		} else if !allowed {
			return message.Message{}, ecosync_errors.ErrRateLimited
		}
	}

	msg := message.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}

	if s.pusher != nil {
		s.pusher.Push(receiverID, "new_message", msg)
	}
	return msg, nil
}

func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]message.ConversationSummary, error) {
	return s.repo.ListConversations(ctx, userID)
}

func (s *MessageService) Thread(ctx context.Context, userID, peerID uint) ([]message.ThreadMessage, error) {
	if peerID == 0 {
		return nil, ecosync_errors.ErrInvalidInput
	}
	return s.repo.ListThread(ctx, userID, peerID)
}

// MarkConversationRead flips every unread message from peerID to the reader.
// Idempotent; a second call flips nothing.
func (s *MessageService) MarkConversationRead(ctx context.Context, readerID, peerID uint) error {
	if peerID == 0 {
		return ecosync_errors.ErrInvalidInput
	}
	_, err := s.repo.MarkConversationRead(ctx, readerID, peerID)
	return err
}

// MarkMessageRead is the narrow variant keyed by one message id, scoped to
// messages the reader received.
func (s *MessageService) MarkMessageRead(ctx context.Context, readerID, messageID uint) error {
	if messageID == 0 {
		return ecosync_errors.ErrInvalidInput
	}
	return s.repo.MarkMessageRead(ctx, readerID, messageID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// Delete removes a message when the caller is a party to it. A foreign or
// missing id yields the same ErrNotFound; callers cannot distinguish the two.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uint) error {
	return s.repo.Delete(ctx, messageID, userID)
}
