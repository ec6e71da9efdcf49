package services

import (
	"context"
	"time"

	"ecosync-hub/internal/domain/notification"
	"ecosync-hub/internal/repository"
	"ecosync-hub/pkg/logger"
)

// NotificationService persists and fans out notifications for domain events.
type NotificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
	logger *logger.Logger
}

func NewNotificationService(repo repository.NotificationRepository, pusher Pusher, l *logger.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		pusher: pusher,
		logger: l,
	}
}

type NotifyInput struct {
	UserID        uint
	Title         string
	Message       string
	Type          string
	ReferenceID   uint
	ReferenceType string
}

// Notify runs inline at the tail of business transactions (seller approval,
// friend request, payment confirm, ...). It never fails the caller: the
// parent write has already committed, so both the insert and the push are
// fire-and-forget here and failures are only logged.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) {
	n := notification.Notification{
		UserID:        in.UserID,
		Title:         in.Title,
		Message:       in.Message,
		Type:          in.Type,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		IsRead:        false,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		s.logger.Errorf("notification insert failed for user %d: %s", in.UserID, err.Error())
		return
	}

	if s.pusher != nil {
		s.pusher.Push(n.UserID, "new_notification", n)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]notification.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
