package services

import (
	"context"
	"errors"
	"fmt"

	"ecosync-hub/internal/domain/social"
	"ecosync-hub/internal/repository"
	ecosync_errors "ecosync-hub/pkg/errors"
)

type FriendService struct {
	friends       repository.FriendRepository
	users         repository.UserRepository
	notifications *NotificationService
}

func NewFriendService(friends repository.FriendRepository, users repository.UserRepository, notifications *NotificationService) *FriendService {
	return &FriendService{
		friends:       friends,
		users:         users,
		notifications: notifications,
	}
}

// Request creates a pending friendship row for the ordered pair. The pair is
// stored sorted so A->B and B->A collide on the same unique index; a second
// request in either direction is ErrAlreadyExists.
func (s *FriendService) Request(ctx context.Context, requesterID, targetID uint) (uint, error) {
	if targetID == 0 || targetID == requesterID {
		return 0, ecosync_errors.ErrInvalidInput
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return 0, err
	}
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return 0, err
	}

	a, b := requesterID, targetID
	if a > b {
		a, b = b, a
	}
	if _, err := s.friends.GetPair(ctx, a, b); err == nil {
		return 0, ecosync_errors.ErrAlreadyExists
	} else if !errors.Is(err, ecosync_errors.ErrNotFound) {
		return 0, err
	}

	f := social.Friend{
		UserID1:      a,
		UserID2:      b,
		Status:       social.StatusPending,
		ActionUserID: requesterID,
	}
	if err := s.friends.Create(ctx, &f); err != nil {
		return 0, err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        target.ID,
		Title:         "New Friend Request",
		Message:       fmt.Sprintf("%s sent you a friend request", requester.Username),
		Type:          "friend",
		ReferenceID:   requesterID,
		ReferenceType: "friend_request",
	})
	return f.ID, nil
}

// Accept flips a pending request to accepted. Only the user who did NOT send
// the request may accept it; the requester accepting their own request is
// invalid input, and a third party is forbidden.
func (s *FriendService) Accept(ctx context.Context, callerID, requestID uint) error {
	f, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if callerID != f.UserID1 && callerID != f.UserID2 {
		return ecosync_errors.ErrForbidden
	}
	if callerID == f.ActionUserID {
		return ecosync_errors.ErrInvalidInput
	}
	if f.Status != social.StatusPending {
		return ecosync_errors.ErrAlreadyExists
	}

	if err := s.friends.Accept(ctx, requestID, callerID); err != nil {
		return err
	}

	accepter, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	s.notifications.Notify(ctx, NotifyInput{
		UserID:        f.ActionUserID,
		Title:         "Friend Request Accepted",
		Message:       fmt.Sprintf("%s accepted your friend request", accepter.Username),
		Type:          "friend",
		ReferenceID:   callerID,
		ReferenceType: "friend_acceptance",
	})
	return nil
}

func (s *FriendService) Friends(ctx context.Context, userID uint) ([]social.FriendEntry, error) {
	return s.friends.ListFriends(ctx, userID)
}

func (s *FriendService) PendingRequests(ctx context.Context, userID uint) ([]social.FriendRequest, error) {
	return s.friends.ListPendingRequests(ctx, userID)
}
