package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecosync-hub/internal/domain/challenge"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/repository"
	ecosync_errors "ecosync-hub/pkg/errors"
)

type ChallengeService struct {
	challenges    repository.ChallengeRepository
	users         repository.UserRepository
	notifications *NotificationService
}

func NewChallengeService(challenges repository.ChallengeRepository, users repository.UserRepository, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{
		challenges:    challenges,
		users:         users,
		notifications: notifications,
	}
}

func (s *ChallengeService) List(ctx context.Context) ([]challenge.Challenge, error) {
	return s.challenges.List(ctx)
}

func (s *ChallengeService) Join(ctx context.Context, userID, challengeID uint) (uint, error) {
	ch, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return 0, err
	}

	if _, err := s.challenges.GetUserChallenge(ctx, userID, challengeID); err == nil {
		return 0, ecosync_errors.ErrAlreadyExists
	} else if !errors.Is(err, ecosync_errors.ErrNotFound) {
		return 0, err
	}

	uc := challenge.UserChallenge{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      challenge.StatusJoined,
	}
	if err := s.challenges.Join(ctx, &uc); err != nil {
		return 0, err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        userID,
		Title:         "Challenge Joined",
		Message:       fmt.Sprintf("You joined the challenge: %s", ch.Title),
		Type:          "challenge",
		ReferenceID:   challengeID,
		ReferenceType: "challenge",
	})
	return uc.ID, nil
}

// Complete marks a joined challenge done and credits the reward. Only the
// participant or an admin may complete it. Tree-planting challenges are
// detected by title and also bump the trees counter.
func (s *ChallengeService) Complete(ctx context.Context, caller Identity, userID, challengeID uint) error {
	if caller.ID != userID && caller.Role != user.RoleAdmin {
		return ecosync_errors.ErrForbidden
	}

	uc, err := s.challenges.GetUserChallenge(ctx, userID, challengeID)
	if err != nil {
		return err
	}
	if uc.Status == challenge.StatusCompleted {
		return ecosync_errors.ErrAlreadyExists
	}

	ch, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return err
	}

	if err := s.challenges.Complete(ctx, uc.ID); err != nil {
		return err
	}

	trees := 0
	if strings.Contains(strings.ToLower(ch.Title), "tree") {
		trees = 1
	}
	if err := s.users.CreditCarbon(ctx, userID, ch.PointsReward, ch.CO2SavingKg, trees); err != nil {
		return err
	}
	if err := s.challenges.CreateCarbonLog(ctx, &challenge.CarbonLog{
		UserID:   userID,
		AmountKg: ch.CO2SavingKg,
		Source:   fmt.Sprintf("Completed: %s", ch.Title),
	}); err != nil {
		return err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        userID,
		Title:         "Challenge Completed!",
		Message:       fmt.Sprintf("You earned %d eco points for completing %s", ch.PointsReward, ch.Title),
		Type:          "challenge",
		ReferenceID:   challengeID,
		ReferenceType: "challenge",
	})
	return nil
}
