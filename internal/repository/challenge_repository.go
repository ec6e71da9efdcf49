package repository

import (
	"context"
	"errors"
	"time"

	"ecosync-hub/internal/domain/challenge"
	ecosync_errors "ecosync-hub/pkg/errors"

	"gorm.io/gorm"
)

type PostgresChallengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &PostgresChallengeRepository{db: db}
}

func (r *PostgresChallengeRepository) List(ctx context.Context) ([]challenge.Challenge, error) {
	var challenges []challenge.Challenge
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *PostgresChallengeRepository) GetByID(ctx context.Context, id uint) (challenge.Challenge, error) {
	var c challenge.Challenge
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return challenge.Challenge{}, ecosync_errors.ErrNotFound
		}
		return challenge.Challenge{}, err
	}
	return c, nil
}

func (r *PostgresChallengeRepository) GetUserChallenge(ctx context.Context, userID, challengeID uint) (challenge.UserChallenge, error) {
	var uc challenge.UserChallenge
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&uc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return challenge.UserChallenge{}, ecosync_errors.ErrNotFound
		}
		return challenge.UserChallenge{}, err
	}
	return uc, nil
}

func (r *PostgresChallengeRepository) Join(ctx context.Context, uc *challenge.UserChallenge) error {
	res := r.db.WithContext(ctx).Create(uc)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ecosync_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresChallengeRepository) Complete(ctx context.Context, userChallengeID uint) error {
	res := r.db.WithContext(ctx).
		Model(&challenge.UserChallenge{}).
		Where("id = ? AND status = ?", userChallengeID, challenge.StatusJoined).
		Updates(map[string]interface{}{
			"status":       challenge.StatusCompleted,
			"completed_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresChallengeRepository) CreateCarbonLog(ctx context.Context, l *challenge.CarbonLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}
