package repository

import (
	"context"
	"errors"

	"ecosync-hub/internal/domain/social"
	ecosync_errors "ecosync-hub/pkg/errors"

	"gorm.io/gorm"
)

type PostgresFriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &PostgresFriendRepository{db: db}
}

func (r *PostgresFriendRepository) Create(ctx context.Context, f *social.Friend) error {
	res := r.db.WithContext(ctx).Create(f)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ecosync_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresFriendRepository) GetByID(ctx context.Context, id uint) (social.Friend, error) {
	var f social.Friend
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return social.Friend{}, ecosync_errors.ErrNotFound
		}
		return social.Friend{}, err
	}
	return f, nil
}

func (r *PostgresFriendRepository) GetPair(ctx context.Context, userID1, userID2 uint) (social.Friend, error) {
	var f social.Friend
	err := r.db.WithContext(ctx).
		Where("user_id_1 = ? AND user_id_2 = ?", userID1, userID2).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return social.Friend{}, ecosync_errors.ErrNotFound
		}
		return social.Friend{}, err
	}
	return f, nil
}

func (r *PostgresFriendRepository) Accept(ctx context.Context, id, actionUserID uint) error {
	res := r.db.WithContext(ctx).
		Model(&social.Friend{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         social.StatusAccepted,
			"action_user_id": actionUserID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresFriendRepository) ListFriends(ctx context.Context, userID uint) ([]social.FriendEntry, error) {
	var friends []social.FriendEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.avatar_url, f.status, f.created_at
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id_1 = @uid THEN f.user_id_2 ELSE f.user_id_1 END
		WHERE (f.user_id_1 = @uid OR f.user_id_2 = @uid) AND f.status = 'accepted'`,
		map[string]interface{}{"uid": userID},
	).Scan(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *PostgresFriendRepository) ListPendingRequests(ctx context.Context, userID uint) ([]social.FriendRequest, error) {
	var requests []social.FriendRequest
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.avatar_url, f.id AS request_id, f.created_at
		FROM friends f
		JOIN users u ON u.id = f.action_user_id
		WHERE (f.user_id_1 = @uid OR f.user_id_2 = @uid)
			AND f.action_user_id != @uid AND f.status = 'pending'`,
		map[string]interface{}{"uid": userID},
	).Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
