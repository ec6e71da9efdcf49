package repository

import (
	"context"
	"errors"

	"ecosync-hub/internal/domain/user"
	ecosync_errors "ecosync-hub/pkg/errors"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ecosync_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uint) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ecosync_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ecosync_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) Search(ctx context.Context, usernameLike string, limit int) ([]user.PublicProfile, error) {
	var profiles []user.PublicProfile
	q := r.db.WithContext(ctx).Model(&user.User{})
	if usernameLike != "" {
		q = q.Where("username ILIKE ?", "%"+usernameLike+"%")
	}
	err := q.Limit(limit).
		Select("id", "username", "avatar_url", "carbon_saved_kg", "role").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id uint, fromRole, toRole string) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ? AND role = ?", id, fromRole).
		Update("role", toRole)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) CreditCarbon(ctx context.Context, id uint, points int, carbonKg float64, trees int) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"eco_points":      gorm.Expr("eco_points + ?", points),
			"carbon_saved_kg": gorm.Expr("carbon_saved_kg + ?", carbonKg),
			"trees_planted":   gorm.Expr("trees_planted + ?", trees),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) TopByCarbon(ctx context.Context, limit int) ([]user.PublicProfile, error) {
	var profiles []user.PublicProfile
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Select("id", "username", "avatar_url", "carbon_saved_kg", "role").
		Order("carbon_saved_kg DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *PostgresUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresUserRepository) TotalCarbonSaved(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Select("COALESCE(SUM(carbon_saved_kg), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
