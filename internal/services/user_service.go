package services

import (
	"context"

	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/repository"
	ecosync_errors "ecosync-hub/pkg/errors"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, id uint) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds users by username prefix for the new-conversation picker.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]user.PublicProfile, error) {
	if query == "" {
		return nil, ecosync_errors.ErrInvalidInput
	}
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	return s.repo.Search(ctx, query, limit)
}
