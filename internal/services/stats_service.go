package services

import (
	"context"

	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/repository"
)

// PlatformStats is the public landing-page counter block.
type PlatformStats struct {
	Users            int64   `json:"users"`
	Products         int64   `json:"products"`
	Orders           int64   `json:"orders"`
	TotalCarbonSaved float64 `json:"total_carbon_saved"`
}

type StatsService struct {
	users repository.UserRepository
	shop  repository.ShopRepository
}

func NewStatsService(users repository.UserRepository, shopRepo repository.ShopRepository) *StatsService {
	return &StatsService{users: users, shop: shopRepo}
}

func (s *StatsService) Stats(ctx context.Context) (PlatformStats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	products, err := s.shop.CountProductsByStatus(ctx, shop.StatusApproved)
	if err != nil {
		return PlatformStats{}, err
	}
	orders, err := s.shop.CountOrders(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	carbon, err := s.users.TotalCarbonSaved(ctx)
	if err != nil {
		return PlatformStats{}, err
	}

	return PlatformStats{
		Users:            users,
		Products:         products,
		Orders:           orders,
		TotalCarbonSaved: carbon,
	}, nil
}

// Leaderboard returns the top carbon savers for the public widget.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]user.PublicProfile, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.users.TopByCarbon(ctx, limit)
}
