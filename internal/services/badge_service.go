package services

import (
	"context"

	"ecosync-hub/internal/repository"
)

// BadgeCounts drives the client's badge row. The four values are independent
// reads with no shared snapshot; under concurrent writes they may be
// mutually inconsistent, which is acceptable for a poll-refreshed badge.
type BadgeCounts struct {
	Cart          int64 `json:"cart"`
	Wishlist      int64 `json:"wishlist"`
	Notifications int64 `json:"notifications"`
	Messages      int64 `json:"messages"`
}

type BadgeService struct {
	shop          repository.ShopRepository
	notifications repository.NotificationRepository
	messages      repository.MessageRepository
}

func NewBadgeService(shop repository.ShopRepository, notifications repository.NotificationRepository, messages repository.MessageRepository) *BadgeService {
	return &BadgeService{
		shop:          shop,
		notifications: notifications,
		messages:      messages,
	}
}

// Counts recomputes all four counters from the store. Nothing is cached, so
// a successful mark-read is always reflected by the next call.
func (s *BadgeService) Counts(ctx context.Context, userID uint) (BadgeCounts, error) {
	cart, err := s.shop.CountCart(ctx, userID)
	if err != nil {
		return BadgeCounts{}, err
	}
	wishlist, err := s.shop.CountWishlist(ctx, userID)
	if err != nil {
		return BadgeCounts{}, err
	}
	notifications, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return BadgeCounts{}, err
	}
	messages, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return BadgeCounts{}, err
	}

	return BadgeCounts{
		Cart:          cart,
		Wishlist:      wishlist,
		Notifications: notifications,
		Messages:      messages,
	}, nil
}
