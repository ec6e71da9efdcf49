package repository

import (
	"context"

	"ecosync-hub/internal/domain/challenge"
	"ecosync-hub/internal/domain/message"
	"ecosync-hub/internal/domain/notification"
	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/social"
	"ecosync-hub/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uint) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Search(ctx context.Context, usernameLike string, limit int) ([]user.PublicProfile, error)
	UpdateRole(ctx context.Context, id uint, fromRole, toRole string) error
	CreditCarbon(ctx context.Context, id uint, points int, carbonKg float64, trees int) error
	TopByCarbon(ctx context.Context, limit int) ([]user.PublicProfile, error)
	CountUsers(ctx context.Context) (int64, error)
	TotalCarbonSaved(ctx context.Context) (float64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	ListConversations(ctx context.Context, userID uint) ([]message.ConversationSummary, error)
	ListThread(ctx context.Context, userID, peerID uint) ([]message.ThreadMessage, error)
	// MarkConversationRead flips is_read on all unread messages sent by
	// peerID to readerID. Idempotent; returns the number of rows flipped.
	MarkConversationRead(ctx context.Context, readerID, peerID uint) (int64, error)
	// MarkMessageRead is the narrow single-row variant, scoped to messages
	// the reader received. Flipping an already-read row is a no-op.
	MarkMessageRead(ctx context.Context, readerID, messageID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// Delete removes a message if userID is its sender or receiver;
	// ErrNotFound otherwise, whether the row is missing or foreign.
	Delete(ctx context.Context, id, userID uint) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	ListForUser(ctx context.Context, userID uint) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	Delete(ctx context.Context, id, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type FriendRepository interface {
	Create(ctx context.Context, f *social.Friend) error
	GetByID(ctx context.Context, id uint) (social.Friend, error)
	GetPair(ctx context.Context, userID1, userID2 uint) (social.Friend, error)
	Accept(ctx context.Context, id, actionUserID uint) error
	ListFriends(ctx context.Context, userID uint) ([]social.FriendEntry, error)
	ListPendingRequests(ctx context.Context, userID uint) ([]social.FriendRequest, error)
}

type ShopRepository interface {
	CreateProduct(ctx context.Context, p *shop.Product) error
	GetProduct(ctx context.Context, id uint) (shop.Product, error)
	ListProductsByStatus(ctx context.Context, status string) ([]shop.Product, error)
	ApproveProduct(ctx context.Context, id uint) error
	CountProductsByStatus(ctx context.Context, status string) (int64, error)

	AddCartItem(ctx context.Context, item *shop.CartItem) error
	ListCart(ctx context.Context, userID uint) ([]shop.CartItem, error)
	RemoveCartItem(ctx context.Context, id, userID uint) error
	ClearCart(ctx context.Context, userID uint) error
	CountCart(ctx context.Context, userID uint) (int64, error)

	AddWishlistItem(ctx context.Context, item *shop.WishlistItem) error
	ListWishlist(ctx context.Context, userID uint) ([]shop.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, id, userID uint) error
	CountWishlist(ctx context.Context, userID uint) (int64, error)

	CreateOrder(ctx context.Context, o *shop.Order, items []shop.OrderItem) error
	GetOrder(ctx context.Context, id, userID uint) (shop.Order, error)
	// SettleOrder marks a pending order paid, credits the buyer's saved CO2
	// from the order items and writes the matching carbon log row, all in
	// one transaction. Returns the credited kilograms. An already-paid or
	// foreign order is ErrNotFound and nothing is written.
	SettleOrder(ctx context.Context, orderID, userID uint) (float64, error)
	CountOrders(ctx context.Context) (int64, error)
}

type ChallengeRepository interface {
	List(ctx context.Context) ([]challenge.Challenge, error)
	GetByID(ctx context.Context, id uint) (challenge.Challenge, error)
	GetUserChallenge(ctx context.Context, userID, challengeID uint) (challenge.UserChallenge, error)
	Join(ctx context.Context, uc *challenge.UserChallenge) error
	Complete(ctx context.Context, userChallengeID uint) error
	CreateCarbonLog(ctx context.Context, l *challenge.CarbonLog) error
}
