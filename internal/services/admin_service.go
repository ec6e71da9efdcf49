package services

import (
	"context"
	"fmt"

	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/repository"
)

// AdminService covers the approval queues. Route-level role checks gate
// access; these methods assume the caller is already an admin.
type AdminService struct {
	users         repository.UserRepository
	shop          repository.ShopRepository
	notifications *NotificationService
}

func NewAdminService(users repository.UserRepository, shopRepo repository.ShopRepository, notifications *NotificationService) *AdminService {
	return &AdminService{
		users:         users,
		shop:          shopRepo,
		notifications: notifications,
	}
}

// ApproveSeller promotes a regular user to seller. The conditional update
// makes it idempotent-hostile on purpose: approving a user who is already a
// seller (or an admin) is ErrNotFound.
func (s *AdminService) ApproveSeller(ctx context.Context, userID uint) error {
	if err := s.users.UpdateRole(ctx, userID, user.RoleUser, user.RoleSeller); err != nil {
		return err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        userID,
		Title:         "Seller Account Approved",
		Message:       "Your seller account has been approved. You can now list products.",
		Type:          "approval",
		ReferenceID:   userID,
		ReferenceType: "seller_approval",
	})
	return nil
}

func (s *AdminService) PendingProducts(ctx context.Context) ([]shop.Product, error) {
	return s.shop.ListProductsByStatus(ctx, shop.StatusPending)
}

func (s *AdminService) ApproveProduct(ctx context.Context, productID uint) error {
	p, err := s.shop.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.shop.ApproveProduct(ctx, productID); err != nil {
		return err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        p.SellerID,
		Title:         "Product Approved",
		Message:       fmt.Sprintf("Your product %q is now live in the catalog", p.Name),
		Type:          "approval",
		ReferenceID:   p.ID,
		ReferenceType: "product_approval",
	})
	return nil
}
