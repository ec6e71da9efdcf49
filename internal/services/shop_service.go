package services

import (
	"context"

	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/user"
	"ecosync-hub/internal/repository"
	ecosync_errors "ecosync-hub/pkg/errors"
)

type ShopService struct {
	repo repository.ShopRepository
}

func NewShopService(repo repository.ShopRepository) *ShopService {
	return &ShopService{repo: repo}
}

type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	CO2ReductionKg float64
	ImageURL       string
}

// Catalog lists approved products only; pending listings stay invisible
// until an admin approves them.
func (s *ShopService) Catalog(ctx context.Context) ([]shop.Product, error) {
	return s.repo.ListProductsByStatus(ctx, shop.StatusApproved)
}

func (s *ShopService) GetProduct(ctx context.Context, id uint) (shop.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return shop.Product{}, err
	}
	if p.Status != shop.StatusApproved {
		return shop.Product{}, ecosync_errors.ErrNotFound
	}
	return p, nil
}

func (s *ShopService) CreateProduct(ctx context.Context, caller Identity, in CreateProductInput) (uint, error) {
	if caller.Role != user.RoleSeller && caller.Role != user.RoleAdmin {
		return 0, ecosync_errors.ErrForbidden
	}
	if in.Name == "" || in.Price <= 0 {
		return 0, ecosync_errors.ErrInvalidInput
	}

	p := shop.Product{
		SellerID:       caller.ID,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		CO2ReductionKg: in.CO2ReductionKg,
		ImageURL:       in.ImageURL,
		Status:         shop.StatusPending,
	}
	if err := s.repo.CreateProduct(ctx, &p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *ShopService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (uint, error) {
	if productID == 0 {
		return 0, ecosync_errors.ErrInvalidInput
	}
	if quantity <= 0 {
		quantity = 1
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return 0, err
	}

	item := shop.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.AddCartItem(ctx, &item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (s *ShopService) Cart(ctx context.Context, userID uint) ([]shop.CartItem, error) {
	return s.repo.ListCart(ctx, userID)
}

func (s *ShopService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	return s.repo.RemoveCartItem(ctx, itemID, userID)
}

func (s *ShopService) AddToWishlist(ctx context.Context, userID, productID uint) (uint, error) {
	if productID == 0 {
		return 0, ecosync_errors.ErrInvalidInput
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return 0, err
	}

	item := shop.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.repo.AddWishlistItem(ctx, &item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (s *ShopService) Wishlist(ctx context.Context, userID uint) ([]shop.WishlistItem, error) {
	return s.repo.ListWishlist(ctx, userID)
}

func (s *ShopService) RemoveFromWishlist(ctx context.Context, userID, itemID uint) error {
	return s.repo.RemoveWishlistItem(ctx, itemID, userID)
}

// Checkout turns the user's cart into a pending order. Prices and CO2 values
// are copied from the product rows at this moment, then the cart is emptied.
func (s *ShopService) Checkout(ctx context.Context, userID uint) (shop.Order, error) {
	items, err := s.repo.ListCart(ctx, userID)
	if err != nil {
		return shop.Order{}, err
	}
	if len(items) == 0 {
		return shop.Order{}, ecosync_errors.ErrInvalidInput
	}

	var total float64
	orderItems := make([]shop.OrderItem, 0, len(items))
	for _, item := range items {
		p, err := s.repo.GetProduct(ctx, item.ProductID)
		if err != nil {
			return shop.Order{}, err
		}
		total += p.Price * float64(item.Quantity)
		orderItems = append(orderItems, shop.OrderItem{
			ProductID:      p.ID,
			Quantity:       item.Quantity,
			Price:          p.Price,
			CO2ReductionKg: p.CO2ReductionKg,
		})
	}

	order := shop.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      shop.OrderPending,
	}
	if err := s.repo.CreateOrder(ctx, &order, orderItems); err != nil {
		return shop.Order{}, err
	}
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return shop.Order{}, err
	}
	return order, nil
}
