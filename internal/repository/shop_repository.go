package repository

import (
	"context"
	"errors"
	"fmt"

	"ecosync-hub/internal/domain/challenge"
	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/user"
	ecosync_errors "ecosync-hub/pkg/errors"

	"gorm.io/gorm"
)

type PostgresShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &PostgresShopRepository{db: db}
}

func (r *PostgresShopRepository) CreateProduct(ctx context.Context, p *shop.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresShopRepository) GetProduct(ctx context.Context, id uint) (shop.Product, error) {
	var p shop.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shop.Product{}, ecosync_errors.ErrNotFound
		}
		return shop.Product{}, err
	}
	return p, nil
}

func (r *PostgresShopRepository) ListProductsByStatus(ctx context.Context, status string) ([]shop.Product, error) {
	var products []shop.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PostgresShopRepository) ApproveProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&shop.Product{}).
		Where("id = ? AND status = ?", id, shop.StatusPending).
		Update("status", shop.StatusApproved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresShopRepository) CountProductsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&shop.Product{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *PostgresShopRepository) AddCartItem(ctx context.Context, item *shop.CartItem) error {
	res := r.db.WithContext(ctx).Create(item)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ecosync_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresShopRepository) ListCart(ctx context.Context, userID uint) ([]shop.CartItem, error) {
	var items []shop.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresShopRepository) RemoveCartItem(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Delete(&shop.CartItem{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresShopRepository) ClearCart(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&shop.CartItem{}, "user_id = ?", userID).Error
}

func (r *PostgresShopRepository) CountCart(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&shop.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *PostgresShopRepository) AddWishlistItem(ctx context.Context, item *shop.WishlistItem) error {
	res := r.db.WithContext(ctx).Create(item)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ecosync_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresShopRepository) ListWishlist(ctx context.Context, userID uint) ([]shop.WishlistItem, error) {
	var items []shop.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresShopRepository) RemoveWishlistItem(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Delete(&shop.WishlistItem{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresShopRepository) CountWishlist(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&shop.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *PostgresShopRepository) CreateOrder(ctx context.Context, o *shop.Order, items []shop.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresShopRepository) GetOrder(ctx context.Context, id, userID uint) (shop.Order, error) {
	var o shop.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shop.Order{}, ecosync_errors.ErrNotFound
		}
		return shop.Order{}, err
	}
	return o, nil
}

func (r *PostgresShopRepository) SettleOrder(ctx context.Context, orderID, userID uint) (float64, error) {
	var totalCO2 float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&shop.Order{}).
			Where("id = ? AND user_id = ? AND status = ?", orderID, userID, shop.OrderPending).
			Update("status", shop.OrderPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ecosync_errors.ErrNotFound
		}

		var items []shop.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			totalCO2 += item.CO2ReductionKg * float64(item.Quantity)
		}

		if err := tx.Model(&user.User{}).
			Where("id = ?", userID).
			Update("carbon_saved_kg", gorm.Expr("carbon_saved_kg + ?", totalCO2)).Error; err != nil {
			return err
		}
		return tx.Create(&challenge.CarbonLog{
			UserID:   userID,
			AmountKg: totalCO2,
			Source:   fmt.Sprintf("Purchase: Order #%d", orderID),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return totalCO2, nil
}

func (r *PostgresShopRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&shop.Order{}).Count(&count).Error
	return count, err
}
