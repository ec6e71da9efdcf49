package services

import (
	"context"
	"fmt"
	"time"

	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/repository"
)

// PaymentService drives the mock payment flow. There is no real processor;
// Initiate hands back a fake intent id and Confirm settles the order and
// credits the buyer's carbon savings.
type PaymentService struct {
	shop          repository.ShopRepository
	notifications *NotificationService
}

func NewPaymentService(shopRepo repository.ShopRepository, notifications *NotificationService) *PaymentService {
	return &PaymentService{
		shop:          shopRepo,
		notifications: notifications,
	}
}

type PaymentIntent struct {
	IntentID string  `json:"intent_id"`
	OrderID  uint    `json:"order_id"`
	Amount   float64 `json:"amount"`
}

func (s *PaymentService) Initiate(ctx context.Context, userID, orderID uint) (PaymentIntent, error) {
	order, err := s.shop.GetOrder(ctx, orderID, userID)
	if err != nil {
		return PaymentIntent{}, err
	}
	return PaymentIntent{
		IntentID: fmt.Sprintf("pi_mock_%d", time.Now().UnixNano()),
		OrderID:  order.ID,
		Amount:   order.TotalAmount,
	}, nil
}

// Confirm settles the order in one repository transaction: status paid,
// CO2 credit from the order items, carbon log row. A failure anywhere
// leaves the order pending, so the caller can retry. An already-paid or
// foreign order is ErrNotFound, so a double confirm never double-credits.
// The notification fires only after the transaction committed.
func (s *PaymentService) Confirm(ctx context.Context, userID, orderID uint) (shop.Order, error) {
	totalCO2, err := s.shop.SettleOrder(ctx, orderID, userID)
	if err != nil {
		return shop.Order{}, err
	}

	s.notifications.Notify(ctx, NotifyInput{
		UserID:        userID,
		Title:         "Payment Successful",
		Message:       fmt.Sprintf("Your order #%d is confirmed. You saved %.1f kg of CO2!", orderID, totalCO2),
		Type:          "order",
		ReferenceID:   orderID,
		ReferenceType: "order_payment",
	})

	return s.shop.GetOrder(ctx, orderID, userID)
}
