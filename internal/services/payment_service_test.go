package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/user"
	ecosync_errors "ecosync-hub/pkg/errors"
	"ecosync-hub/pkg/logger"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *ShopService, *fakeUserRepo, *fakeChallengeRepo, *fakeNotificationRepo) {
	svc, shopSvc, _, users, challengeRepo, notificationRepo := newPaymentFixtureRepos(t)
	return svc, shopSvc, users, challengeRepo, notificationRepo
}

func newPaymentFixtureRepos(t *testing.T) (*PaymentService, *ShopService, *fakeShopRepo, *fakeUserRepo, *fakeChallengeRepo, *fakeNotificationRepo) {
	t.Helper()

	users := newFakeUserRepo()
	users.add(user.User{ID: 1, Username: "alice", Role: user.RoleUser})
	users.add(user.User{ID: 2, Username: "shopkeeper", Role: user.RoleSeller})

	shopRepo := newFakeShopRepo()
	shopSvc := NewShopService(shopRepo)

	seller := Identity{ID: 2, Role: user.RoleSeller}
	productID, err := shopSvc.CreateProduct(context.Background(), seller, CreateProductInput{
		Name: "Bamboo bottle", Price: 12.5, CO2ReductionKg: 2.0,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if err := shopRepo.ApproveProduct(context.Background(), productID); err != nil {
		t.Fatalf("ApproveProduct: %v", err)
	}
	if _, err := shopSvc.AddToCart(context.Background(), 1, productID, 2); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	challengeRepo := newFakeChallengeRepo()
	shopRepo.users = users
	shopRepo.carbonLogs = challengeRepo

	notificationRepo := newFakeNotificationRepo()
	notifications := NewNotificationService(notificationRepo, nil, logger.NewNop())
	return NewPaymentService(shopRepo, notifications), shopSvc, shopRepo, users, challengeRepo, notificationRepo
}

func TestCheckoutAndConfirmCreditsCarbon(t *testing.T) {
	payments, shopSvc, users, challengeRepo, notificationRepo := newPaymentFixture(t)

	order, err := shopSvc.Checkout(context.Background(), 1)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.TotalAmount != 25.0 || order.Status != shop.OrderPending {
		t.Fatalf("unexpected order: %+v", order)
	}

	// Checkout clears the cart.
	items, _ := shopSvc.Cart(context.Background(), 1)
	if len(items) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d", len(items))
	}

	intent, err := payments.Initiate(context.Background(), 1, order.ID)
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if !strings.HasPrefix(intent.IntentID, "pi_mock_") || intent.Amount != 25.0 {
		t.Fatalf("unexpected intent: %+v", intent)
	}

	paid, err := payments.Confirm(context.Background(), 1, order.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if paid.Status != shop.OrderPaid {
		t.Fatalf("order not paid: %+v", paid)
	}

	// 2 kg per unit, quantity 2.
	u, _ := users.GetByID(context.Background(), 1)
	if u.CarbonSavedKg != 4.0 {
		t.Fatalf("carbon credit = %.1f, want 4.0", u.CarbonSavedKg)
	}
	if len(challengeRepo.logs) != 1 || !strings.HasPrefix(challengeRepo.logs[0].Source, "Purchase: Order #") {
		t.Fatalf("unexpected carbon logs: %+v", challengeRepo.logs)
	}

	notes, _ := notificationRepo.ListForUser(context.Background(), 1)
	if len(notes) != 1 || notes[0].Title != "Payment Successful" || notes[0].ReferenceType != "order_payment" {
		t.Fatalf("unexpected notifications: %+v", notes)
	}
}

func TestConfirmIsSingleShot(t *testing.T) {
	payments, shopSvc, users, _, _ := newPaymentFixture(t)

	order, _ := shopSvc.Checkout(context.Background(), 1)
	if _, err := payments.Confirm(context.Background(), 1, order.ID); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	if _, err := payments.Confirm(context.Background(), 1, order.ID); !errors.Is(err, ecosync_errors.ErrNotFound) {
		t.Fatalf("second confirm: got %v", err)
	}

	// No double credit.
	u, _ := users.GetByID(context.Background(), 1)
	if u.CarbonSavedKg != 4.0 {
		t.Fatalf("carbon credited twice: %.1f", u.CarbonSavedKg)
	}
}

func TestConfirmFailureLeavesOrderPending(t *testing.T) {
	payments, shopSvc, shopRepo, users, challengeRepo, notificationRepo := newPaymentFixtureRepos(t)

	order, _ := shopSvc.Checkout(context.Background(), 1)

	// A settle failure must roll back everything: the order stays pending,
	// no carbon credit, no log, no notification.
	shopRepo.failSettle = true
	if _, err := payments.Confirm(context.Background(), 1, order.ID); err == nil {
		t.Fatal("expected confirm to fail")
	}

	got, _ := shopRepo.GetOrder(context.Background(), order.ID, 1)
	if got.Status != shop.OrderPending {
		t.Fatalf("order status = %q, want pending after failed confirm", got.Status)
	}
	u, _ := users.GetByID(context.Background(), 1)
	if u.CarbonSavedKg != 0 {
		t.Fatalf("carbon credited despite failed confirm: %.1f", u.CarbonSavedKg)
	}
	if len(challengeRepo.logs) != 0 {
		t.Fatalf("carbon log written despite failed confirm: %+v", challengeRepo.logs)
	}
	notes, _ := notificationRepo.ListForUser(context.Background(), 1)
	if len(notes) != 0 {
		t.Fatalf("notification sent despite failed confirm: %+v", notes)
	}

	// The retry succeeds and credits exactly once.
	shopRepo.failSettle = false
	paid, err := payments.Confirm(context.Background(), 1, order.ID)
	if err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
	if paid.Status != shop.OrderPaid {
		t.Fatalf("order not paid after retry: %+v", paid)
	}
	u, _ = users.GetByID(context.Background(), 1)
	if u.CarbonSavedKg != 4.0 {
		t.Fatalf("carbon credit = %.1f, want 4.0", u.CarbonSavedKg)
	}
}

func TestConfirmForeignOrder(t *testing.T) {
	payments, shopSvc, _, _, _ := newPaymentFixture(t)

	order, _ := shopSvc.Checkout(context.Background(), 1)
	if _, err := payments.Confirm(context.Background(), 2, order.ID); !errors.Is(err, ecosync_errors.ErrNotFound) {
		t.Fatalf("foreign confirm: got %v", err)
	}
}
