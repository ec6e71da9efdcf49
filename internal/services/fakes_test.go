package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"ecosync-hub/internal/domain/challenge"
	"ecosync-hub/internal/domain/message"
	"ecosync-hub/internal/domain/notification"
	"ecosync-hub/internal/domain/shop"
	"ecosync-hub/internal/domain/social"
	"ecosync-hub/internal/domain/user"
	ecosync_errors "ecosync-hub/pkg/errors"
)

// recordingPusher captures every push so tests can assert on fan-out.
type recordingPusher struct {
	mu     sync.Mutex
	pushes []recordedPush
}

type recordedPush struct {
	UserID  uint
	Event   string
	Payload interface{}
}

func (p *recordingPusher) Push(userID uint, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, recordedPush{UserID: userID, Event: event, Payload: payload})
}

func (p *recordingPusher) all() []recordedPush {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recordedPush, len(p.pushes))
	copy(out, p.pushes)
	return out
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) AllowMessage(ctx context.Context, userID uint) (bool, error) {
	return l.allow, l.err
}

// fakeMessageRepo is an in-memory MessageRepository.
type fakeMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*message.Message
	failOn string
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{rows: make(map[uint]*message.Message)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "create" {
		return context.DeadlineExceeded
	}
	r.nextID++
	m.ID = r.nextID
	copied := *m
	r.rows[m.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) ListConversations(ctx context.Context, userID uint) ([]message.ConversationSummary, error) {
	return nil, nil
}

func (r *fakeMessageRepo) ListThread(ctx context.Context, userID, peerID uint) ([]message.ThreadMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []message.ThreadMessage
	for _, m := range r.rows {
		if (m.SenderID == userID && m.ReceiverID == peerID) || (m.SenderID == peerID && m.ReceiverID == userID) {
			out = append(out, message.ThreadMessage{
				ID:         m.ID,
				SenderID:   m.SenderID,
				ReceiverID: m.ReceiverID,
				Content:    m.Content,
				IsRead:     m.IsRead,
				CreatedAt:  m.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMessageRepo) MarkConversationRead(ctx context.Context, readerID, peerID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.rows {
		if m.ReceiverID == readerID && m.SenderID == peerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) MarkMessageRead(ctx context.Context, readerID, messageID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.rows[messageID]; ok && m.ReceiverID == readerID {
		m.IsRead = true
	}
	return nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.rows {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok || (m.SenderID != userID && m.ReceiverID != userID) {
		return ecosync_errors.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// fakeNotificationRepo is an in-memory NotificationRepository.
type fakeNotificationRepo struct {
	mu         sync.Mutex
	nextID     uint
	rows       map[uint]*notification.Notification
	failCreate bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: make(map[uint]*notification.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return context.DeadlineExceeded
	}
	r.nextID++
	n.ID = r.nextID
	copied := *n
	r.rows[n.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) ListForUser(ctx context.Context, userID uint) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return ecosync_errors.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return ecosync_errors.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if row.UserID == userID && !row.IsRead {
			n++
		}
	}
	return n, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[uint]*user.User)}
}

func (r *fakeUserRepo) add(u user.User) user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	copied := u
	r.rows[u.ID] = &copied
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	created := r.add(*u)
	u.ID = created.ID
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.rows[id]; ok {
		return *u, nil
	}
	return user.User{}, ecosync_errors.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, ecosync_errors.ErrNotFound
}

func (r *fakeUserRepo) Search(ctx context.Context, usernameLike string, limit int) ([]user.PublicProfile, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uint, fromRole, toRole string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok || u.Role != fromRole {
		return ecosync_errors.ErrNotFound
	}
	u.Role = toRole
	return nil
}

func (r *fakeUserRepo) CreditCarbon(ctx context.Context, id uint, points int, carbonKg float64, trees int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return ecosync_errors.ErrNotFound
	}
	u.EcoPoints += points
	u.CarbonSavedKg += carbonKg
	u.TreesPlanted += trees
	return nil
}

func (r *fakeUserRepo) TopByCarbon(ctx context.Context, limit int) ([]user.PublicProfile, error) {
	return nil, nil
}

func (r *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeUserRepo) TotalCarbonSaved(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, u := range r.rows {
		total += u.CarbonSavedKg
	}
	return total, nil
}

// fakeFriendRepo is an in-memory FriendRepository.
type fakeFriendRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*social.Friend
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{rows: make(map[uint]*social.Friend)}
}

func (r *fakeFriendRepo) Create(ctx context.Context, f *social.Friend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID1 == f.UserID1 && row.UserID2 == f.UserID2 {
			return ecosync_errors.ErrAlreadyExists
		}
	}
	r.nextID++
	f.ID = r.nextID
	f.CreatedAt = time.Now()
	copied := *f
	r.rows[f.ID] = &copied
	return nil
}

func (r *fakeFriendRepo) GetByID(ctx context.Context, id uint) (social.Friend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.rows[id]; ok {
		return *f, nil
	}
	return social.Friend{}, ecosync_errors.ErrNotFound
}

func (r *fakeFriendRepo) GetPair(ctx context.Context, userID1, userID2 uint) (social.Friend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.UserID1 == userID1 && f.UserID2 == userID2 {
			return *f, nil
		}
	}
	return social.Friend{}, ecosync_errors.ErrNotFound
}

func (r *fakeFriendRepo) Accept(ctx context.Context, id, actionUserID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok || f.Status != social.StatusPending {
		return ecosync_errors.ErrNotFound
	}
	f.Status = social.StatusAccepted
	f.ActionUserID = actionUserID
	return nil
}

func (r *fakeFriendRepo) ListFriends(ctx context.Context, userID uint) ([]social.FriendEntry, error) {
	return nil, nil
}

func (r *fakeFriendRepo) ListPendingRequests(ctx context.Context, userID uint) ([]social.FriendRequest, error) {
	return nil, nil
}

// fakeShopRepo is an in-memory ShopRepository. The optional users and
// carbonLogs references let SettleOrder mirror the all-or-nothing write
// the real repository does in one transaction.
type fakeShopRepo struct {
	mu         sync.Mutex
	nextID     uint
	products   map[uint]*shop.Product
	cart       map[uint]*shop.CartItem
	wishlist   map[uint]*shop.WishlistItem
	orders     map[uint]*shop.Order
	orderItems map[uint][]shop.OrderItem

	users      *fakeUserRepo
	carbonLogs *fakeChallengeRepo
	failSettle bool
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{
		products:   make(map[uint]*shop.Product),
		cart:       make(map[uint]*shop.CartItem),
		wishlist:   make(map[uint]*shop.WishlistItem),
		orders:     make(map[uint]*shop.Order),
		orderItems: make(map[uint][]shop.OrderItem),
	}
}

func (r *fakeShopRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeShopRepo) CreateProduct(ctx context.Context, p *shop.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeShopRepo) GetProduct(ctx context.Context, id uint) (shop.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return *p, nil
	}
	return shop.Product{}, ecosync_errors.ErrNotFound
}

func (r *fakeShopRepo) ListProductsByStatus(ctx context.Context, status string) ([]shop.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.Product
	for _, p := range r.products {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeShopRepo) ApproveProduct(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Status != shop.StatusPending {
		return ecosync_errors.ErrNotFound
	}
	p.Status = shop.StatusApproved
	return nil
}

func (r *fakeShopRepo) CountProductsByStatus(ctx context.Context, status string) (int64, error) {
	items, _ := r.ListProductsByStatus(ctx, status)
	return int64(len(items)), nil
}

func (r *fakeShopRepo) AddCartItem(ctx context.Context, item *shop.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.cart {
		if row.UserID == item.UserID && row.ProductID == item.ProductID {
			return ecosync_errors.ErrAlreadyExists
		}
	}
	item.ID = r.id()
	copied := *item
	r.cart[item.ID] = &copied
	return nil
}

func (r *fakeShopRepo) ListCart(ctx context.Context, userID uint) ([]shop.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.CartItem
	for _, row := range r.cart {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeShopRepo) RemoveCartItem(ctx context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.cart[id]
	if !ok || row.UserID != userID {
		return ecosync_errors.ErrNotFound
	}
	delete(r.cart, id)
	return nil
}

func (r *fakeShopRepo) ClearCart(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.cart {
		if row.UserID == userID {
			delete(r.cart, id)
		}
	}
	return nil
}

func (r *fakeShopRepo) CountCart(ctx context.Context, userID uint) (int64, error) {
	items, _ := r.ListCart(ctx, userID)
	return int64(len(items)), nil
}

func (r *fakeShopRepo) AddWishlistItem(ctx context.Context, item *shop.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.wishlist {
		if row.UserID == item.UserID && row.ProductID == item.ProductID {
			return ecosync_errors.ErrAlreadyExists
		}
	}
	item.ID = r.id()
	copied := *item
	r.wishlist[item.ID] = &copied
	return nil
}

func (r *fakeShopRepo) ListWishlist(ctx context.Context, userID uint) ([]shop.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.WishlistItem
	for _, row := range r.wishlist {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeShopRepo) RemoveWishlistItem(ctx context.Context, id, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.wishlist[id]
	if !ok || row.UserID != userID {
		return ecosync_errors.ErrNotFound
	}
	delete(r.wishlist, id)
	return nil
}

func (r *fakeShopRepo) CountWishlist(ctx context.Context, userID uint) (int64, error) {
	items, _ := r.ListWishlist(ctx, userID)
	return int64(len(items)), nil
}

func (r *fakeShopRepo) CreateOrder(ctx context.Context, o *shop.Order, items []shop.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.id()
	copied := *o
	r.orders[o.ID] = &copied
	stored := make([]shop.OrderItem, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].OrderID = o.ID
	}
	r.orderItems[o.ID] = stored
	return nil
}

func (r *fakeShopRepo) GetOrder(ctx context.Context, id, userID uint) (shop.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return shop.Order{}, ecosync_errors.ErrNotFound
	}
	return *o, nil
}

func (r *fakeShopRepo) SettleOrder(ctx context.Context, orderID, userID uint) (float64, error) {
	r.mu.Lock()
	o, ok := r.orders[orderID]
	if !ok || o.UserID != userID || o.Status != shop.OrderPending {
		r.mu.Unlock()
		return 0, ecosync_errors.ErrNotFound
	}
	if r.failSettle {
		// Rolled back: the order stays pending and nothing is credited.
		r.mu.Unlock()
		return 0, context.DeadlineExceeded
	}
	o.Status = shop.OrderPaid
	var totalCO2 float64
	for _, item := range r.orderItems[orderID] {
		totalCO2 += item.CO2ReductionKg * float64(item.Quantity)
	}
	r.mu.Unlock()

	if r.users != nil {
		if err := r.users.CreditCarbon(ctx, userID, 0, totalCO2, 0); err != nil {
			return 0, err
		}
	}
	if r.carbonLogs != nil {
		if err := r.carbonLogs.CreateCarbonLog(ctx, &challenge.CarbonLog{
			UserID:   userID,
			AmountKg: totalCO2,
			Source:   "Purchase: Order #" + strconv.FormatUint(uint64(orderID), 10),
		}); err != nil {
			return 0, err
		}
	}
	return totalCO2, nil
}

func (r *fakeShopRepo) CountOrders(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

// fakeChallengeRepo is an in-memory ChallengeRepository.
type fakeChallengeRepo struct {
	mu         sync.Mutex
	nextID     uint
	challenges map[uint]*challenge.Challenge
	joined     map[uint]*challenge.UserChallenge
	logs       []challenge.CarbonLog
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		challenges: make(map[uint]*challenge.Challenge),
		joined:     make(map[uint]*challenge.UserChallenge),
	}
}

func (r *fakeChallengeRepo) addChallenge(c challenge.Challenge) challenge.Challenge {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	} else if c.ID > r.nextID {
		r.nextID = c.ID
	}
	copied := c
	r.challenges[c.ID] = &copied
	return c
}

func (r *fakeChallengeRepo) List(ctx context.Context) ([]challenge.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []challenge.Challenge
	for _, c := range r.challenges {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeChallengeRepo) GetByID(ctx context.Context, id uint) (challenge.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.challenges[id]; ok {
		return *c, nil
	}
	return challenge.Challenge{}, ecosync_errors.ErrNotFound
}

func (r *fakeChallengeRepo) GetUserChallenge(ctx context.Context, userID, challengeID uint) (challenge.UserChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, uc := range r.joined {
		if uc.UserID == userID && uc.ChallengeID == challengeID {
			return *uc, nil
		}
	}
	return challenge.UserChallenge{}, ecosync_errors.ErrNotFound
}

func (r *fakeChallengeRepo) Join(ctx context.Context, uc *challenge.UserChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	uc.ID = r.nextID
	copied := *uc
	r.joined[uc.ID] = &copied
	return nil
}

func (r *fakeChallengeRepo) Complete(ctx context.Context, userChallengeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	uc, ok := r.joined[userChallengeID]
	if !ok || uc.Status != challenge.StatusJoined {
		return ecosync_errors.ErrNotFound
	}
	uc.Status = challenge.StatusCompleted
	now := time.Now()
	uc.CompletedAt = &now
	return nil
}

func (r *fakeChallengeRepo) CreateCarbonLog(ctx context.Context, l *challenge.CarbonLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *l)
	return nil
}
