// Package memory keeps every repository in process memory behind a single
// lock. It backs the memory database driver and concurrency tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	carts    map[uuid.UUID]*models.Cart
	products map[uuid.UUID]*models.Product
	coupons  map[string]*models.Coupon
	orders   map[uuid.UUID]*models.Order
	payments map[string]*models.Payment
	users    map[uuid.UUID]*models.User
	events   map[string]string
}

func NewStore() *Store {
	return &Store{
		carts:    make(map[uuid.UUID]*models.Cart),
		products: make(map[uuid.UUID]*models.Product),
		coupons:  make(map[string]*models.Coupon),
		orders:   make(map[uuid.UUID]*models.Order),
		payments: make(map[string]*models.Payment),
		users:    make(map[uuid.UUID]*models.User),
		events:   make(map[string]string),
	}
}

// Repositories exposes the store through the same set the Postgres driver
// returns.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Cart:     s,
		Coupon:   s,
		Product:  s,
		Order:    s,
		Checkout: s,
		Payment:  s,
		User:     s,
	}
}

func (s *Store) PutProduct(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = &product
}

func (s *Store) PutCoupon(coupon models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons[coupon.Name] = &coupon
}

func (s *Store) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = &user
}

func copyCart(cart *models.Cart) *models.Cart {
	c := *cart
	c.Items = slices.Clone(cart.Items)

	if c.Items == nil {
		c.Items = []models.CartItem{}
	}

	return &c
}

func copyOrder(order *models.Order) *models.Order {
	o := *order
	o.Items = slices.Clone(order.Items)

	if order.ShippingAddress != nil {
		addr := *order.ShippingAddress
		o.ShippingAddress = &addr
	}

	if order.PaidAt != nil {
		paidAt := *order.PaidAt
		o.PaidAt = &paidAt
	}

	return &o
}

func (s *Store) CreateCart(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.carts {
		if existing.UserID == cart.UserID {
			return repository.ErrDuplicate
		}
	}

	cart.Version = 1
	s.carts[cart.ID] = copyCart(cart)

	return nil
}

func (s *Store) GetCartByUserID(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cart := range s.carts {
		if cart.UserID == userID {
			return copyCart(cart), nil
		}
	}

	return nil, repository.ErrNotFound
}

func (s *Store) GetCartByID(_ context.Context, id uuid.UUID) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return copyCart(cart), nil
}

func (s *Store) UpdateCart(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[cart.ID]
	if !ok {
		return repository.ErrNotFound
	}

	if stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}

	cart.Version++
	s.carts[cart.ID] = copyCart(cart)

	return nil
}

func (s *Store) DeleteCartByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cart := range s.carts {
		if cart.UserID == userID {
			delete(s.carts, id)
		}
	}

	return nil
}

func (s *Store) GetActiveCouponByName(_ context.Context, name string, now time.Time) (*models.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coupon, ok := s.coupons[name]
	if !ok || !coupon.ActiveAt(now) {
		return nil, repository.ErrNotFound
	}

	c := *coupon

	return &c, nil
}

func (s *Store) GetProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	p := *product

	return &p, nil
}

// CommitCheckout validates every step before applying any, so a failure
// leaves the store as it was.
func (s *Store) CommitCheckout(_ context.Context, commit *models.CheckoutCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if commit.EventID != "" {
		if _, seen := s.events[commit.EventID]; seen {
			return repository.ErrEventProcessed
		}
	}

	for _, res := range commit.Reservations {
		product, ok := s.products[res.ProductID]
		if !ok || product.StockQuantity < res.Quantity {
			return &repository.StockError{ProductID: res.ProductID}
		}
	}

	for _, order := range s.orders {
		if order.CartID == commit.Order.CartID {
			return repository.ErrDuplicate
		}
	}

	cart, ok := s.carts[commit.CartID]
	if !ok || cart.Version != commit.CartVersion {
		return repository.ErrCartChanged
	}

	if commit.EventID != "" {
		s.events[commit.EventID] = commit.EventType
	}

	for _, res := range commit.Reservations {
		product := s.products[res.ProductID]
		product.StockQuantity -= res.Quantity
		product.UnitsSold += res.Quantity
		product.UpdatedAt = commit.Order.CreatedAt
	}

	s.orders[commit.Order.ID] = copyOrder(commit.Order)
	delete(s.carts, commit.CartID)

	return nil
}

func (s *Store) GetOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return copyOrder(order), nil
}

func (s *Store) ListOrders(_ context.Context, page, size int) ([]*models.Order, int, error) {
	orders, total := s.listOrders(func(*models.Order) bool { return true }, page, size)

	return orders, total, nil
}

func (s *Store) ListOrdersByUser(_ context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	orders, total := s.listOrders(func(o *models.Order) bool { return o.UserID == userID }, page, size)

	return orders, total, nil
}

// listOrders returns one page of the matching orders, newest first, and the
// number of matches. Both come from the same snapshot.
func (s *Store) listOrders(match func(*models.Order) bool, page, size int) ([]*models.Order, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Order, 0, len(s.orders))

	for _, order := range s.orders {
		if match(order) {
			matched = append(matched, order)
		}
	}

	slices.SortFunc(matched, func(a, b *models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	total := len(matched)

	offset := (page - 1) * size
	if offset >= total {
		return []*models.Order{}, total
	}

	pageOrders := make([]*models.Order, 0, min(size, total-offset))
	for _, order := range matched[offset:min(offset+size, total)] {
		pageOrders = append(pageOrders, copyOrder(order))
	}

	return pageOrders, total
}

func (s *Store) UpdateOrderStatus(_ context.Context, order *models.Order, next models.OrderStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}

	if stored.Status != order.Status {
		return repository.ErrVersionConflict
	}

	if next == models.OrderStatusCancelled {
		for _, res := range stored.Reservations() {
			if product, ok := s.products[res.ProductID]; ok {
				product.StockQuantity += res.Quantity
				product.UnitsSold = max(product.UnitsSold-res.Quantity, 0)
				product.UpdatedAt = at
			}
		}
	}

	stored.Status = next
	stored.UpdatedAt = at
	order.Status = next
	order.UpdatedAt = at

	return nil
}

func (s *Store) MarkOrderPaid(_ context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, repository.ErrNotFound
	}

	if order.IsPaid {
		return false, nil
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.UpdatedAt = paidAt

	return true, nil
}

func (s *Store) DeleteOrder(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}

	delete(s.orders, id)

	return nil
}

func (s *Store) HasPaidOrder(_ context.Context, userID uuid.UUID, productID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.UserID != userID || !order.IsPaid {
			continue
		}

		if productID == nil {
			return true, nil
		}

		for _, item := range order.Items {
			if item.ProductID == *productID {
				return true, nil
			}
		}
	}

	return false, nil
}

func (s *Store) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[payment.PaymentIntentID]; ok {
		return repository.ErrDuplicate
	}

	p := *payment
	p.UpdatedAt = p.CreatedAt
	s.payments[payment.PaymentIntentID] = &p

	return nil
}

func (s *Store) GetPaymentByIntentID(_ context.Context, intentID string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[intentID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	p := *payment

	return &p, nil
}

func (s *Store) UpdatePaymentStatus(_ context.Context, intentID string, status models.PaymentStatus, orderID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[intentID]
	if !ok {
		return repository.ErrNotFound
	}

	payment.Status = status
	payment.UpdatedAt = time.Now()

	if orderID != nil {
		id := *orderID
		payment.OrderID = &id
	}

	return nil
}

func (s *Store) IsEventProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.events[eventID]

	return ok, nil
}

func (s *Store) MarkEventProcessed(_ context.Context, eventID, eventType string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		s.events[eventID] = eventType
	}

	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	u := *user

	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))

	for _, user := range s.users {
		if strings.ToLower(user.Email) == email {
			u := *user

			return &u, nil
		}
	}

	return nil, repository.ErrNotFound
}

var (
	_ repository.CartRepository     = (*Store)(nil)
	_ repository.CouponRepository   = (*Store)(nil)
	_ repository.ProductRepository  = (*Store)(nil)
	_ repository.OrderRepository    = (*Store)(nil)
	_ repository.CheckoutRepository = (*Store)(nil)
	_ repository.PaymentRepository  = (*Store)(nil)
	_ repository.UserRepository     = (*Store)(nil)
)
