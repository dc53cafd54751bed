package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/events"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

type OrderService interface {
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	// MarkPaid is idempotent: an order already paid is returned unchanged.
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	PaymentStatusByEmail(ctx context.Context, email string, productID *uuid.UUID) (*models.PaymentStatusResponse, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, publisher events.Publisher) OrderService {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo, publisher: publisher, now: time.Now}
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, storeError(err, "Failed to fetch orders")
	}

	return orders, total, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, storeError(err, "Failed to fetch orders")
	}

	return orders, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, orderError(err, "Failed to fetch order")
	}

	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, appErrors.AddValidationError("status", "unknown order status")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, appErrors.InvalidTransitionError(string(order.Status), string(status))
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, order, status, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.ConflictError("Order status changed concurrently, please retry").WithError(err)
		}

		return nil, orderError(err, "Failed to update order status")
	}

	s.publish(ctx, models.OrderEventStatusChanged, order)

	return order, nil
}

func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	changed, err := s.orderRepo.MarkOrderPaid(ctx, id, s.now().UTC())
	if err != nil {
		return nil, orderError(err, "Failed to mark order as paid")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.publish(ctx, models.OrderEventPaid, order)
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return orderError(err, "Failed to delete order")
	}

	s.publish(ctx, models.OrderEventDeleted, order)

	return nil
}

func (s *orderService) PaymentStatusByEmail(ctx context.Context, email string, productID *uuid.UUID) (*models.PaymentStatusResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, appErrors.AddValidationError("email", "is required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("No user found with this email").WithError(err)
		}

		return nil, storeError(err, "Failed to look up user")
	}

	hasPaid, err := s.orderRepo.HasPaidOrder(ctx, user.ID, productID)
	if err != nil {
		return nil, storeError(err, "Failed to look up orders")
	}

	return &models.PaymentStatusResponse{Email: email, ProductID: productID, HasPaid: hasPaid}, nil
}

func (s *orderService) publish(ctx context.Context, eventType models.OrderEventType, order *models.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, models.NewOrderEvent(eventType, order, s.now().UTC())); err != nil {
		slog.Warn("Failed to publish order event",
			slog.String("orderId", order.ID.String()),
			slog.String("eventType", string(eventType)),
			slog.String("error", err.Error()))
	}
}

func orderError(err error, message string) *appErrors.AppError {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError("Order not found").WithError(err)
	}

	return storeError(err, message)
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = utils.DefaultPage
	}

	if size < 1 {
		size = utils.DefaultPageSize
	}

	return page, min(size, utils.MaxPageSize)
}
