package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService    service.OrderService
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, checkoutService service.CheckoutService) *OrderHandler {
	return &OrderHandler{orderService: orderService, checkoutService: checkoutService, validator: validator.New()}
}

// CreateCashOrder godoc
//	@Summary		Check out a cart with cash on delivery
//	@Description	Converts the caller's cart into a pending unpaid order, decrementing stock and deleting the cart in one transaction.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			cartId	path		string							true	"Cart ID (UUID)"	Format(uuid)
//	@Param			order	body		models.CreateCashOrderRequest	true	"Shipping address"
//	@Success		201		{object}	models.Order					"Order created"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Cart belongs to another user"
//	@Failure		404		{object}	response.ErrorResponse			"Cart or product not found"
//	@Failure		409		{object}	response.ErrorResponse			"Insufficient stock or cart changed"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{cartId} [post]
func (h *OrderHandler) CreateCashOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "create order")
		if !ok {
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger = logger.With(slog.String("cartId", cartID.String()))

		var req models.CreateCashOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")

			return
		}

		order, err := h.checkoutService.CreateCashOrder(r.Context(), claims.UserID, cartID, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// ListOrders godoc
//	@Summary		List orders with pagination
//	@Description	Admins and managers see every order, other users only their own.
//	@Tags			Orders
//	@Produce		json
//	@Param			page	query		int												false	"Page number (default: 1)"					minimum(1)
//	@Param			size	query		int												false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200		{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		400		{object}	response.ErrorResponse							"Invalid pagination"
//	@Failure		401		{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "list orders")
		if !ok {
			return
		}

		page, size, err := utils.ParsePagination(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		var (
			orders []*models.Order
			total  int
		)

		if claims.IsPrivileged() {
			orders, total, err = h.orderService.ListOrders(r.Context(), page, size)
		} else {
			orders, total, err = h.orderService.ListUserOrders(r.Context(), claims.UserID, page, size)
		}

		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Orders listed successfully", slog.Int("count", len(orders)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.NewPaginatedResponse(orders, total, page, size))
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"User does not own this order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get order")
		if !ok {
			return
		}

		order, ok := h.loadOwnedOrder(w, r, claims, logger, claims.IsPrivileged())
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrderStatus godoc
//	@Summary		Move an order to a new status
//	@Description	Allowed moves: pending to processing or cancelled, processing to shipped or cancelled, shipped to delivered. Cancelling restocks the items.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid order ID or status"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Admin or manager role required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		409		{object}	response.ErrorResponse			"Transition not allowed or concurrent update"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "update order status")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		logger = logger.With(slog.String("orderId", id.String()), slog.String("status", string(req.Status)))

		order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated")
		response.Success(w, http.StatusOK, order)
	}
}

// MarkPaid godoc
//	@Summary		Mark an order as paid
//	@Description	Owners and admins may mark an order paid. Marking a paid order again returns it unchanged.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Paid order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"User does not own this order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/pay [put]
func (h *OrderHandler) MarkPaid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "mark order paid")
		if !ok {
			return
		}

		current, ok := h.loadOwnedOrder(w, r, claims, logger, claims.Role == models.RoleAdmin)
		if !ok {
			return
		}

		order, err := h.orderService.MarkPaid(r.Context(), current.ID)
		if err != nil {
			logger.Error("Failed to mark order paid", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order marked paid", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// DeleteOrder godoc
//	@Summary		Delete an order
//	@Tags			Orders
//	@Param			id	path	string	true	"Order ID (UUID)"	Format(uuid)
//	@Success		204	"Order deleted"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "delete order")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
			logger.Error("Failed to delete order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order deleted", slog.String("orderId", id.String()))
		response.NoContent(w)
	}
}

// loadOwnedOrder fetches the order named by the id path value and writes a
// 403 unless the caller owns it or bypassOwnership is set.
func (h *OrderHandler) loadOwnedOrder(
	w http.ResponseWriter,
	r *http.Request,
	claims *models.Claims,
	logger *slog.Logger,
	bypassOwnership bool,
) (*models.Order, bool) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		logger.Warn("Invalid order id", slog.String("error", err.Error()))
		response.Error(w, err)

		return nil, false
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
		response.Error(w, err)

		return nil, false
	}

	if !bypassOwnership && order.UserID != claims.UserID {
		logger.Warn("Attempted to access another user's order",
			slog.String("orderId", id.String()),
			slog.String("ownerId", order.UserID.String()))
		response.Error(w, errors.ForbiddenError("You don't have permission to access this order"))

		return nil, false
	}

	return order, true
}
