package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService   service.CartService
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCartHandler(cartService service.CartService, couponService service.CouponService) *CartHandler {
	return &CartHandler{cartService: cartService, couponService: couponService, validator: validator.New()}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of a product in the given color. The cart is created on first use and the unit price is captured at add time.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and optional color"
//	@Success		200		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Cart was modified concurrently"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "add cart item")
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart", slog.String("cartId", cart.Cart.ID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartResponse		"Current cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"No cart for this user"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get cart")
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Delete the cart
//	@Description	Removes the caller's cart. Clearing a missing cart succeeds.
//	@Tags			Cart
//	@Success		204	"Cart cleared"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "clear cart")
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Cart cleared")
		response.NoContent(w)
	}
}

// UpdateItemQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			itemId		path		string							true	"Cart item ID (UUID)"	Format(uuid)
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartResponse				"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid item ID or quantity"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse			"Cart or item not found"
//	@Failure		409			{object}	response.ErrorResponse			"Cart was modified concurrently"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{itemId} [put]
func (h *CartHandler) UpdateItemQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "update cart item")
		if !ok {
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			logger.Warn("Invalid cart item id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), claims.UserID, itemID, req.Quantity)
		if err != nil {
			logger.Error("Failed to update cart item",
				slog.String("itemId", itemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			itemId	path		string					true	"Cart item ID (UUID)"	Format(uuid)
//	@Success		200		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid item ID"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Cart not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "remove cart item")
		if !ok {
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			response.Error(w, err)

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, itemID)
		if err != nil {
			logger.Error("Failed to remove cart item",
				slog.String("itemId", itemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ApplyCoupon godoc
//	@Summary		Apply a coupon to the cart
//	@Description	Applies an active coupon. The discounted total is kept until the cart changes.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ApplyCouponRequest	true	"Coupon name"
//	@Success		200		{object}	models.CartResponse			"Cart with discount applied"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid or expired coupon"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Cart not found"
//	@Failure		429		{object}	response.ErrorResponse		"Too many requests"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/coupon [put]
func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "apply coupon")
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.couponService.ApplyCoupon(r.Context(), claims.UserID, req.CouponName)
		if err != nil {
			logger.Warn("Failed to apply coupon",
				slog.String("coupon", req.CouponName),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Coupon applied", slog.String("coupon", req.CouponName))
		response.Success(w, http.StatusOK, cart)
	}
}
