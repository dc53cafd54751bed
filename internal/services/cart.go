package service

import (
	"context"
	"errors"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

type CartService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	writer      *cartWriter
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cfg config.Checkout) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		writer:      newCartWriter(cartRepo, cfg.CartMaxRetries, time.Now),
	}
}

// AddItem prices a new line at the current catalog price. Lines already in
// the cart keep the price they were added at.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.ProductNotFoundError(req.ProductID).WithError(err)
		}

		return nil, storeError(err, "Failed to load product")
	}

	color := utils.SanitizeString(req.Color)

	cart, err := s.writer.mutate(ctx, userID, true, func(cart *models.Cart) error {
		cart.AddProduct(product.ID, color, product.Price)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartResponse(cart), nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}

		return nil, storeError(err, "Failed to load cart")
	}

	return models.NewCartResponse(cart), nil
}

// RemoveItem ignores item ids the cart does not hold.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartResponse, error) {
	cart, err := s.writer.mutate(ctx, userID, false, func(cart *models.Cart) error {
		cart.RemoveItem(itemID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartResponse(cart), nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartResponse, error) {
	if quantity < 1 {
		return nil, appErrors.AddValidationError("quantity", "must be at least 1")
	}

	cart, err := s.writer.mutate(ctx, userID, false, func(cart *models.Cart) error {
		if !cart.SetQuantity(itemID, quantity) {
			return appErrors.NotFoundError("Item not found in cart").WithDetail(itemID.String())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartResponse(cart), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteCartByUserID(ctx, userID); err != nil {
		return storeError(err, "Failed to clear cart")
	}

	return nil
}
