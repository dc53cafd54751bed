package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/sendgrid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

type notificationService struct {
	userRepo     repository.UserRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(userRepo repository.UserRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{userRepo: userRepo, emailService: emailService}
}

// SendOrderConfirmation implements NotificationService.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	user, err := n.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to load order owner %s: %w", order.UserID, err)
	}

	req := &models.EmailNotificationRequest{
		To:          user.Email,
		Subject:     fmt.Sprintf("Your order %s is confirmed", shortID(order)),
		Content:     confirmationText(user, order),
		HTMLContent: confirmationHTML(user, order),
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}

func shortID(order *models.Order) string {
	return strings.ToUpper(order.ID.String()[:8])
}

func paymentLine(order *models.Order) string {
	if order.IsPaid {
		return "Paid by card"
	}

	return "Pay on delivery"
}

func confirmationText(user *models.User, order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", user.Name, shortID(order))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %d x %s", item.Quantity, item.ProductID)

		if item.Color != "" {
			fmt.Fprintf(&b, " (%s)", item.Color)
		}

		fmt.Fprintf(&b, " @ %s\n", item.UnitPrice.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTax: %s\nShipping: %s\nTotal: %s\n%s\n",
		order.TaxPrice.StringFixed(2),
		order.ShippingPrice.StringFixed(2),
		order.TotalOrderPrice.StringFixed(2),
		paymentLine(order))

	return b.String()
}

func confirmationHTML(user *models.User, order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<p>Hi %s,</p><p>Thanks for your order <strong>%s</strong>.</p><ul>",
		html.EscapeString(user.Name), shortID(order))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d &times; %s %s @ %s</li>",
			item.Quantity, item.ProductID, html.EscapeString(item.Color), item.UnitPrice.StringFixed(2))
	}

	fmt.Fprintf(&b, "</ul><p>Total: <strong>%s</strong> (%s)</p>",
		order.TotalOrderPrice.StringFixed(2), paymentLine(order))

	return b.String()
}
