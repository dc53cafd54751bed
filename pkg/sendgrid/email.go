package sendgrid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	DefaultHost  = "https://api.sendgrid.com"
	sendEndpoint = "/v3/mail/send"
)

var ErrNotConfigured = errors.New("sendgrid: api key or sender address not configured")

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

type emailService struct {
	apiKey    string
	host      string
	fromEmail string
	fromName  string
}

// NewEmailService targets host, or DefaultHost when host is empty.
func NewEmailService(apiKey, host, fromEmail, fromName string) EmailService {
	if host == "" {
		host = DefaultHost
	}

	return &emailService{apiKey: apiKey, host: host, fromEmail: fromEmail, fromName: fromName}
}

// Send implements EmailService.
func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	if e.apiKey == "" || e.fromEmail == "" {
		return ErrNotConfigured
	}

	request := sendgrid.GetRequest(e.apiKey, sendEndpoint, e.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(buildMessage(mail.NewEmail(e.fromName, e.fromEmail), req))

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func buildMessage(from *mail.Email, req *models.EmailNotificationRequest) *mail.SGMailV3 {
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", req.Content))

	// SendGrid rejects empty content blocks.
	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	return message
}
