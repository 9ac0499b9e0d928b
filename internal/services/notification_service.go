// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/config"
	"github.com/greeniecart/greeniecart-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User, verificationToken string) error {
	tmpl := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Name":            user.DisplayName(),
		"VerificationURL": fmt.Sprintf("%s/verify-email?token=%s", s.config.Frontend.BaseURL, verificationToken),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	tmpl := s.getEmailTemplate("password_reset")

	data := map[string]interface{}{
		"Name":      user.DisplayName(),
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, resetToken),
		"ExpiresIn": "1 hour",
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendOrderConfirmation mails the buyer a summary of a freshly placed order.
func (s *NotificationService) SendOrderConfirmation(buyer *models.User, order *models.Order) error {
	tmpl := s.getEmailTemplate("order_confirmation")

	data := map[string]interface{}{
		"Name":      buyer.DisplayName(),
		"OrderID":   order.ID.String(),
		"Items":     order.Items,
		"Total":     order.Total.StringFixed(2),
		"OrdersURL": fmt.Sprintf("%s/my-orders", s.config.Frontend.BaseURL),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(buyer.Email, tmpl.Subject, body)
}

// SendSaleNotice tells a seller that some of their products were ordered.
func (s *NotificationService) SendSaleNotice(seller *models.User, order *models.Order, items []models.OrderItem) error {
	tmpl := s.getEmailTemplate("sale_notice")

	data := map[string]interface{}{
		"Name":           seller.DisplayName(),
		"OrderID":        order.ID.String(),
		"Items":          items,
		"FulfillmentURL": fmt.Sprintf("%s/seller/orders", s.config.Frontend.BaseURL),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(seller.Email, tmpl.Subject, body)
}

func (s *NotificationService) getEmailTemplate(name string) EmailTemplate {
	switch name {
	case "welcome":
		return EmailTemplate{
			Subject: "Welcome to GreenieCart",
			Body: `<h2>Welcome, {{.Name}}!</h2>
<p>Thanks for joining GreenieCart. Please verify your email address to get started.</p>
<p><a href="{{.VerificationURL}}">Verify my email</a></p>`,
		}
	case "password_reset":
		return EmailTemplate{
			Subject: "Reset your GreenieCart password",
			Body: `<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password. This link expires in {{.ExpiresIn}}.</p>
<p><a href="{{.ResetURL}}">Reset my password</a></p>
<p>If you didn't ask for this, you can ignore this email.</p>`,
		}
	case "order_confirmation":
		return EmailTemplate{
			Subject: "Your GreenieCart order is confirmed",
			Body: `<h2>Thanks for your order, {{.Name}}!</h2>
<p>Order <strong>{{.OrderID}}</strong> has been placed.</p>
<ul>{{range .Items}}<li>{{.Name}} &times; {{.Quantity}}</li>{{end}}</ul>
<p>Total: &#8369;{{.Total}}</p>
<p><a href="{{.OrdersURL}}">Track my orders</a></p>`,
		}
	case "sale_notice":
		return EmailTemplate{
			Subject: "You made a sale on GreenieCart",
			Body: `<h2>Good news, {{.Name}}!</h2>
<p>Order <strong>{{.OrderID}}</strong> includes your products:</p>
<ul>{{range .Items}}<li>{{.Name}} &times; {{.Quantity}}</li>{{end}}</ul>
<p><a href="{{.FulfillmentURL}}">View orders to fulfill</a></p>`,
		}
	default:
		return EmailTemplate{
			Subject: "GreenieCart notification",
			Body:    `<p>{{.Message}}</p>`,
		}
	}
}

func (s *NotificationService) renderTemplate(body string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("email skipped: SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}
