// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/your-org/coffeeshop-backend/internal/config"
)

// Email represents an outgoing email message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// Service sends transactional email over SMTP
type Service struct {
	config *config.Config
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Send delivers an email using the configured SMTP server
func (s *Service) Send(ctx context.Context, email *Email) error {
	return s.sendSMTP(ctx, email)
}

// SendPasswordResetOTP emails a one-time password reset code
func (s *Service) SendPasswordResetOTP(ctx context.Context, to, name, code string, expiry time.Duration) error {
	htmlContent, err := renderTemplate(otpTemplate, map[string]interface{}{
		"SiteName":      s.config.Email.FromName,
		"Name":          name,
		"Code":          code,
		"ExpiryMinutes": int(expiry.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("%s - Password Reset Code", s.config.Email.FromName),
		HTMLContent: htmlContent,
	})
}

// SendTemporaryPassword emails a generated temporary password after a
// completed reset
func (s *Service) SendTemporaryPassword(ctx context.Context, to, name, tempPassword string) error {
	htmlContent, err := renderTemplate(tempPasswordTemplate, map[string]interface{}{
		"SiteName": s.config.Email.FromName,
		"Name":     name,
		"Password": tempPassword,
		"LoginURL": s.config.Email.BaseURL + "/login",
	})
	if err != nil {
		return fmt.Errorf("failed to render temporary password email: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("%s - Your Temporary Password", s.config.Email.FromName),
		HTMLContent: htmlContent,
	})
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	Name        string
	OrderID     uint
	OrderDate   string
	TotalAmount string
	Items       []OrderConfirmationItem
}

// OrderConfirmationItem is one line of the order confirmation email
type OrderConfirmationItem struct {
	Name     string
	Quantity int
	Price    string
	Note     string
}

// SendOrderConfirmation emails an order confirmation after checkout
func (s *Service) SendOrderConfirmation(ctx context.Context, to string, data OrderConfirmationData) error {
	htmlContent, err := renderTemplate(orderConfirmationTemplate, map[string]interface{}{
		"SiteName": s.config.Email.FromName,
		"Data":     data,
	})
	if err != nil {
		return fmt.Errorf("failed to render order confirmation email: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("%s - Order #%d Confirmed", s.config.Email.FromName, data.OrderID),
		HTMLContent: htmlContent,
	})
}

// renderTemplate executes an inline HTML template
func renderTemplate(tmpl string, data interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const otpTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>{{.SiteName}}</h2>
	<p>Hi {{.Name}},</p>
	<p>We received a request to reset your password. Use this code to continue:</p>
	<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
	<p>The code expires in {{.ExpiryMinutes}} minutes. If you did not request a reset, you can ignore this email.</p>
</body>
</html>
`

const tempPasswordTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>{{.SiteName}}</h2>
	<p>Hi {{.Name}},</p>
	<p>Your password has been reset. Sign in with this temporary password and change it right away:</p>
	<p style="font-size: 20px; font-weight: bold;">{{.Password}}</p>
	<p><a href="{{.LoginURL}}">Sign in</a></p>
</body>
</html>
`

const orderConfirmationTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>{{.SiteName}}</h2>
	<p>Hi {{.Data.Name}},</p>
	<p>Thanks for your order! Order <strong>#{{.Data.OrderID}}</strong> was placed on {{.Data.OrderDate}}.</p>
	<table width="100%" cellpadding="6" style="border-collapse: collapse;">
		<tr style="text-align: left; border-bottom: 1px solid #ddd;">
			<th>Item</th><th>Qty</th><th>Price</th><th>Note</th>
		</tr>
		{{range .Data.Items}}
		<tr style="border-bottom: 1px solid #eee;">
			<td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Note}}</td>
		</tr>
		{{end}}
	</table>
	<p style="font-size: 18px;"><strong>Total: {{.Data.TotalAmount}}</strong></p>
</body>
</html>
`
