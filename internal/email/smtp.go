package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"
)

// SMTPSender implements the Sender interface over a direct SMTP
// connection via go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	adminEmail string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:       cfg.GetSMTPHost(),
		port:       cfg.GetSMTPPort(),
		username:   cfg.GetSMTPUsername(),
		password:   cfg.GetSMTPPassword(),
		fromName:   cfg.GetEmailFromName(),
		fromEmail:  cfg.GetEmailFromAddress(),
		adminEmail: cfg.GetAdminEmail(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuoteAdminAlert(ctx context.Context, record quote.Record) error {
	content, err := renderEmailTemplate("admin_alert.html", newAdminAlertData(record))
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectAdminAlertFmt, record.Product)
	return s.send(ctx, s.adminEmail, subject, content)
}

func (s *SMTPSender) SendQuoteConfirmation(ctx context.Context, record quote.Record) error {
	content, err := renderEmailTemplate("customer_confirmation.html", newConfirmationData(record))
	if err != nil {
		return err
	}
	return s.send(ctx, record.Email, subjectCustomerConfirmation, content)
}
