package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"tavola/internal/shared/config"
	"tavola/pkg/logger"
)

// EmailService delivers rendered notification events
type EmailService interface {
	Send(ctx context.Context, event *EmailEvent) error
}

type smtpEmailService struct {
	config *config.EmailConfig
	logger *logger.Logger
}

func NewSMTPEmailService(cfg *config.EmailConfig) (EmailService, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &smtpEmailService{
		config: cfg,
		logger: logger.GetDefault(),
	}, nil
}

func (s *smtpEmailService) Send(ctx context.Context, event *EmailEvent) error {
	message := s.buildMessage(event)
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := s.sendWithSTARTTLS(addr, auth, event.RecipientEmail, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("email sent", "recipient", event.RecipientEmail, "subject", event.Subject)
	return nil
}

func (s *smtpEmailService) buildMessage(event *EmailEvent) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	b.WriteString(fmt.Sprintf("To: %s <%s>\r\n", event.RecipientName, event.RecipientEmail))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", event.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(fmt.Sprintf("Hi %s,\r\n\r\n", event.RecipientName))
	b.WriteString(event.Body)
	b.WriteString(fmt.Sprintf("\r\n\r\n%s\r\n", s.config.FromName))
	return []byte(b.String())
}

func (s *smtpEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: s.config.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.config.SMTPUsername != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// noopEmailService is used when SMTP is not configured, events are
// logged and dropped
type noopEmailService struct {
	logger *logger.Logger
}

func NewNoopEmailService() EmailService {
	return &noopEmailService{logger: logger.GetDefault()}
}

func (s *noopEmailService) Send(ctx context.Context, event *EmailEvent) error {
	s.logger.Info("email delivery skipped (SMTP not configured)",
		"recipient", event.RecipientEmail,
		"subject", event.Subject,
	)
	return nil
}
