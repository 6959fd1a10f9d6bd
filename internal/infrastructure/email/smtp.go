package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"banking/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:3000")
	AppName     string
	// VerificationTTL is only quoted in the message body
	VerificationTTL time.Duration
}

// SMTPEmailService implements usecases.EmailSender over SMTP
type SMTPEmailService struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer *Renderer
	logger   logger.Interface
}

func NewSMTPEmailService(config SMTPConfig, logger logger.Interface) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.AppName == "" {
		config.AppName = "Banking"
	}

	return &SMTPEmailService{
		config:   config,
		dialer:   dialer,
		renderer: NewRenderer(),
		logger:   logger,
	}
}

func (s *SMTPEmailService) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	m, err := s.buildVerificationMessage(to, name, token)
	if err != nil {
		return err
	}
	return s.send(ctx, m)
}

func (s *SMTPEmailService) buildVerificationMessage(to, name, token string) (*gomail.Message, error) {
	htmlBody, plainBody, err := s.renderer.Render(verificationTemplate, map[string]string{
		"AppName":   s.config.AppName,
		"Name":      name,
		"URL":       VerificationURL(s.config.BaseURL, token),
		"ExpiresIn": humanizeDuration(s.config.VerificationTTL),
	})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m, nil
}

func (s *SMTPEmailService) send(ctx context.Context, m *gomail.Message) error {
	// gomail has no context support; honour cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("email sent", "to", m.GetHeader("To"), "subject", m.GetHeader("Subject"))
	return nil
}

// VerificationURL builds the link the customer follows to verify the address
func VerificationURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/verify-email?token=" + url.QueryEscape(token)
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "24 hours"
	case d%(24*time.Hour) == 0 && d >= 48*time.Hour:
		return fmt.Sprintf("%d days", int(d/(24*time.Hour)))
	case d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
}
