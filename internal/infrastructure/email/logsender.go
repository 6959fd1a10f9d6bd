package email

import (
	"context"

	"banking/internal/shared/logger"
)

// LogEmailSender stands in for SMTP when email delivery is disabled.
// It logs the verification link so development setups can complete the flow.
type LogEmailSender struct {
	baseURL string
	logger  logger.Interface
}

func NewLogEmailSender(baseURL string, logger logger.Interface) *LogEmailSender {
	return &LogEmailSender{baseURL: baseURL, logger: logger}
}

func (s *LogEmailSender) SendVerificationEmail(_ context.Context, to, name, token string) error {
	s.logger.Infow("email delivery disabled, verification link logged instead",
		"to", to,
		"name", name,
		"url", VerificationURL(s.baseURL, token),
	)
	return nil
}
